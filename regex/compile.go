// Copyright 2020-2021 Daniel Matts <dmatts.io@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

// Package regex compiles a small regular-expression dialect into NFA
// fragments via Thompson construction, composing sub-fragments exclusively
// with epsilon transitions.
//
// The dialect operates on bytes, not runes:
//
//	abc        literals
//	.          any byte except newline
//	[a-z0-9_]  character class with ranges
//	[^ ...]    negated character class
//	( ... )    grouping
//	a|b        alternation
//	* + ?      closures
//	\n \t ...  escapes, including \xNN hex
//
// The compiled fragment has one start state and one accepting end state
// labeled 0; callers folding fragments into a master automaton relabel the
// accepting states with the pattern's token ID.
//
package regex

import (
	"errors"
	"fmt"

	"github.com/dmatts/sublex/nfa"
)

// Syntax errors.
var (
	ErrUnmatchedLpar       = errors.New("unmatched '('")
	ErrUnmatchedRpar       = errors.New("unmatched ')'")
	ErrUnmatchedLbkt       = errors.New("unmatched '['")
	ErrBadRange            = errors.New("bad range in character class")
	ErrExtraneousBackslash = errors.New("extraneous backslash")
	ErrBadBackslash        = errors.New("illegal backslash escape")
	ErrBareClosure         = errors.New("closure applies to nothing")
)

// frag is a sub-automaton with a single entry and a single exit state.
type frag struct {
	start, end nfa.StateID
}

type compiler struct {
	pat     string
	pos     int
	n       *nfa.NFA
	symbols int
}

// Compile compiles pattern into a standalone NFA fragment over an alphabet
// of numSymbols symbols. The fragment's start state is marked as the NFA
// start and its accepting state carries label 0.
//
func Compile(pattern string, numSymbols int) (*nfa.NFA, error) {
	c := &compiler{pat: pattern, n: nfa.New(numSymbols), symbols: numSymbols}
	f, err := c.alternation()
	if err != nil {
		return nil, fmt.Errorf("regex %q: offset %d: %w", pattern, c.pos, err)
	}
	if c.pos < len(c.pat) {
		// the only way alternation stops early is an unbalanced ')'
		return nil, fmt.Errorf("regex %q: offset %d: %w", pattern, c.pos, ErrUnmatchedRpar)
	}
	if err := c.n.MarkStart(f.start); err != nil {
		return nil, err
	}
	if err := c.n.MarkAccepting(f.end, 0); err != nil {
		return nil, err
	}
	return c.n, nil
}

func (c *compiler) peek() (byte, bool) {
	if c.pos < len(c.pat) {
		return c.pat[c.pos], true
	}
	return 0, false
}

// alternation = concatenation { '|' concatenation }
func (c *compiler) alternation() (frag, error) {
	f, err := c.concatenation()
	if err != nil {
		return f, err
	}
	for {
		b, ok := c.peek()
		if !ok || b != '|' {
			return f, nil
		}
		c.pos++
		g, err := c.concatenation()
		if err != nil {
			return f, err
		}
		start := c.n.AddState()
		end := c.n.AddState()
		c.eps(start, f.start)
		c.eps(start, g.start)
		c.eps(f.end, end)
		c.eps(g.end, end)
		f = frag{start, end}
	}
}

// concatenation = { closure } -- possibly empty, matching the empty string
func (c *compiler) concatenation() (frag, error) {
	var f *frag
	for {
		b, ok := c.peek()
		if !ok || b == '|' || b == ')' {
			break
		}
		g, err := c.closure()
		if err != nil {
			return frag{}, err
		}
		if f == nil {
			f = &g
		} else {
			c.eps(f.end, g.start)
			f = &frag{f.start, g.end}
		}
	}
	if f == nil {
		s := c.n.AddState()
		return frag{s, s}, nil
	}
	return *f, nil
}

// closure = term [ '*' | '+' | '?' ]
func (c *compiler) closure() (frag, error) {
	f, err := c.term()
	if err != nil {
		return f, err
	}
	b, ok := c.peek()
	if !ok {
		return f, nil
	}
	switch b {
	case '*':
		start := c.n.AddState()
		end := c.n.AddState()
		c.eps(start, f.start)
		c.eps(start, end)
		c.eps(f.end, f.start)
		c.eps(f.end, end)
		f = frag{start, end}
	case '+':
		end := c.n.AddState()
		c.eps(f.end, f.start)
		c.eps(f.end, end)
		f = frag{f.start, end}
	case '?':
		start := c.n.AddState()
		end := c.n.AddState()
		c.eps(start, f.start)
		c.eps(start, end)
		c.eps(f.end, end)
		f = frag{start, end}
	default:
		return f, nil
	}
	c.pos++
	return f, nil
}

func (c *compiler) term() (frag, error) {
	b, ok := c.peek()
	if !ok {
		return frag{}, ErrBareClosure
	}
	switch b {
	case '*', '+', '?':
		return frag{}, ErrBareClosure
	case '(':
		c.pos++
		f, err := c.alternation()
		if err != nil {
			return f, err
		}
		if b, ok := c.peek(); !ok || b != ')' {
			return f, ErrUnmatchedLpar
		}
		c.pos++
		return f, nil
	case '[':
		c.pos++
		return c.class()
	case '.':
		c.pos++
		return c.anyByte()
	case '\\':
		c.pos++
		v, err := c.escape()
		if err != nil {
			return frag{}, err
		}
		return c.literal(v)
	default:
		c.pos++
		return c.literal(b)
	}
}

// literal builds a two-state fragment with a single byte transition.
func (c *compiler) literal(b byte) (frag, error) {
	start := c.n.AddState()
	end := c.n.AddState()
	if err := c.n.AddTransition(start, nfa.Symbol(b), end); err != nil {
		return frag{}, err
	}
	return frag{start, end}, nil
}

// anyByte builds a fragment matching every symbol except newline.
func (c *compiler) anyByte() (frag, error) {
	start := c.n.AddState()
	end := c.n.AddState()
	for s := 0; s < c.symbols; s++ {
		if s == '\n' {
			continue
		}
		if err := c.n.AddTransition(start, nfa.Symbol(s), end); err != nil {
			return frag{}, err
		}
	}
	return frag{start, end}, nil
}

// class parses a character class; the leading '[' has been consumed.
func (c *compiler) class() (frag, error) {
	var set [256]bool
	negate := false
	if b, ok := c.peek(); ok && b == '^' {
		negate = true
		c.pos++
	}
	empty := true
	for {
		b, ok := c.peek()
		if !ok {
			return frag{}, ErrUnmatchedLbkt
		}
		if b == ']' && !empty {
			c.pos++
			break
		}
		c.pos++
		lo := b
		if b == '\\' {
			v, err := c.escape()
			if err != nil {
				return frag{}, err
			}
			lo = v
		}
		hi := lo
		if b, ok := c.peek(); ok && b == '-' {
			if c.pos+1 < len(c.pat) && c.pat[c.pos+1] != ']' {
				c.pos++
				h, ok := c.peek()
				if !ok {
					return frag{}, ErrUnmatchedLbkt
				}
				c.pos++
				if h == '\\' {
					v, err := c.escape()
					if err != nil {
						return frag{}, err
					}
					h = v
				}
				hi = h
			}
		}
		if hi < lo {
			return frag{}, ErrBadRange
		}
		for v := int(lo); v <= int(hi); v++ {
			set[v] = true
		}
		empty = false
	}

	start := c.n.AddState()
	end := c.n.AddState()
	for s := 0; s < c.symbols && s < len(set); s++ {
		if set[s] != negate {
			if err := c.n.AddTransition(start, nfa.Symbol(s), end); err != nil {
				return frag{}, err
			}
		}
	}
	return frag{start, end}, nil
}

// escape parses a backslash escape; the backslash has been consumed.
func (c *compiler) escape() (byte, error) {
	b, ok := c.peek()
	if !ok {
		return 0, ErrExtraneousBackslash
	}
	c.pos++
	switch b {
	case 'a':
		return '\a', nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'v':
		return '\v', nil
	case 'x':
		hi, ok1 := c.hexDigit()
		lo, ok2 := c.hexDigit()
		if !ok1 || !ok2 {
			return 0, ErrBadBackslash
		}
		return hi<<4 | lo, nil
	default:
		if isPunct(b) {
			return b, nil
		}
		return 0, ErrBadBackslash
	}
}

func (c *compiler) hexDigit() (byte, bool) {
	b, ok := c.peek()
	if !ok {
		return 0, false
	}
	c.pos++
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

func isPunct(b byte) bool {
	switch b {
	case '!', '"', '#', '$', '%', '&', '\'', '(', ')', '*', '+', ',', '-',
		'.', '/', ':', ';', '<', '=', '>', '?', '@', '[', '\\', ']', '^',
		'_', '`', '{', '|', '}', '~':
		return true
	}
	return false
}

// eps adds an epsilon transition; state IDs come from this compiler's own
// arena, so range errors cannot happen.
func (c *compiler) eps(from, to nfa.StateID) {
	if err := c.n.AddEpsilon(from, to); err != nil {
		panic(err)
	}
}
