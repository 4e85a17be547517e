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

package sublex

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dmatts/sublex/dfa"
	"github.com/dmatts/sublex/nfa"
	"github.com/dmatts/sublex/regex"
	"github.com/dmatts/sublex/scanner"
	"github.com/dmatts/sublex/token"
)

// DefaultAlphabetSize is the alphabet used unless AlphabetSize says
// otherwise: the full byte range.
//
const DefaultAlphabetSize = 256

// Configuration errors.
var (
	ErrFinalized = errors.New("lexer is built, no further patterns can be added")
	ErrNotBuilt  = errors.New("lexer has not been built")
	ErrName      = errors.New("duplicate pattern name")
)

type options struct {
	alphabet    int
	keepInvalid bool
	maxStates   int
}

// An Option is a configuration option for a new Lexer.
//
type Option func(*options)

// AlphabetSize sets the symbol alphabet size. Input bytes outside
// [0, n) never match any pattern.
//
func AlphabetSize(n int) Option {
	return func(o *options) {
		o.alphabet = n
	}
}

// KeepInvalid makes Build keep invalid transitions as explicit edges into a
// sink state, producing a DFA total over the alphabet.
//
func KeepInvalid() Option {
	return func(o *options) {
		o.keepInvalid = true
	}
}

// MaxStates caps the number of DFA states Build may allocate.
//
func MaxStates(n int) Option {
	return func(o *options) {
		o.maxStates = n
	}
}

type pattern struct {
	name      string
	zeroWidth bool
}

// A PatternOption configures a single registered pattern.
//
type PatternOption func(*pattern)

// ZeroWidth declares the pattern zero-width-capable: it is allowed to emit
// tokens that consume no input. Without it, a zero-length match is a
// lexical error.
//
func ZeroWidth() PatternOption {
	return func(p *pattern) {
		p.zeroWidth = true
	}
}

// A Lexer registers named token patterns in priority order, compiles them
// into a single DFA, and hands out token streams over that DFA.
//
// Patterns are folded into one master NFA as they are registered; Build runs
// determinization once and discards the NFA. After Build the Lexer is
// immutable and safe for concurrent use: every Tokenize call returns an
// independent scanner borrowing the shared DFA.
//
type Lexer struct {
	o     options
	n     *nfa.NFA // master NFA; nil once built
	d     *dfa.DFA // nil until built
	pats  []pattern
	names map[string]token.ID
}

// New returns an empty Lexer.
//
func New(opts ...Option) *Lexer {
	o := options{alphabet: DefaultAlphabetSize}
	for _, f := range opts {
		f(&o)
	}
	l := &Lexer{o: o, n: nfa.New(o.alphabet), names: make(map[string]token.ID)}
	// state 0 is the master start state; registered fragments hang off it
	// through epsilon transitions
	l.n.MarkStart(l.n.AddState())
	return l
}

// AddPattern compiles pattern (see package regex for the dialect) and
// registers it under name. The returned token ID doubles as the pattern's
// priority: at equal match lengths, earlier-registered patterns win.
//
func (l *Lexer) AddPattern(name, pat string, opts ...PatternOption) (token.ID, error) {
	if l.d != nil {
		return token.Error, ErrFinalized
	}
	frag, err := regex.Compile(pat, l.o.alphabet)
	if err != nil {
		return token.Error, fmt.Errorf("pattern %s: %w", name, err)
	}
	return l.AddPatternNFA(name, frag, opts...)
}

// AddPatternNFA registers a pre-built NFA fragment under name. The
// fragment's start states are wired to the master start state and its
// accepting states are relabeled with the assigned token ID.
//
func (l *Lexer) AddPatternNFA(name string, frag *nfa.NFA, opts ...PatternOption) (token.ID, error) {
	if l.d != nil {
		return token.Error, ErrFinalized
	}
	if _, ok := l.names[name]; ok {
		return token.Error, fmt.Errorf("%w: %s", ErrName, name)
	}

	id := token.ID(len(l.pats))
	offset, err := l.n.Merge(frag)
	if err != nil {
		return token.Error, fmt.Errorf("pattern %s: %w", name, err)
	}
	for _, s := range frag.StartStates() {
		if err := l.n.AddEpsilon(0, s+offset); err != nil {
			return token.Error, fmt.Errorf("pattern %s: %w", name, err)
		}
	}
	for _, s := range frag.AcceptingStates() {
		if err := l.n.MarkAccepting(s+offset, int(id)); err != nil {
			return token.Error, fmt.Errorf("pattern %s: %w", name, err)
		}
	}

	p := pattern{name: name}
	for _, f := range opts {
		f(&p)
	}
	l.pats = append(l.pats, p)
	l.names[name] = id
	return id, nil
}

// Build determinizes the master NFA. After a successful Build the Lexer
// accepts no further patterns and Tokenize becomes available.
//
func (l *Lexer) Build() error {
	if l.d != nil {
		return ErrFinalized
	}
	dopts := []dfa.Option{}
	if l.o.keepInvalid {
		dopts = append(dopts, dfa.KeepInvalid())
	}
	if l.o.maxStates > 0 {
		dopts = append(dopts, dfa.MaxStates(l.o.maxStates))
	}
	d, err := dfa.Determinize(l.n, dopts...)
	if err != nil {
		return err
	}
	l.d = d
	l.n = nil // the NFA is only owned transiently; drop it once determinized
	return nil
}

// DFA returns the compiled automaton, or nil before Build.
//
func (l *Lexer) DFA() *dfa.DFA {
	return l.d
}

// Tokenize returns a scanner producing the token sequence for src. The name
// is used in error positions. Scanner options (scanner.Recover, ...) select
// the caller's error policy.
//
func (l *Lexer) Tokenize(name string, src []byte, opts ...scanner.Option) (*scanner.Scanner, error) {
	if l.d == nil {
		return nil, ErrNotBuilt
	}
	sopts := append([]scanner.Option{scanner.ZeroWidth(l.zeroWidthLabel)}, opts...)
	return scanner.New(l.d, token.NewFile(name, src), sopts...), nil
}

func (l *Lexer) zeroWidthLabel(label int) bool {
	return label >= 0 && label < len(l.pats) && l.pats[label].zeroWidth
}

// MaxTokenID returns the highest token ID handed out so far, or -1 if no
// pattern is registered. Downstream grammar layers allocate their own rule
// identifiers starting at MaxTokenID()+1.
//
func (l *Lexer) MaxTokenID() token.ID {
	return token.ID(len(l.pats) - 1)
}

// Name returns the name a pattern was registered under.
//
func (l *Lexer) Name(id token.ID) string {
	if !id.IsValid() || int(id) >= len(l.pats) {
		return id.String()
	}
	return l.pats[id].name
}

// ID returns the token ID registered under name.
//
func (l *Lexer) ID(name string) (token.ID, bool) {
	id, ok := l.names[name]
	return id, ok
}

// TokenString renders a token with its pattern name, for diagnostics.
//
func (l *Lexer) TokenString(t token.Token) string {
	if t.ID == token.EOF {
		return "EOF"
	}
	return l.Name(t.ID) + " " + strconv.Quote(t.Lit)
}
