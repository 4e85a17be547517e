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

// Package scanner walks a DFA over an input buffer and produces tokens under
// maximal-munch semantics: at every cursor position the longest possible
// match wins, and among patterns matching at that length the one with the
// lowest label (earliest registered) wins, the label having been baked into
// the DFA accept states by determinization.
//
// A Scanner holds no mutable state beyond its cursor, borrows the DFA and
// input read-only, and produces a lazy, finite, restartable token sequence:
// any number of scanners may run concurrently over the same DFA and input.
//
package scanner

import (
	"errors"

	"github.com/dmatts/sublex/dfa"
	"github.com/dmatts/sublex/token"
)

// Scan failure conditions, wrapped in *Error.
var (
	ErrNoMatch   = errors.New("no pattern matches input")
	ErrZeroWidth = errors.New("zero-length match")
)

// An Error is a lexical error anchored at an input position.
//
type Error struct {
	Position token.Position
	Err      error
}

func (e *Error) Error() string {
	return e.Position.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

type options struct {
	recover   bool
	zeroWidth func(label int) bool
}

// An Option is a configuration option for a new Scanner.
//
type Option func(*options)

// Recover enables error-recovery mode: instead of failing the scan, runs of
// unmatched input are emitted as token.Error tokens and scanning resumes at
// the next position where some pattern matches. Without it the scanner runs
// in strict mode and Scan returns a *Error, leaving the cursor in place.
//
func Recover() Option {
	return func(o *options) {
		o.recover = true
	}
}

// ZeroWidth declares which pattern labels may legitimately match the empty
// string. A zero-length match for any other label is an error, preventing
// the scanner from looping without consuming input.
//
func ZeroWidth(f func(label int) bool) Option {
	return func(o *options) {
		o.zeroWidth = f
	}
}

// A Scanner tokenizes the input held by a token.File using a compiled DFA.
//
type Scanner struct {
	d   *dfa.DFA
	f   *token.File
	src []byte
	o   options

	pos   int // cursor: offset of the next byte to tokenize
	zwPos int // position of the last zero-width emission, -1 if none
}

// New returns a Scanner tokenizing f with d. The DFA and file are borrowed
// and never written to.
//
func New(d *dfa.DFA, f *token.File, opts ...Option) *Scanner {
	s := &Scanner{d: d, f: f, src: f.Src(), zwPos: -1}
	for _, o := range opts {
		o(&s.o)
	}
	return s
}

// File returns the input file being scanned.
//
func (s *Scanner) File() *token.File {
	return s.f
}

// Pos returns the current cursor position.
//
func (s *Scanner) Pos() token.Pos {
	return token.Pos(s.pos)
}

// Reset restarts the sequence from the beginning of the input.
//
func (s *Scanner) Reset() {
	s.pos = 0
	s.zwPos = -1
}

// Skip advances the cursor by one byte without emitting a token. It is meant
// for strict-mode callers that choose to skip-and-retry after an error.
//
func (s *Scanner) Skip() {
	if s.pos < len(s.src) {
		s.pos++
	}
}

// Scan returns the next token. Once the input is exhausted it returns a
// token with ID token.EOF, and keeps doing so on subsequent calls.
//
// In strict mode, an unmatched byte or an illegal zero-length match returns
// a *Error and leaves the cursor unchanged; the caller may Skip and retry,
// or abort. In recovery mode no error is ever returned: offending input is
// folded into token.Error tokens instead.
//
func (s *Scanner) Scan() (token.Token, error) {
	if s.pos >= len(s.src) {
		p := token.Pos(len(s.src))
		return token.Token{ID: token.EOF, Start: p, End: p}, nil
	}

	end, label, ok := s.match(s.pos)
	if ok && end > s.pos {
		return s.emit(label, end), nil
	}
	if ok && s.zeroWidthOK(label) {
		// at most one zero-width token per cursor position
		s.zwPos = s.pos
		return s.emit(label, s.pos), nil
	}

	err := ErrNoMatch
	if ok {
		err = ErrZeroWidth
	}
	if !s.o.recover {
		return token.Token{}, &Error{Position: s.f.Position(token.Pos(s.pos)), Err: err}
	}
	return s.recover(), nil
}

// match runs the DFA from state 0 at position pos, recording the last
// accepting position seen. It reports the end of the longest match, its
// label, and whether any accepting state was reached at all.
func (s *Scanner) match(pos int) (end, label int, ok bool) {
	st := 0
	p := pos
	end, label = -1, dfa.None
	for {
		if s.d.IsStop(st) {
			end, label = p, s.d.StopLabel(st)
		}
		if p >= len(s.src) {
			break
		}
		sym := int(s.src[p])
		if sym >= s.d.NumSymbols() {
			break
		}
		next := s.d.Transition(st, sym)
		if next == dfa.None {
			break
		}
		st = next
		p++
	}
	if end < 0 {
		return 0, dfa.None, false
	}
	return end, label, true
}

func (s *Scanner) zeroWidthOK(label int) bool {
	return s.o.zeroWidth != nil && s.o.zeroWidth(label) && s.zwPos != s.pos
}

// emit produces a token spanning [s.pos, end) and moves the cursor to end.
func (s *Scanner) emit(label, end int) token.Token {
	t := token.Token{
		ID:    token.ID(label),
		Start: token.Pos(s.pos),
		End:   token.Pos(end),
		Lit:   string(s.src[s.pos:end]),
	}
	s.pos = end
	return t
}

// recover folds the maximal run of unmatched input starting at the cursor
// into a single token.Error token: the run ends at input end or at the first
// position where some pattern produces a non-empty match.
func (s *Scanner) recover() token.Token {
	start := s.pos
	p := start + 1
	for p < len(s.src) {
		if end, _, ok := s.match(p); ok && end > p {
			break
		}
		p++
	}
	t := token.Token{
		ID:    token.Error,
		Start: token.Pos(start),
		End:   token.Pos(p),
		Lit:   string(s.src[start:p]),
	}
	s.pos = p
	return t
}
