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

// Package token defines the token and position types shared by the lexer
// façade, the scanner and downstream grammar layers.
//
package token

import (
	"fmt"
	"strconv"
)

// ID identifies a registered pattern. Pattern IDs are assigned in
// registration order starting at 0; when two patterns match a prefix of the
// same length, the pattern with the lowest ID wins. Negative values are
// reserved.
//
type ID int

// Reserved token IDs.
//
const (
	Error ID = -1 // unmatched input, emitted only in error-recovery mode
	EOF   ID = -2 // end of input
)

// IsValid returns true if id refers to a registered pattern.
//
func (id ID) IsValid() bool {
	return id >= 0
}

func (id ID) String() string {
	switch id {
	case Error:
		return "Error"
	case EOF:
		return "EOF"
	}
	return "Token(" + strconv.Itoa(int(id)) + ")"
}

// Pos is a byte offset within an input buffer.
//
type Pos int

// IsValid returns true if p is a valid position (i.e. p >= 0).
//
func (p Pos) IsValid() bool {
	return p >= 0
}

// A Token is a single lexeme: the ID of the pattern that matched, the
// half-open byte range [Start, End) it covers and the matched literal.
// For Error tokens, Lit holds the unmatched input. For EOF tokens, Lit is
// empty and Start == End == len(input).
//
type Token struct {
	ID    ID
	Start Pos
	End   Pos
	Lit   string
}

// Len returns the length of the matched literal in bytes.
//
func (t Token) Len() int {
	return int(t.End - t.Start)
}

func (t Token) String() string {
	if t.ID == EOF {
		return fmt.Sprintf("%d: EOF", t.Start)
	}
	return fmt.Sprintf("%d: %s %q", t.Start, t.ID, t.Lit)
}
