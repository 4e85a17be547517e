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

package token

import (
	"errors"
	"fmt"
)

// ErrLine is returned when requesting a line that does not exist.
var ErrLine = errors.New("invalid line number")

// Position describes an arbitrary source position including the file, line,
// and column location.
//
type Position struct {
	Filename string
	Offset   int // byte offset in the input
	Line     int // 1-based line number
	Column   int // 1-based column number (byte index)
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// A File represents a named input buffer and handles byte offset to
// line/column conversion. The input is held in full, so the line table is
// computed once up front and the File is read-only afterwards; it can be
// shared by concurrent scanners.
//
type File struct {
	name  string
	src   []byte
	lines []Pos // 0-based line/Pos information
}

// NewFile returns a new File wrapping src.
//
func NewFile(name string, src []byte) *File {
	f := &File{
		name:  name,
		src:   src,
		lines: []Pos{0},
	}
	for i, b := range src {
		if b == '\n' {
			f.lines = append(f.lines, Pos(i+1))
		}
	}
	return f
}

// Name returns the file name.
//
func (f *File) Name() string {
	return f.name
}

// Size returns the input length in bytes.
//
func (f *File) Size() int {
	return len(f.src)
}

// Src returns the input buffer. Callers must not modify it.
//
func (f *File) Src() []byte {
	return f.src
}

// Position returns the 1-based line and column for a given pos. The returned
// column is a byte offset, not a rune offset.
//
func (f *File) Position(pos Pos) Position {
	i, j := 0, len(f.lines)
	for i < j {
		h := int(uint(i+j) >> 1)
		if !(f.lines[h] > pos) {
			i = h + 1
		} else {
			j = h
		}
	}
	return Position{f.name, int(pos), i, int(pos - f.lines[i-1] + 1)}
}

// LinePos returns the file offset of the given 1-based line.
//
func (f *File) LinePos(line int) Pos {
	if line < 1 || line > len(f.lines) {
		return -1
	}
	return f.lines[line-1]
}

// GetLineBytes returns the line containing position pos, without its
// terminating newline.
//
func (f *File) GetLineBytes(pos Pos) ([]byte, error) {
	lp := f.LinePos(f.Position(pos).Line)
	if !lp.IsValid() {
		return nil, ErrLine
	}
	end := len(f.src)
	for i := int(lp); i < len(f.src); i++ {
		if f.src[i] == '\n' {
			end = i
			break
		}
	}
	return f.src[lp:Pos(end)], nil
}
