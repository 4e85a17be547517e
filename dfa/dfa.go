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

// Package dfa implements a deterministic finite automaton and the subset
// construction that builds one from an NFA.
//
// A DFA state has at most one destination per symbol. State 0 is the start
// state. Accepting states carry the label of the winning pattern; where
// several NFA accepting states collapse into one DFA state, the lowest label
// wins. Once determinization returns, the automaton is treated as immutable
// and may be shared by any number of concurrent scanners.
//
package dfa

import "errors"

// None marks the absence of a transition or label.
//
const None = -1

// Errors returned by automaton mutators.
var (
	ErrState      = errors.New("state index out of range")
	ErrSymbol     = errors.New("symbol out of alphabet range")
	ErrTransition = errors.New("transition already set for this state and symbol")
	ErrCapacity   = errors.New("state table capacity exceeded")
)

type state struct {
	next  []int32 // one entry per symbol, None if absent
	label int32   // accept label, None if non-accepting
	stop  bool
}

// A DFA is an index-addressed arena of deterministic states. The zero value
// is not usable; call New or Determinize.
//
type DFA struct {
	symbols int
	states  []state
}

// New returns a DFA with numStates empty states over an alphabet of
// numSymbols symbols.
//
func New(numStates, numSymbols int) *DFA {
	if numSymbols < 1 {
		panic("dfa: alphabet must have at least one symbol")
	}
	d := &DFA{symbols: numSymbols}
	d.Resize(numStates)
	return d
}

// NumSymbols returns the alphabet size.
//
func (d *DFA) NumSymbols() int {
	return d.symbols
}

// Size returns the number of states.
//
func (d *DFA) Size() int {
	return len(d.states)
}

// Resize grows state storage to at least n states, preserving existing
// entries. New states have no transitions and are non-accepting. Shrinking
// is not supported; a smaller n is a no-op.
//
func (d *DFA) Resize(n int) {
	for len(d.states) < n {
		next := make([]int32, d.symbols)
		for i := range next {
			next[i] = None
		}
		d.states = append(d.states, state{next: next, label: None})
	}
}

func (d *DFA) check(st, sym int) error {
	if st < 0 || st >= len(d.states) {
		return ErrState
	}
	if sym < 0 || sym >= d.symbols {
		return ErrSymbol
	}
	return nil
}

// SetTransition records the unique transition (from, sym) -> to. Setting the
// same pair twice is an error: the transition function is a partial function
// with at most one destination per pair.
//
func (d *DFA) SetTransition(from, to, sym int) error {
	if err := d.check(from, sym); err != nil {
		return err
	}
	if to < 0 || to >= len(d.states) {
		return ErrState
	}
	if d.states[from].next[sym] != None {
		return ErrTransition
	}
	d.states[from].next[sym] = int32(to)
	return nil
}

// SetStop marks st accepting with the given label.
//
func (d *DFA) SetStop(st, label int) error {
	if st < 0 || st >= len(d.states) {
		return ErrState
	}
	d.states[st].stop = true
	d.states[st].label = int32(label)
	return nil
}

// Transition returns the destination of (st, sym), or None.
//
func (d *DFA) Transition(st, sym int) int {
	if d.check(st, sym) != nil {
		return None
	}
	return int(d.states[st].next[sym])
}

// IsStop returns true if st is an accepting state.
//
func (d *DFA) IsStop(st int) bool {
	if st < 0 || st >= len(d.states) {
		return false
	}
	return d.states[st].stop
}

// StopLabel returns the accept label of st, or None if st is not accepting.
//
func (d *DFA) StopLabel(st int) int {
	if st < 0 || st >= len(d.states) || !d.states[st].stop {
		return None
	}
	return int(d.states[st].label)
}
