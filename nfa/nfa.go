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

// Package nfa implements a nondeterministic finite automaton over a fixed
// symbol alphabet.
//
// States live in an index-addressed arena: transitions store destination
// indices, not references. A state may have any number of destinations per
// symbol (the source of nondeterminism) plus unlabeled epsilon transitions
// used for fragment composition. Accepting states carry an integer label;
// when several accepting states collapse into one subset during
// determinization, the lowest label wins.
//
package nfa

import "errors"

// StateID is the index of a state in the automaton's arena.
//
type StateID int

// Symbol is an index into the automaton's alphabet. Valid symbols are in
// [0, NumSymbols).
//
type Symbol int

// Errors returned by automaton mutators.
var (
	ErrState    = errors.New("state index out of range")
	ErrSymbol   = errors.New("symbol out of alphabet range")
	ErrAlphabet = errors.New("alphabet size mismatch")
)

// NoLabel is the accept label of non-accepting states.
//
const NoLabel = -1

type state struct {
	edges map[Symbol]StateSet // labeled transitions, destination sets kept canonical
	eps   StateSet            // epsilon transitions
	stop  bool
	label int
}

// An NFA is an arena of states with a designated start set. The zero value is
// not usable; call New.
//
type NFA struct {
	symbols int
	states  []state
	start   StateSet
}

// New returns an empty NFA over an alphabet of numSymbols symbols.
//
func New(numSymbols int) *NFA {
	if numSymbols < 1 {
		panic("nfa: alphabet must have at least one symbol")
	}
	return &NFA{symbols: numSymbols}
}

// NumSymbols returns the alphabet size.
//
func (n *NFA) NumSymbols() int {
	return n.symbols
}

// NumStates returns the number of states in the arena.
//
func (n *NFA) NumStates() int {
	return len(n.states)
}

// AddState appends a new state and returns its index. The new state has no
// transitions and is neither a start nor an accepting state.
//
func (n *NFA) AddState() StateID {
	n.states = append(n.states, state{label: NoLabel})
	return StateID(len(n.states) - 1)
}

func (n *NFA) checkState(id StateID) error {
	if id < 0 || int(id) >= len(n.states) {
		return ErrState
	}
	return nil
}

// AddTransition adds to to the destination set of (from, sym). Multiple
// destinations per symbol are expected; adding the same destination twice is
// a no-op.
//
func (n *NFA) AddTransition(from StateID, sym Symbol, to StateID) error {
	if err := n.checkState(from); err != nil {
		return err
	}
	if err := n.checkState(to); err != nil {
		return err
	}
	if sym < 0 || int(sym) >= n.symbols {
		return ErrSymbol
	}
	st := &n.states[from]
	if st.edges == nil {
		st.edges = make(map[Symbol]StateSet)
	}
	st.edges[sym] = st.edges[sym].with(to)
	return nil
}

// AddEpsilon records an unlabeled transition from from to to. Epsilon
// transitions are used to compose pattern fragments (concatenation,
// alternation, repetition).
//
func (n *NFA) AddEpsilon(from, to StateID) error {
	if err := n.checkState(from); err != nil {
		return err
	}
	if err := n.checkState(to); err != nil {
		return err
	}
	st := &n.states[from]
	st.eps = st.eps.with(to)
	return nil
}

// MarkStart adds id to the start-state set.
//
func (n *NFA) MarkStart(id StateID) error {
	if err := n.checkState(id); err != nil {
		return err
	}
	n.start = n.start.with(id)
	return nil
}

// MarkAccepting flags id as a match endpoint carrying the given label.
// Marking a state again overwrites its label.
//
func (n *NFA) MarkAccepting(id StateID, label int) error {
	if err := n.checkState(id); err != nil {
		return err
	}
	n.states[id].stop = true
	n.states[id].label = label
	return nil
}

// IsStop returns true if id is an accepting state.
//
func (n *NFA) IsStop(id StateID) bool {
	if n.checkState(id) != nil {
		return false
	}
	return n.states[id].stop
}

// StopLabel returns the accept label of id, or NoLabel if id is not an
// accepting state.
//
func (n *NFA) StopLabel(id StateID) int {
	if n.checkState(id) != nil || !n.states[id].stop {
		return NoLabel
	}
	return n.states[id].label
}

// EpsilonClosure returns the set of states reachable from set using zero or
// more epsilon transitions, including set itself. It terminates on cyclic
// epsilon graphs: a state already in the closure is never revisited.
//
func (n *NFA) EpsilonClosure(set StateSet) StateSet {
	if len(set) == 0 {
		return nil
	}
	seen := make([]bool, len(n.states))
	work := make([]StateID, 0, len(set))
	for _, id := range set {
		if n.checkState(id) == nil && !seen[id] {
			seen[id] = true
			work = append(work, id)
		}
	}
	closure := append(StateSet(nil), work...)
	for len(work) > 0 {
		id := work[len(work)-1]
		work = work[:len(work)-1]
		for _, next := range n.states[id].eps {
			if !seen[next] {
				seen[next] = true
				closure = append(closure, next)
				work = append(work, next)
			}
		}
	}
	return canon(closure)
}

// StartStates returns the raw start-state set, without epsilon closure.
//
func (n *NFA) StartStates() StateSet {
	return n.start
}

// Start returns the epsilon closure of the start-state set.
//
func (n *NFA) Start() StateSet {
	return n.EpsilonClosure(n.start)
}

// Next returns the epsilon closure of the union of destinations of every
// state in set for the given symbol. The result is empty if no state in set
// has a transition on sym.
//
func (n *NFA) Next(sym Symbol, set StateSet) StateSet {
	if sym < 0 || int(sym) >= n.symbols {
		return nil
	}
	var dst StateSet
	for _, id := range set {
		if n.checkState(id) != nil {
			continue
		}
		dst = dst.union(n.states[id].edges[sym])
	}
	return n.EpsilonClosure(dst)
}

// AcceptingStates returns the indices of all accepting states, in order.
//
func (n *NFA) AcceptingStates() []StateID {
	var acc []StateID
	for i := range n.states {
		if n.states[i].stop {
			acc = append(acc, StateID(i))
		}
	}
	return acc
}

// Merge appends a deep copy of o's states to n and returns the index offset
// at which they were inserted: state s of o becomes state s+offset of n.
// Neither start sets nor any connecting transitions are touched; wiring the
// merged fragment into n is up to the caller.
//
func (n *NFA) Merge(o *NFA) (StateID, error) {
	if o.symbols != n.symbols {
		return 0, ErrAlphabet
	}
	offset := StateID(len(n.states))
	for i := range o.states {
		src := &o.states[i]
		dst := state{stop: src.stop, label: src.label}
		if src.edges != nil {
			dst.edges = make(map[Symbol]StateSet, len(src.edges))
			for sym, set := range src.edges {
				dst.edges[sym] = set.shift(offset)
			}
		}
		dst.eps = src.eps.shift(offset)
		n.states = append(n.states, dst)
	}
	return offset, nil
}

// Validate checks that every transition, epsilon edge and start state refers
// to an existing state. It reports the malformed-automaton condition that
// determinization refuses to work on.
//
func (n *NFA) Validate() error {
	if err := n.checkSet(n.start); err != nil {
		return err
	}
	for i := range n.states {
		st := &n.states[i]
		for sym, set := range st.edges {
			if sym < 0 || int(sym) >= n.symbols {
				return ErrSymbol
			}
			if err := n.checkSet(set); err != nil {
				return err
			}
		}
		if err := n.checkSet(st.eps); err != nil {
			return err
		}
	}
	return nil
}

func (n *NFA) checkSet(set StateSet) error {
	for _, id := range set {
		if err := n.checkState(id); err != nil {
			return err
		}
	}
	return nil
}
