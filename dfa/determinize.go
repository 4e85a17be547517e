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

package dfa

import (
	"fmt"

	"github.com/dmatts/sublex/nfa"
)

// DefaultMaxStates bounds the number of DFA states Determinize may allocate
// before giving up with ErrCapacity. The number of distinct reachable subsets
// is finite but may be exponential in the NFA state count.
//
const DefaultMaxStates = 1 << 18

type options struct {
	keepInvalid bool
	maxStates   int
	stats       *Stats
}

// An Option is a configuration option for Determinize.
//
type Option func(*options)

// KeepInvalid requests that transitions leading nowhere be kept as explicit
// transitions into a distinguished non-accepting sink state, making the
// transition function total over the alphabet.
//
func KeepInvalid() Option {
	return func(o *options) {
		o.keepInvalid = true
	}
}

// MaxStates overrides the DefaultMaxStates capacity limit.
//
func MaxStates(n int) Option {
	return func(o *options) {
		o.maxStates = n
	}
}

// WithStats makes Determinize record construction counters into s.
//
func WithStats(s *Stats) Option {
	return func(o *options) {
		o.stats = s
	}
}

// Stats holds subset-construction counters. Lookups counts queries of the
// subset identity map; Inserts counts the subsets actually allocated a DFA
// state. Inserts never exceeds Lookups+1 (the start subset is inserted
// without a prior lookup), and the final DFA size equals Inserts.
//
type Stats struct {
	Lookups int
	Inserts int
}

// Determinize converts n into an equivalent DFA using subset construction.
//
// Every distinct epsilon-closed subset of NFA states reachable from the
// start set becomes exactly one DFA state; a map keyed by the canonical
// (sorted, deduplicated) form of each subset guards against duplicates and
// guarantees termination. The full alphabet range is explored for every
// subset, not just symbols actually used. A subset containing several
// accepting NFA states is labeled with the lowest accept label among them.
//
// An NFA with no start states yields a single non-accepting DFA state with
// no transitions. A malformed NFA is rejected up front.
//
func Determinize(n *nfa.NFA, opts ...Option) (*DFA, error) {
	o := options{maxStates: DefaultMaxStates}
	for _, f := range opts {
		f(&o)
	}
	stats := o.stats
	if stats == nil {
		stats = &Stats{}
	}

	if err := n.Validate(); err != nil {
		return nil, fmt.Errorf("determinize: malformed NFA: %w", err)
	}

	d := New(1, n.NumSymbols())
	idMap := make(map[string]int) // canonical subset -> DFA state id
	start := n.Start()
	idMap[start.Key()] = 0
	stats.Inserts++
	if label, ok := lowestLabel(n, start); ok {
		d.SetStop(0, label)
	}

	type work struct {
		set nfa.StateSet
		id  int
	}
	stack := []work{{start, 0}}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for sym := 0; sym < n.NumSymbols(); sym++ {
			next := n.Next(nfa.Symbol(sym), cur.set)
			if len(next) == 0 && !o.keepInvalid {
				continue // discard invalid transitions
			}

			stats.Lookups++
			id, ok := idMap[next.Key()]
			if !ok {
				id = d.Size()
				if id >= o.maxStates {
					return nil, fmt.Errorf("determinize: %w (max %d states)", ErrCapacity, o.maxStates)
				}
				d.Resize(id + 1)
				idMap[next.Key()] = id
				stats.Inserts++
				if label, ok := lowestLabel(n, next); ok {
					d.SetStop(id, label)
				}
				stack = append(stack, work{next, id})
			}

			if err := d.SetTransition(cur.id, id, sym); err != nil {
				return nil, fmt.Errorf("determinize: %w", err)
			}
		}
	}

	return d, nil
}

// lowestLabel returns the lowest accept label among the accepting states of
// set. Labels are pattern-registration IDs, so the lowest label is the
// earliest-registered pattern: precedence never depends on subset iteration
// order.
func lowestLabel(n *nfa.NFA, set nfa.StateSet) (int, bool) {
	label, found := 0, false
	for _, id := range set {
		if !n.IsStop(id) {
			continue
		}
		if l := n.StopLabel(id); !found || l < label {
			label, found = l, true
		}
	}
	return label, found
}
