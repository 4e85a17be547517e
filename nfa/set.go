package nfa

import (
	"sort"
	"strconv"
)

// A StateSet is a canonical set of state indices: sorted ascending with no
// duplicates. Two sets are equal iff their elements are equal; canonical form
// makes that a simple element-wise comparison and gives every set a
// reproducible key, independent of insertion order or container internals.
//
type StateSet []StateID

// Contains returns true if the set contains id.
//
func (s StateSet) Contains(id StateID) bool {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= id })
	return i < len(s) && s[i] == id
}

// Equal returns true if s and o contain the same states.
//
func (s StateSet) Equal(o StateSet) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// Key returns a reproducible string form of the set, usable as a map key.
//
func (s StateSet) Key() string {
	if len(s) == 0 {
		return ""
	}
	b := make([]byte, 0, len(s)*4)
	for i, id := range s {
		if i > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(id), 10)
	}
	return string(b)
}

// with returns a set containing all of s plus id. s is returned unchanged if
// it already contains id.
func (s StateSet) with(id StateID) StateSet {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= id })
	if i < len(s) && s[i] == id {
		return s
	}
	out := make(StateSet, len(s)+1)
	copy(out, s[:i])
	out[i] = id
	copy(out[i+1:], s[i:])
	return out
}

// union returns the canonical union of s and o.
func (s StateSet) union(o StateSet) StateSet {
	if len(o) == 0 {
		return s
	}
	if len(s) == 0 {
		return append(StateSet(nil), o...)
	}
	out := make(StateSet, 0, len(s)+len(o))
	i, j := 0, 0
	for i < len(s) && j < len(o) {
		switch {
		case s[i] < o[j]:
			out = append(out, s[i])
			i++
		case s[i] > o[j]:
			out = append(out, o[j])
			j++
		default:
			out = append(out, s[i])
			i, j = i+1, j+1
		}
	}
	out = append(out, s[i:]...)
	out = append(out, o[j:]...)
	return out
}

// shift returns a copy of s with every element offset by d.
func (s StateSet) shift(d StateID) StateSet {
	if len(s) == 0 {
		return nil
	}
	out := make(StateSet, len(s))
	for i, id := range s {
		out[i] = id + d
	}
	return out
}

// canon sorts ids and removes duplicates in place, returning the canonical
// set.
func canon(ids []StateID) StateSet {
	if len(ids) == 0 {
		return nil
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := ids[:1]
	for _, id := range ids[1:] {
		if id != out[len(out)-1] {
			out = append(out, id)
		}
	}
	return out
}
