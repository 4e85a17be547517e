package dfa

import (
	"errors"

	"github.com/calmh/xdr"
)

// A Table is the dense serialized form of a DFA: a [state][symbol] -> state
// transition matrix plus a parallel accept-label array. A compiled automaton
// can be persisted as a Table and reloaded with FromTable, skipping
// determinization entirely.
//
type Table struct {
	NumSymbols int
	Next       []int32 // len Size*NumSymbols, row-major, None if absent
	Labels     []int32 // len Size, None if non-accepting
}

const maxTableStates = 1 << 24

// ErrTable is returned by FromTable for structurally invalid tables.
var ErrTable = errors.New("malformed DFA table")

// Table returns the dense table form of d.
//
func (d *DFA) Table() Table {
	t := Table{
		NumSymbols: d.symbols,
		Next:       make([]int32, len(d.states)*d.symbols),
		Labels:     make([]int32, len(d.states)),
	}
	for i := range d.states {
		copy(t.Next[i*d.symbols:], d.states[i].next)
		t.Labels[i] = None
		if d.states[i].stop {
			t.Labels[i] = d.states[i].label
		}
	}
	return t
}

// FromTable reconstructs a DFA from its dense table form.
//
func FromTable(t Table) (*DFA, error) {
	if t.NumSymbols < 1 || len(t.Next) != len(t.Labels)*t.NumSymbols {
		return nil, ErrTable
	}
	size := len(t.Labels)
	for _, to := range t.Next {
		if to != None && (to < 0 || int(to) >= size) {
			return nil, ErrTable
		}
	}
	d := New(size, t.NumSymbols)
	for i := 0; i < size; i++ {
		copy(d.states[i].next, t.Next[i*t.NumSymbols:])
		if t.Labels[i] != None {
			d.states[i].stop = true
			d.states[i].label = t.Labels[i]
		}
	}
	return d, nil
}

// XDRSize returns the encoded size of the table in bytes.
//
func (t Table) XDRSize() int {
	return 4 + 4 + 4 + 4*len(t.Next) + 4 + 4*len(t.Labels)
}

// MarshalXDRInto encodes the table into m.
//
func (t Table) MarshalXDRInto(m *xdr.Marshaller) error {
	m.MarshalUint32(uint32(t.NumSymbols))
	m.MarshalUint32(uint32(len(t.Labels)))
	m.MarshalUint32(uint32(len(t.Next)))
	for _, v := range t.Next {
		m.MarshalUint32(uint32(v))
	}
	m.MarshalUint32(uint32(len(t.Labels)))
	for _, v := range t.Labels {
		m.MarshalUint32(uint32(v))
	}
	return m.Error
}

// UnmarshalXDRFrom decodes the table from u.
//
func (t *Table) UnmarshalXDRFrom(u *xdr.Unmarshaller) error {
	t.NumSymbols = int(u.UnmarshalUint32())
	size := int(u.UnmarshalUint32())
	if size > maxTableStates {
		return xdr.ElementSizeExceeded("number of states", size, maxTableStates)
	}
	ln := int(u.UnmarshalUint32())
	if ln != size*t.NumSymbols {
		return ErrTable
	}
	t.Next = make([]int32, ln)
	for i := range t.Next {
		t.Next[i] = int32(u.UnmarshalUint32())
	}
	ll := int(u.UnmarshalUint32())
	if ll != size {
		return ErrTable
	}
	t.Labels = make([]int32, ll)
	for i := range t.Labels {
		t.Labels[i] = int32(u.UnmarshalUint32())
	}
	return u.Error
}

// MarshalXDR encodes the table into a fresh byte slice.
//
func (t Table) MarshalXDR() ([]byte, error) {
	m := &xdr.Marshaller{Data: make([]byte, t.XDRSize())}
	if err := t.MarshalXDRInto(m); err != nil {
		return nil, err
	}
	return m.Data, nil
}

// UnmarshalXDR decodes the table from bs.
//
func (t *Table) UnmarshalXDR(bs []byte) error {
	u := &xdr.Unmarshaller{Data: bs}
	return t.UnmarshalXDRFrom(u)
}
