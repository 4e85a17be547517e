package nfa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmatts/sublex/nfa"
)

// buildABStar builds an automaton for "ab*" over the alphabet {a=0, b=1}:
//
//	0 --a--> 1 --ε--> 2 --b--> 3 --ε--> 2
//
// with 1 and 3 accepting.
func buildABStar(t *testing.T) *nfa.NFA {
	t.Helper()
	n := nfa.New(2)
	s0 := n.AddState()
	s1 := n.AddState()
	s2 := n.AddState()
	s3 := n.AddState()
	require.NoError(t, n.MarkStart(s0))
	require.NoError(t, n.AddTransition(s0, 0, s1))
	require.NoError(t, n.AddEpsilon(s1, s2))
	require.NoError(t, n.AddTransition(s2, 1, s3))
	require.NoError(t, n.AddEpsilon(s3, s2))
	require.NoError(t, n.MarkAccepting(s1, 0))
	require.NoError(t, n.MarkAccepting(s3, 0))
	return n
}

func TestNFA_EpsilonClosure(t *testing.T) {
	n := buildABStar(t)
	tests := []struct {
		name string
		in   nfa.StateSet
		want nfa.StateSet
	}{
		{"empty", nil, nil},
		{"no_eps", nfa.StateSet{0}, nfa.StateSet{0}},
		{"single", nfa.StateSet{1}, nfa.StateSet{1, 2}},
		{"cycle", nfa.StateSet{3}, nfa.StateSet{2, 3}},
		{"union", nfa.StateSet{1, 3}, nfa.StateSet{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.EpsilonClosure(tt.in)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}

func TestNFA_EpsilonCycleTerminates(t *testing.T) {
	n := nfa.New(1)
	a := n.AddState()
	b := n.AddState()
	require.NoError(t, n.AddEpsilon(a, b))
	require.NoError(t, n.AddEpsilon(b, a))
	got := n.EpsilonClosure(nfa.StateSet{a})
	assert.True(t, nfa.StateSet{a, b}.Equal(got))
}

func TestNFA_Next(t *testing.T) {
	n := buildABStar(t)
	start := n.Start()
	assert.True(t, nfa.StateSet{0}.Equal(start))

	onA := n.Next(0, start)
	assert.True(t, nfa.StateSet{1, 2}.Equal(onA))

	onAB := n.Next(1, onA)
	assert.True(t, nfa.StateSet{2, 3}.Equal(onAB))

	// no state transitions on 'a' after the first one
	assert.Empty(t, n.Next(0, onA))
	// out-of-range symbols have no transitions
	assert.Empty(t, n.Next(7, start))
	assert.Empty(t, n.Next(-1, start))
}

func TestNFA_Errors(t *testing.T) {
	n := nfa.New(2)
	s := n.AddState()
	assert.ErrorIs(t, n.AddTransition(s, 0, 42), nfa.ErrState)
	assert.ErrorIs(t, n.AddTransition(42, 0, s), nfa.ErrState)
	assert.ErrorIs(t, n.AddTransition(s, 2, s), nfa.ErrSymbol)
	assert.ErrorIs(t, n.AddEpsilon(s, 42), nfa.ErrState)
	assert.ErrorIs(t, n.MarkStart(42), nfa.ErrState)
	assert.ErrorIs(t, n.MarkAccepting(42, 0), nfa.ErrState)
}

func TestNFA_StopLabel(t *testing.T) {
	n := nfa.New(1)
	s := n.AddState()
	assert.False(t, n.IsStop(s))
	assert.Equal(t, nfa.NoLabel, n.StopLabel(s))
	require.NoError(t, n.MarkAccepting(s, 3))
	assert.True(t, n.IsStop(s))
	assert.Equal(t, 3, n.StopLabel(s))
}

func TestNFA_Merge(t *testing.T) {
	n := buildABStar(t)

	frag := nfa.New(2)
	f0 := frag.AddState()
	f1 := frag.AddState()
	require.NoError(t, frag.MarkStart(f0))
	require.NoError(t, frag.AddTransition(f0, 1, f1))
	require.NoError(t, frag.MarkAccepting(f1, 9))

	offset, err := n.Merge(frag)
	require.NoError(t, err)
	assert.Equal(t, nfa.StateID(4), offset)
	assert.Equal(t, 6, n.NumStates())

	// merged transitions are shifted, start set is not merged
	assert.True(t, nfa.StateSet{0}.Equal(n.Start()))
	got := n.Next(1, nfa.StateSet{offset + f0})
	assert.True(t, nfa.StateSet{offset + f1}.Equal(got))
	assert.Equal(t, 9, n.StopLabel(offset+f1))
	assert.NoError(t, n.Validate())

	// alphabet sizes must match
	_, err = n.Merge(nfa.New(3))
	assert.ErrorIs(t, err, nfa.ErrAlphabet)
}

func TestNFA_AcceptingStates(t *testing.T) {
	n := buildABStar(t)
	assert.Equal(t, []nfa.StateID{1, 3}, n.AcceptingStates())
}
