package dfa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmatts/sublex/dfa"
	"github.com/dmatts/sublex/nfa"
)

// symbols for the {a, b} alphabet used below
const (
	symA nfa.Symbol = iota
	symB
)

// buildUnion builds the union NFA of pattern "ab*" (label 0) and pattern "a"
// (label 1) over the alphabet {a, b}, with a single start state feeding both
// fragments through epsilon transitions.
func buildUnion(t *testing.T) *nfa.NFA {
	t.Helper()
	n := nfa.New(2)
	start := n.AddState()
	require.NoError(t, n.MarkStart(start))

	// "ab*": 1 -a-> 2, 2 -ε-> 3, 3 -b-> 4, 4 -ε-> 3; accept 2 and 4
	s1, s2, s3, s4 := n.AddState(), n.AddState(), n.AddState(), n.AddState()
	require.NoError(t, n.AddEpsilon(start, s1))
	require.NoError(t, n.AddTransition(s1, symA, s2))
	require.NoError(t, n.AddEpsilon(s2, s3))
	require.NoError(t, n.AddTransition(s3, symB, s4))
	require.NoError(t, n.AddEpsilon(s4, s3))
	require.NoError(t, n.MarkAccepting(s2, 0))
	require.NoError(t, n.MarkAccepting(s4, 0))

	// "a": 5 -a-> 6; accept 6
	s5, s6 := n.AddState(), n.AddState()
	require.NoError(t, n.AddEpsilon(start, s5))
	require.NoError(t, n.AddTransition(s5, symA, s6))
	require.NoError(t, n.MarkAccepting(s6, 1))

	return n
}

func TestDeterminize(t *testing.T) {
	var stats dfa.Stats
	d, err := dfa.Determinize(buildUnion(t), dfa.WithStats(&stats))
	require.NoError(t, err)

	// {start} -a-> {ab* after a, a after a} -b-> {ab* loop} -b-> itself
	assert.Equal(t, 3, d.Size())
	assert.False(t, d.IsStop(0))

	s1 := d.Transition(0, int(symA))
	require.NotEqual(t, dfa.None, s1)
	assert.True(t, d.IsStop(s1))
	// both patterns accept here; the earlier-registered label wins
	assert.Equal(t, 0, d.StopLabel(s1))

	s2 := d.Transition(s1, int(symB))
	require.NotEqual(t, dfa.None, s2)
	assert.True(t, d.IsStop(s2))
	assert.Equal(t, 0, d.StopLabel(s2))
	assert.Equal(t, s2, d.Transition(s2, int(symB)))

	// discarded invalid transitions
	assert.Equal(t, dfa.None, d.Transition(0, int(symB)))
	assert.Equal(t, dfa.None, d.Transition(s1, int(symA)))

	// one DFA state per distinct subset, never two
	assert.Equal(t, d.Size(), stats.Inserts)
	assert.LessOrEqual(t, stats.Inserts, stats.Lookups+1)
}

func TestDeterminize_KeepInvalid(t *testing.T) {
	d, err := dfa.Determinize(buildUnion(t), dfa.KeepInvalid())
	require.NoError(t, err)

	// the transition function is total: every (state, symbol) pair resolves
	for st := 0; st < d.Size(); st++ {
		for sym := 0; sym < d.NumSymbols(); sym++ {
			assert.NotEqual(t, dfa.None, d.Transition(st, sym), "state %d symbol %d", st, sym)
		}
	}

	// the sink is non-accepting and loops on itself
	sink := d.Transition(0, int(symB))
	require.NotEqual(t, dfa.None, sink)
	assert.False(t, d.IsStop(sink))
	assert.Equal(t, sink, d.Transition(sink, int(symA)))
	assert.Equal(t, sink, d.Transition(sink, int(symB)))
}

func TestDeterminize_EmptyNFA(t *testing.T) {
	d, err := dfa.Determinize(nfa.New(2))
	require.NoError(t, err)
	assert.Equal(t, 1, d.Size())
	assert.False(t, d.IsStop(0))
	assert.Equal(t, dfa.None, d.Transition(0, 0))
	assert.Equal(t, dfa.None, d.Transition(0, 1))
}

func TestDeterminize_NullableStart(t *testing.T) {
	// a pattern whose start closure is accepting: "b*"
	n := nfa.New(2)
	start := n.AddState()
	require.NoError(t, n.MarkStart(start))
	loop := n.AddState()
	require.NoError(t, n.AddEpsilon(start, loop))
	require.NoError(t, n.AddTransition(loop, symB, loop))
	require.NoError(t, n.MarkAccepting(loop, 0))

	d, err := dfa.Determinize(n)
	require.NoError(t, err)
	// the initial DFA state matches the empty string; rejecting that match is
	// the scanner's job
	assert.True(t, d.IsStop(0))
	assert.Equal(t, 0, d.StopLabel(0))
}

func TestDeterminize_Capacity(t *testing.T) {
	_, err := dfa.Determinize(buildUnion(t), dfa.MaxStates(2))
	assert.ErrorIs(t, err, dfa.ErrCapacity)
}

func TestDeterminize_Deterministic(t *testing.T) {
	// two runs over the same NFA yield identical automata
	n := buildUnion(t)
	d1, err := dfa.Determinize(n)
	require.NoError(t, err)
	d2, err := dfa.Determinize(n)
	require.NoError(t, err)
	assert.Equal(t, d1.Table(), d2.Table())
}
