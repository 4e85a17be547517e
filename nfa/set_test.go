package nfa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateSet_with(t *testing.T) {
	var s StateSet
	s = s.with(3)
	s = s.with(1)
	s = s.with(3) // duplicate
	s = s.with(2)
	assert.Equal(t, StateSet{1, 2, 3}, s)
	assert.True(t, s.Contains(2))
	assert.False(t, s.Contains(4))
}

func TestStateSet_union(t *testing.T) {
	tests := []struct {
		name    string
		a, b, w StateSet
	}{
		{"both_empty", nil, nil, nil},
		{"left_empty", nil, StateSet{1, 2}, StateSet{1, 2}},
		{"right_empty", StateSet{1, 2}, nil, StateSet{1, 2}},
		{"interleaved", StateSet{1, 3, 5}, StateSet{2, 3, 4}, StateSet{1, 2, 3, 4, 5}},
		{"identical", StateSet{1, 2}, StateSet{1, 2}, StateSet{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.union(tt.b)
			assert.True(t, tt.w.Equal(got), "got %v, want %v", got, tt.w)
		})
	}
}

func TestStateSet_Key(t *testing.T) {
	assert.Equal(t, "", StateSet(nil).Key())
	assert.Equal(t, "0", StateSet{0}.Key())
	assert.Equal(t, "1,2,10", StateSet{1, 2, 10}.Key())
	// keys must differ where sets differ
	assert.NotEqual(t, StateSet{1, 21}.Key(), StateSet{12, 1}.Key())
}

func TestCanon(t *testing.T) {
	assert.Nil(t, canon(nil))
	got := canon([]StateID{3, 1, 3, 2, 1})
	assert.Equal(t, StateSet{1, 2, 3}, got)
}
