package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitNames(t *testing.T) {
	assert.Equal(t, []string{"Jane Doe", "John Smith"}, splitNames(" Jane Doe , John Smith ,"))
	assert.Equal(t, []string{"Jane Doe"}, splitNames("Jane Doe"))
	assert.Nil(t, splitNames(""))
	assert.Nil(t, splitNames(" , ,"))
}

func TestMatchListsByStrategy(t *testing.T) {
	l1 := []string{"Jane Doe", "John Smith"}
	l2 := []string{"John Smith", "Jane Doe"}

	matched, err := matchListsByStrategy("greedy", l1, l2)
	require.NoError(t, err)
	assert.True(t, matched)

	matched, err = matchListsByStrategy("optimal", l1, l2)
	require.NoError(t, err)
	assert.True(t, matched)
}

func TestMatchListsByStrategyDiffer(t *testing.T) {
	// A greedy pass burns "John Smith" on the bare "John"; the optimal
	// strategy reassigns and accepts.
	l1 := []string{"John", "John Smith"}
	l2 := []string{"John Smith", "John Carter"}

	matched, err := matchListsByStrategy("greedy", l1, l2)
	require.NoError(t, err)
	assert.False(t, matched)

	matched, err = matchListsByStrategy("optimal", l1, l2)
	require.NoError(t, err)
	assert.True(t, matched)
}

func TestMatchListsByStrategyUnknown(t *testing.T) {
	_, err := matchListsByStrategy("hungarian", []string{"a"}, []string{"a"})
	assert.Error(t, err)
}
