package hoststrategy_test

import (
	"testing"

	"github.com/named-data/ndndface/hoststrategy"
	"github.com/stretchr/testify/require"
)

func fixedOrder(order []string) func([]string) {
	return func(s []string) {
		copy(s, order)
	}
}

func TestStrategyPopsInShuffledOrder(t *testing.T) {
	s := hoststrategy.New([]string{"a", "b", "c"}, fixedOrder([]string{"b", "a", "c"}))
	require.Equal(t, 3, s.Remaining())

	host, ok := s.Next()
	require.True(t, ok)
	require.Equal(t, "b", host)

	host, ok = s.Next()
	require.True(t, ok)
	require.Equal(t, "a", host)

	host, ok = s.Next()
	require.True(t, ok)
	require.Equal(t, "c", host)

	_, ok = s.Next()
	require.False(t, ok)
	require.Equal(t, 0, s.Remaining())
}

func TestStrategyEmptyList(t *testing.T) {
	s := hoststrategy.New(nil, fixedOrder(nil))
	_, ok := s.Next()
	require.False(t, ok)
}
