package encoding_test

import (
	"testing"

	enc "github.com/named-data/ndndface/std/encoding"
	"github.com/stretchr/testify/require"
)

func TestNameFromStringRoundTrip(t *testing.T) {
	n, err := enc.NameFromString("/testecho/hello")
	require.NoError(t, err)
	require.Equal(t, 2, n.Len())
	require.Equal(t, "/testecho/hello", n.String())
}

func TestNamePercentEscaping(t *testing.T) {
	n, err := enc.NameFromString("/%C1.M.S.localhost/%C1.M.SRV/ndnd/KEY")
	require.NoError(t, err)
	require.Equal(t, 4, n.Len())
	require.Equal(t, "/%C1.M.S.localhost/%C1.M.SRV/ndnd/KEY", n.String())
}

func TestNameEncodeDecodeRoundTrip(t *testing.T) {
	n, err := enc.NameFromString("/a/b/c")
	require.NoError(t, err)

	wire := n.Bytes()
	decoded, used, ok := enc.ParseName(wire)
	require.True(t, ok)
	require.Equal(t, len(wire), used)
	require.True(t, n.Equal(decoded))
}

// Property 7 of spec.md §8: Name.Append(c).Prefix(n-1).Equal(Name.Prefix(n-1))
func TestAppendPrefixInvariant(t *testing.T) {
	n, err := enc.NameFromString("/a/b/c")
	require.NoError(t, err)

	appended := n.Append(enc.NewComponent([]byte("d")))
	require.True(t, appended.Prefix(n.Len()).Equal(n.Prefix(n.Len())))
}

func TestIsPrefixOfAndMatch(t *testing.T) {
	prefix, err := enc.NameFromString("/a/b")
	require.NoError(t, err)
	full, err := enc.NameFromString("/a/b/c")
	require.NoError(t, err)

	require.True(t, prefix.IsPrefixOf(full))
	require.True(t, prefix.Match(full))
	require.True(t, full.Match(full))
	require.False(t, full.Match(prefix))
}

func TestLongestMatch(t *testing.T) {
	type cand struct {
		name enc.Name
		id   string
	}
	short, _ := enc.NameFromString("/a")
	long, _ := enc.NameFromString("/a/b")
	target, _ := enc.NameFromString("/a/b/c")

	cands := []cand{{short, "short"}, {long, "long"}}
	best, found := enc.LongestMatch(cands, target, func(c cand) enc.Name { return c.name })
	require.True(t, found)
	require.Equal(t, "long", best.id)
}

func TestFirstMatch(t *testing.T) {
	type cand struct {
		name enc.Name
		id   string
	}
	short, _ := enc.NameFromString("/a")
	long, _ := enc.NameFromString("/a/b")
	target, _ := enc.NameFromString("/a/b/c")

	// Registered in short-then-long order: first-match must pick "short"
	// even though "long" is the longer match (spec.md §4.3, §9).
	cands := []cand{{short, "short"}, {long, "long"}}
	best, found := enc.FirstMatch(cands, target, func(c cand) enc.Name { return c.name })
	require.True(t, found)
	require.Equal(t, "short", best.id)
}
