package cst_test

import (
	"testing"

	"github.com/named-data/ndndface/cst"
	"github.com/named-data/ndndface/std/encoding"
	"github.com/named-data/ndndface/wire"
	"github.com/stretchr/testify/require"
)

func mustName(t *testing.T, s string) encoding.Name {
	n, err := encoding.NameFromString(s)
	require.NoError(t, err)
	return n
}

func TestFirstMatchNotLongestMatch(t *testing.T) {
	tbl := cst.NewTable()

	var hitBroad, hitNarrow bool
	broad := &cst.Entry{Prefix: mustName(t, "/a"), Sink: func(*wire.Interest) (cst.InterestDirective, *wire.Data) {
		hitBroad = true
		return cst.InterestConsumed, nil
	}}
	narrow := &cst.Entry{Prefix: mustName(t, "/a/b"), Sink: func(*wire.Interest) (cst.InterestDirective, *wire.Data) {
		hitNarrow = true
		return cst.InterestConsumed, nil
	}}

	// Broad registered first: first-match means it shadows the narrower
	// registration even though narrow is a more specific match.
	tbl.Register(broad)
	tbl.Register(narrow)

	entry, found := tbl.Lookup(mustName(t, "/a/b/c"))
	require.True(t, found)
	_, _ = entry.Sink(&wire.Interest{Name: mustName(t, "/a/b/c")})
	require.True(t, hitBroad)
	require.False(t, hitNarrow)
}

func TestLookupNoMatch(t *testing.T) {
	tbl := cst.NewTable()
	tbl.Register(&cst.Entry{Prefix: mustName(t, "/a")})
	_, found := tbl.Lookup(mustName(t, "/b"))
	require.False(t, found)
}

func TestClear(t *testing.T) {
	tbl := cst.NewTable()
	tbl.Register(&cst.Entry{Prefix: mustName(t, "/a")})
	require.Equal(t, 1, tbl.Len())
	tbl.Clear()
	require.Equal(t, 0, tbl.Len())
	_, found := tbl.Lookup(mustName(t, "/a"))
	require.False(t, found)
}
