// Package cst implements the Content Store / registered-prefix table
// (spec.md §3.6, §4.3): an append-only set of locally registered prefixes
// with their Interest handlers, looked up by first-match (not
// longest-match) to preserve the historical source's observable dispatch
// order. Grounded on the teacher's std/engine/basic/engine.go FIB
// handling, simplified from a name-trie to a flat slice since first-match
// semantics require iteration order, not prefix-tree structure.
package cst

import (
	"sync"

	enc "github.com/named-data/ndndface/std/encoding"
	"github.com/named-data/ndndface/wire"
)

// InterestDirective is returned by an InterestSink to tell the engine
// whether it produced a response to send (spec.md §4.7.4).
type InterestDirective int

const (
	// InterestIgnored means the sink did not handle the Interest; no
	// response is sent.
	InterestIgnored InterestDirective = iota
	// InterestConsumed means the sink handled the Interest; if it also
	// set the out-parameter Data, that Data is encoded and sent back.
	InterestConsumed
)

// InterestSink handles an inbound Interest matched against a registered
// prefix. It returns the directive and, when InterestConsumed, may
// return a non-nil Data to send in response.
type InterestSink func(it *wire.Interest) (InterestDirective, *wire.Data)

// Entry is a single registered prefix (spec.md §3.6).
type Entry struct {
	Prefix enc.Name
	Sink   InterestSink
	Flags  uint32
}

// Table is the CST itself: append-only for the lifetime of the owning
// Face, destroyed wholesale on Face close.
type Table struct {
	mu      sync.Mutex
	entries []*Entry
}

func NewTable() *Table {
	return &Table{}
}

// Register appends entry. Order matters: first-match lookup means an
// earlier, broader registration can shadow a later, narrower one,
// exactly as in the historical source (spec.md §4.3).
func (t *Table) Register(entry *Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, entry)
}

// Lookup returns the first registered entry whose prefix is a prefix of
// (or equal to) name, in registration order.
func (t *Table) Lookup(name enc.Name) (entry *Entry, found bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return enc.FirstMatch(t.entries, name, func(e *Entry) enc.Name { return e.Prefix })
}

// Clear removes every registered prefix, for use on Face close.
func (t *Table) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = nil
}

// Len reports the number of registered prefixes, for diagnostics.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
