// Package pit implements the Pending Interest Table (spec.md §3.5, §4.2):
// an unordered collection of outstanding Interests, each carrying its own
// lifetime timer, matched against inbound Data by longest-match lookup.
// Grounded on the teacher's std/engine/basic/engine.go PIT handling
// (Express/onDataMatch/onExpressTimeout), adapted from a name-trie keyed
// by exact outgoing name to a flat table keyed by entry identity, since
// spec.md §4.2 requires matching any Interest whose name is a *prefix* of
// the Data name, not only exact matches.
package pit

import (
	"sync"

	enc "github.com/named-data/ndndface/std/encoding"
	"github.com/named-data/ndndface/std/ndn"
	"github.com/named-data/ndndface/wire"
)

// Sink receives the outcome of an expressed Interest: a matching Data
// delivery (with its verification outcome already decided) or a timeout.
// On timeout, data is nil; the returned directive tells the PIT whether
// to re-express the Interest (spec.md §8 boundary case: "single
// re-expression").
type Sink func(result ndn.InterestResult, data *wire.Data) ndn.SinkDirective

// Entry is a single outstanding Interest (spec.md §3.5). The Table owns
// mutation of every field after insertion.
type Entry struct {
	Interest *wire.Interest
	Sink     Sink

	cancel func() error
}

// Table is the PIT itself: process-local to a single Face, guarded by a
// mutex because the event loop may be entered re-entrantly (the Verifier
// calling back into ExpressInterest from inside a Data dispatch).
type Table struct {
	mu      sync.Mutex
	entries []*Entry
}

func NewTable() *Table {
	return &Table{}
}

// Insert adds entry to the table and arms its lifetime timer via timer.
// resend is invoked if the sink requests re-expression on timeout; it
// must encode and resend the Interest over the transport (spec.md §4.2's
// on_timer_fire re-insert).
func (t *Table) Insert(timer ndn.Timer, entry *Entry, resend func(*Entry)) {
	t.mu.Lock()
	t.entries = append(t.entries, entry)
	t.mu.Unlock()

	lifetime := entry.Interest.InterestLifetime
	entry.cancel = timer.Schedule(lifetime, func() {
		t.onTimerFire(timer, entry, resend)
	})
}

// onTimerFire removes entry (a no-op if it already raced with a Remove
// from a concurrent Data match) and invokes its sink with Timeout. A
// SinkReexpress directive re-inserts the entry with a fresh timer and
// asks the caller to resend the encoded Interest.
func (t *Table) onTimerFire(timer ndn.Timer, entry *Entry, resend func(*Entry)) {
	if !t.removeExact(entry) {
		return // already matched and removed; timer firing race is a no-op
	}
	if entry.Sink == nil {
		return
	}
	directive := entry.Sink(ndn.InterestResultTimeout, nil)
	if directive == ndn.SinkReexpress {
		t.Insert(timer, entry, resend)
		resend(entry)
	}
}

// MatchForData returns the entry whose Interest matches name with the
// greatest component count (spec.md §4.1/§4.2), or found=false if none
// match. The entry is NOT removed; callers must call Remove explicitly
// once they've decided to consume it (this lets onElement cancel the
// timer before running the Verifier, per spec.md §4.7.4).
func (t *Table) MatchForData(name enc.Name) (entry *Entry, found bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	matching := make([]*Entry, 0, len(t.entries))
	for _, e := range t.entries {
		if e.Interest.MatchesName(name) {
			matching = append(matching, e)
		}
	}
	return enc.LongestMatch(matching, name, func(e *Entry) enc.Name { return e.Interest.Name })
}

// Remove cancels entry's timer and removes it from the table. Idempotent:
// removing an entry that is no longer present (or already removed by a
// racing timer fire) is a no-op.
func (t *Table) Remove(entry *Entry) {
	if t.removeExact(entry) && entry.cancel != nil {
		entry.cancel()
	}
}

func (t *Table) removeExact(entry *Entry) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, e := range t.entries {
		if e == entry {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes every entry and cancels its timer, for use on Face close
// (spec.md §4.7.3: "Pending PIT entries and their timers MUST be
// cleared").
func (t *Table) Clear() {
	t.mu.Lock()
	entries := t.entries
	t.entries = nil
	t.mu.Unlock()

	for _, e := range entries {
		if e.cancel != nil {
			e.cancel()
		}
	}
}

// Len reports the number of outstanding entries, for diagnostics.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
