// Package keycache implements the key cache (spec.md §3.7, §4.6): a
// small, FIFO-bounded, name-indexed cache of verified public keys used
// by the Verifier to avoid re-fetching a key for every Data under the
// same signer. Grounded on the teacher's std/engine/basic trie-based FIB
// lookups for the longest-match algorithm, and on
// internal/pqueue for O(log n) oldest-entry eviction instead of a slice
// shift.
package keycache

import (
	"time"

	enc "github.com/named-data/ndndface/std/encoding"
	"github.com/named-data/ndndface/std/ndn"

	"github.com/named-data/ndndface/internal/pqueue"
)

// DefaultCapacity bounds the cache so a long-running Face talking to many
// signers doesn't grow the key cache unboundedly (spec.md §3.7 leaves the
// eviction policy to the implementation; "correctness does not depend on
// retention").
const DefaultCapacity = 256

// Entry is a single cached key (spec.md §3.7).
type Entry struct {
	KeyName   enc.Name
	Key       ndn.PublicKey
	CreatedAt time.Time
}

// Cache is the key cache itself, guarded by the caller (the Verifier runs
// single-threaded on the Face's event loop, so no internal locking is
// needed here — matching how the teacher's own FIB/PIT structures assume
// single-threaded access from the engine goroutine).
type Cache struct {
	capacity int
	entries  []*Entry
	order    pqueue.Queue[*Entry, int64]
	seq      int64
}

func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{capacity: capacity, order: pqueue.New[*Entry, int64]()}
}

// Insert records key under keyName, evicting the oldest entry first if
// the cache is already at capacity.
func (c *Cache) Insert(keyName enc.Name, key ndn.PublicKey, now time.Time) {
	if len(c.entries) >= c.capacity {
		c.evictOldest()
	}
	e := &Entry{KeyName: keyName, Key: key, CreatedAt: now}
	c.entries = append(c.entries, e)
	c.seq++
	c.order.Push(e, c.seq)
}

func (c *Cache) evictOldest() {
	if c.order.Len() == 0 {
		return
	}
	oldest := c.order.Pop()
	for i, e := range c.entries {
		if e == oldest {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			break
		}
	}
}

// Lookup returns the entry whose KeyName is the longest prefix of name
// (spec.md §4.1/§4.6), or found=false if no cached key's name matches.
func (c *Cache) Lookup(name enc.Name) (entry *Entry, found bool) {
	return enc.LongestMatch(c.entries, name, func(e *Entry) enc.Name { return e.KeyName })
}

// Len reports the number of cached keys, for diagnostics.
func (c *Cache) Len() int {
	return len(c.entries)
}
