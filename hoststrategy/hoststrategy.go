// Package hoststrategy implements the host-and-port strategy (spec.md
// §3.8, §4.8, C8): a stateful enumerator of candidate forwarders used by
// the Face to fail over between hosts when probing for a live forwarder.
// New, patterned after the teacher's std/engine/face lifecycle
// (OnUp/OnDown) and tools/pingclient.go's timer/ticker usage; the
// enumerator itself has no analogue in the teacher since the teacher only
// ever dials a single configured forwarder.
package hoststrategy

import (
	"math/rand"
	"sync"
)

// Strategy holds a shuffled list of candidate forwarder hosts. Next pops
// one candidate at a time until the list is exhausted (spec.md §4.8).
type Strategy struct {
	mu         sync.Mutex
	candidates []string
}

// New builds a Strategy over hosts, shuffled once. If shuffle is nil,
// math/rand's default source is used; tests pass a deterministic shuffle
// to pin the probing order (spec.md §8 S3: "hosts [a, b, c] shuffled to
// [b, a, c]"). math/rand is a standard-library choice here because
// shuffling a slice is not a concern any dependency in the retrieval pack
// addresses — there is nothing to wire this to.
func New(hosts []string, shuffle func([]string)) *Strategy {
	cs := append([]string(nil), hosts...)
	if shuffle != nil {
		shuffle(cs)
	} else {
		rand.Shuffle(len(cs), func(i, j int) { cs[i], cs[j] = cs[j], cs[i] })
	}
	return &Strategy{candidates: cs}
}

// Next pops and returns the next untried candidate host, or found=false
// once the list is exhausted (spec.md §4.8: "exhausted -> None").
func (s *Strategy) Next() (host string, found bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.candidates) == 0 {
		return "", false
	}
	host, s.candidates = s.candidates[0], s.candidates[1:]
	return host, true
}

// Remaining reports how many untried candidates are left, for diagnostics.
func (s *Strategy) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.candidates)
}
