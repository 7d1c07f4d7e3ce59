package ndn

import "time"

// Timer abstracts wall-clock time and deferred execution so that the PIT's
// timeout logic (spec.md §4.2) and the host-probe timers (§4.8) can be
// driven by a deterministic fake in tests. Ported in spirit from the
// teacher's ndn.Timer / std/engine/basic/timer.go.
type Timer interface {
	// Now returns the current time.
	Now() time.Time
	// Schedule runs f after d elapses, returning a cancel function. The
	// cancel function returns an error if the event already fired or was
	// already cancelled (idempotent no-op on a second cancel is allowed).
	Schedule(d time.Duration, f func()) (cancel func() error)
	// Sleep blocks the caller for d. Not used by the Face's own event
	// loop (which never blocks), but kept for parity with the teacher's
	// Timer interface and for use by CLI tools.
	Sleep(d time.Duration)
	// Nonce returns a fresh random nonce.
	Nonce() []byte
}

// InterestResult is the outcome delivered to an application's sink after
// expressing an Interest (spec.md §7).
type InterestResult int

const (
	// InterestResultData indicates a Data packet satisfied the Interest
	// and was verified.
	InterestResultData InterestResult = iota
	// InterestResultUnverified indicates Data arrived but verify_enabled
	// was false, so no signature check was performed.
	InterestResultUnverified
	// InterestResultBadSignature indicates Data arrived but failed
	// signature verification, or carried an unsupported locator/witness.
	InterestResultBadSignature
	// InterestResultTimeout indicates no Data arrived within the
	// Interest's lifetime.
	InterestResultTimeout
)

func (r InterestResult) String() string {
	switch r {
	case InterestResultData:
		return "Content"
	case InterestResultUnverified:
		return "ContentUnverified"
	case InterestResultBadSignature:
		return "ContentBad"
	case InterestResultTimeout:
		return "InterestTimedOut"
	default:
		return "Unknown"
	}
}

// SinkDirective is returned by a PIT sink on timeout to tell the PIT
// whether to re-express the Interest (spec.md §4.2, §8 boundary case).
type SinkDirective int

const (
	// SinkDone means the entry should not be re-expressed.
	SinkDone SinkDirective = iota
	// SinkReexpress means the Interest should be resent with a fresh
	// timer.
	SinkReexpress
)
