// Package ndn holds the small set of interfaces and sentinel errors shared
// across the Face's components (Timer, Signer, PublicKey, dispatch
// result types), the way the teacher's std/ndn package does for the
// modern engine. Ported in spirit from std/ndn/errors.go.
package ndn

import (
	"errors"
	"fmt"
)

type ErrInvalidValue struct {
	Item  string
	Value any
}

func (e ErrInvalidValue) Error() string {
	return fmt.Sprintf("invalid value for %s: %v", e.Item, e.Value)
}

// ErrNotSupported is reported synchronously from Face construction when a
// required primitive (e.g. a transport scheme) is unavailable (spec.md §7).
type ErrNotSupported struct {
	Item string
}

func (e ErrNotSupported) Error() string {
	return fmt.Sprintf("not supported: %s", e.Item)
}

// ErrNotOpen is returned by Face.Close when the Face is not in the Opened
// state (spec.md §4.7.3, §7).
var ErrNotOpen = errors.New("face is not open")

// ErrFaceDown describes a Send attempted on a closed transport. The
// Transport implementations in package face report that case with their
// own "face is not running" error rather than this value.
var ErrFaceDown = errors.New("face is down, unable to send packet")

// ErrMultipleHandlers is logged by Face.RegisterPrefix when it is called
// twice for an identical prefix (mirrors the teacher's AttachHandler
// check); RegisterPrefix itself returns no error.
var ErrMultipleHandlers = errors.New("multiple handlers attached to the same prefix")

// ErrNoPubKey is returned when a Signer has no public key to report.
var ErrNoPubKey = errors.New("public key does not exist")

// ErrWrongType describes a decoded element that is not of the expected
// kind. The wire package's Sniff and Parse* functions report that case
// with ok=false rather than this value.
var ErrWrongType = errors.New("element is not of the expected type")
