// Package utils holds small standalone helpers shared by the Face's
// packages that don't warrant their own home, ported from the teacher's
// std/utils.
package utils

import (
	"time"
)

// MakeTimestamp converts t to the number of milliseconds since the Unix
// epoch, the form used by Data's SignedInfo timestamp field
// (engine.Face.sendSelfReg stamps the self-registration envelope with
// this).
func MakeTimestamp(t time.Time) uint64 {
	return uint64(t.UnixMilli())
}
