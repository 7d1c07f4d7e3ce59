package engine

import (
	"crypto/rand"
	"time"

	"github.com/named-data/ndndface/std/ndn"
)

// Timer is the real-clock ndn.Timer implementation, backed by
// time.AfterFunc. Ported from the teacher's std/engine/basic/timer.go.
type Timer struct{}

func NewTimer() ndn.Timer { return Timer{} }

func (Timer) Now() time.Time { return time.Now() }

func (Timer) Schedule(d time.Duration, f func()) func() error {
	t := time.AfterFunc(d, f)
	stopped := false
	return func() error {
		if stopped {
			return errAlreadyCancelled
		}
		stopped = true
		if !t.Stop() {
			return errAlreadyCancelled
		}
		return nil
	}
}

func (Timer) Sleep(d time.Duration) { time.Sleep(d) }

func (Timer) Nonce() []byte {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return buf
}

var errAlreadyCancelled = &timerError{"event has already been canceled"}

type timerError struct{ msg string }

func (e *timerError) Error() string { return e.msg }
