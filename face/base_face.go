// Package face provides concrete Transport adapters over the contract
// spec.md §4.5 describes: connect/send/close plus upward delivery of
// fully-framed elements. Ported from the teacher's std/engine/face.
package face

import (
	"sync"
	"sync/atomic"
)

// Transport is the contract an engine.Face drives (spec.md §4.5).
type Transport interface {
	Open() error
	Close() error
	Send(pkt []byte) error
	IsRunning() bool
	IsLocal() bool
	OnPacket(onPkt func(frame []byte))
	OnError(onError func(err error))
	OnUp(onUp func()) (cancel func())
	OnDown(onDown func()) (cancel func())
	String() string
}

// baseFace holds the bookkeeping shared by every Transport implementation:
// running state, local/remote flag, and OnUp/OnDown subscriber lists.
// Ported verbatim in spirit from base_face.go.
type baseFace struct {
	running atomic.Bool
	local   bool
	onPkt   func(frame []byte)
	onError func(err error)
	sendMut sync.Mutex

	onUp     sync.Map
	onDown   sync.Map
	onUpHndl int
	onDnHndl int
}

func newBaseFace(local bool) baseFace {
	return baseFace{local: local}
}

func (f *baseFace) IsRunning() bool { return f.running.Load() }
func (f *baseFace) IsLocal() bool   { return f.local }

func (f *baseFace) OnPacket(onPkt func(frame []byte)) { f.onPkt = onPkt }
func (f *baseFace) OnError(onError func(err error))   { f.onError = onError }

func (f *baseFace) OnUp(onUp func()) (cancel func()) {
	hndl := f.onUpHndl
	f.onUp.Store(hndl, onUp)
	f.onUpHndl++
	return func() { f.onUp.Delete(hndl) }
}

func (f *baseFace) OnDown(onDown func()) (cancel func()) {
	hndl := f.onDnHndl
	f.onDown.Store(hndl, onDown)
	f.onDnHndl++
	return func() { f.onDown.Delete(hndl) }
}

func (f *baseFace) setStateDown() {
	if f.running.Swap(false) {
		f.onDown.Range(func(_, cb any) bool {
			cb.(func())()
			return true
		})
	}
}

func (f *baseFace) setStateUp() {
	if !f.running.Swap(true) {
		f.onUp.Range(func(_, cb any) bool {
			cb.(func())()
			return true
		})
	}
}

func (f *baseFace) setStateClosed() bool {
	return f.running.Swap(false)
}
