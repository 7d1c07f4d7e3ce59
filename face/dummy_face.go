package face

import "time"

// DummyFace is a deterministic Transport test double. Sent packets are
// captured instead of going over the wire; inbound packets are injected
// with FeedPacket. Ported from the teacher's dummy_face.go.
type DummyFace struct {
	baseFace
	sendPkts [][]byte
}

func NewDummyFace(local bool) *DummyFace {
	return &DummyFace{baseFace: newBaseFace(local)}
}

func (f *DummyFace) String() string { return "dummy-face" }

func (f *DummyFace) Open() error {
	if f.IsRunning() {
		return nil
	}
	f.setStateUp()
	return nil
}

func (f *DummyFace) Close() error {
	f.setStateClosed()
	return nil
}

func (f *DummyFace) Send(pkt []byte) error {
	cp := make([]byte, len(pkt))
	copy(cp, pkt)
	f.sendMut.Lock()
	f.sendPkts = append(f.sendPkts, cp)
	f.sendMut.Unlock()
	return nil
}

// FeedPacket delivers pkt to the face's onPkt callback as if it had
// arrived over the wire, then yields briefly so any goroutine the
// callback spawns gets a chance to run before the caller inspects state.
func (f *DummyFace) FeedPacket(pkt []byte) {
	f.onPkt(pkt)
	time.Sleep(10 * time.Millisecond)
}

// Consume pops the oldest packet handed to Send, or reports ok=false
// if nothing has been sent yet.
func (f *DummyFace) Consume() (pkt []byte, ok bool) {
	time.Sleep(10 * time.Millisecond)
	f.sendMut.Lock()
	defer f.sendMut.Unlock()
	if len(f.sendPkts) == 0 {
		return nil, false
	}
	pkt, f.sendPkts = f.sendPkts[0], f.sendPkts[1:]
	return pkt, true
}

// SentCount reports how many packets are currently queued for Consume.
func (f *DummyFace) SentCount() int {
	f.sendMut.Lock()
	defer f.sendMut.Unlock()
	return len(f.sendPkts)
}
