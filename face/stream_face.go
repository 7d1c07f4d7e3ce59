package face

import (
	"fmt"
	"io"
	"net"
)

// StreamFace is a Transport backed by a stream socket (Unix domain socket
// to a local forwarder, or TCP to a remote one). Ported from the
// teacher's stream_face.go.
type StreamFace struct {
	baseFace
	network string
	addr    string
	conn    net.Conn
}

// NewStreamFace constructs a StreamFace; network is "unix" or "tcp".
func NewStreamFace(network, addr string, local bool) *StreamFace {
	return &StreamFace{
		baseFace: newBaseFace(local),
		network:  network,
		addr:     addr,
	}
}

func (f *StreamFace) String() string {
	return fmt.Sprintf("stream-face (%s://%s)", f.network, f.addr)
}

func (f *StreamFace) Open() error {
	if f.IsRunning() {
		return fmt.Errorf("face is already running")
	}
	if f.onError == nil || f.onPkt == nil {
		return fmt.Errorf("face callbacks are not set")
	}
	c, err := net.Dial(f.network, f.addr)
	if err != nil {
		return err
	}
	f.conn = c
	f.setStateUp()
	go f.receive()
	return nil
}

func (f *StreamFace) Close() error {
	if f.setStateClosed() && f.conn != nil {
		return f.conn.Close()
	}
	return nil
}

func (f *StreamFace) Send(pkt []byte) error {
	if !f.IsRunning() {
		return fmt.Errorf("face is not running")
	}
	f.sendMut.Lock()
	defer f.sendMut.Unlock()
	_, err := f.conn.Write(pkt)
	return err
}

func (f *StreamFace) receive() {
	defer f.setStateDown()
	err := readElements(f.conn, func(b []byte) bool {
		f.onPkt(b)
		return f.IsRunning()
	})
	if f.IsRunning() {
		if err != nil {
			f.onError(err)
		} else {
			f.onError(io.EOF)
		}
	}
}
