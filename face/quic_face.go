package face

import (
	"context"
	"fmt"
	"net/http"

	"github.com/quic-go/webtransport-go"
)

// QuicFace is a Transport backed by a WebTransport session's unreliable
// datagrams, adapted from the forwarder's http3-transport.go pattern
// (the client side of the same protocol rather than the server side).
type QuicFace struct {
	baseFace
	url  string
	dial webtransport.Dialer
	sess *webtransport.Session
	ctx  context.Context
	stop context.CancelFunc
}

func NewQuicFace(url string) *QuicFace {
	ctx, cancel := context.WithCancel(context.Background())
	return &QuicFace{
		baseFace: newBaseFace(false),
		url:      url,
		ctx:      ctx,
		stop:     cancel,
	}
}

func (f *QuicFace) String() string {
	return fmt.Sprintf("quic-face (%s)", f.url)
}

func (f *QuicFace) Open() error {
	if f.IsRunning() {
		return fmt.Errorf("face is already running")
	}
	if f.onError == nil || f.onPkt == nil {
		return fmt.Errorf("face callbacks are not set")
	}
	resp, sess, err := f.dial.Dial(f.ctx, f.url, http.Header{})
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		sess.CloseWithError(0, "")
		return fmt.Errorf("webtransport handshake status %d", resp.StatusCode)
	}
	f.sess = sess
	f.setStateUp()
	go f.receive()
	return nil
}

func (f *QuicFace) Close() error {
	if f.setStateClosed() {
		f.stop()
		if f.sess != nil {
			return f.sess.CloseWithError(0, "")
		}
	}
	return nil
}

func (f *QuicFace) Send(pkt []byte) error {
	if !f.IsRunning() {
		return fmt.Errorf("face is not running")
	}
	return f.sess.SendDatagram(pkt)
}

func (f *QuicFace) receive() {
	defer f.setStateDown()
	for {
		msg, err := f.sess.ReceiveDatagram(f.sess.Context())
		if err != nil {
			if f.IsRunning() {
				f.onError(err)
			}
			return
		}
		if !f.IsRunning() {
			return
		}
		f.onPkt(msg)
	}
}
