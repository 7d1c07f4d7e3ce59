package face

import (
	"fmt"

	"github.com/gorilla/websocket"
)

// WebSocketFace is a Transport backed by a gorilla/websocket connection,
// for browser-reachable or proxied deployments. Ported from the
// teacher's ws_face.go.
type WebSocketFace struct {
	baseFace
	url  string
	conn *websocket.Conn
}

func NewWebSocketFace(url string, local bool) *WebSocketFace {
	return &WebSocketFace{
		baseFace: newBaseFace(local),
		url:      url,
	}
}

func (f *WebSocketFace) String() string {
	return fmt.Sprintf("ws-face (%s)", f.url)
}

func (f *WebSocketFace) Open() error {
	if f.IsRunning() {
		return fmt.Errorf("face is already running")
	}
	if f.onError == nil || f.onPkt == nil {
		return fmt.Errorf("face callbacks are not set")
	}
	c, _, err := websocket.DefaultDialer.Dial(f.url, nil)
	if err != nil {
		return err
	}
	f.conn = c
	f.setStateUp()
	go f.receive()
	return nil
}

func (f *WebSocketFace) Close() error {
	if f.setStateClosed() && f.conn != nil {
		return f.conn.Close()
	}
	return nil
}

func (f *WebSocketFace) Send(pkt []byte) error {
	if !f.IsRunning() {
		return fmt.Errorf("face is not running")
	}
	f.sendMut.Lock()
	defer f.sendMut.Unlock()
	return f.conn.WriteMessage(websocket.BinaryMessage, pkt)
}

func (f *WebSocketFace) receive() {
	defer f.setStateDown()
	for {
		typ, msg, err := f.conn.ReadMessage()
		if err != nil {
			if f.IsRunning() {
				f.onError(err)
			}
			return
		}
		if typ != websocket.BinaryMessage {
			continue
		}
		if !f.IsRunning() {
			return
		}
		f.onPkt(msg)
	}
}
