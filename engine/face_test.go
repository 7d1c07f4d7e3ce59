package engine_test

import (
	"sync"
	"testing"
	"time"

	"github.com/named-data/ndndface/cst"
	"github.com/named-data/ndndface/engine"
	"github.com/named-data/ndndface/face"
	enc "github.com/named-data/ndndface/std/encoding"
	"github.com/named-data/ndndface/std/ndn"
	"github.com/named-data/ndndface/std/security/signer"
	"github.com/named-data/ndndface/wire"
	"github.com/stretchr/testify/require"
)

func mustName(t *testing.T, s string) enc.Name {
	t.Helper()
	n, err := enc.NameFromString(s)
	require.NoError(t, err)
	return n
}

func signedData(t *testing.T, name enc.Name, content []byte) *wire.Data {
	t.Helper()
	s := signer.NewSha256Signer()
	d := &wire.Data{Name: name, Content: content}
	sig, err := s.Sign(d.SignedPortion())
	require.NoError(t, err)
	d.Signature = wire.Signature{Type: s.Type(), Value: sig}
	return d
}

// singleHostFactory always returns the same DummyFace, for tests that
// configure a Face with WithHost rather than WithHostCandidates.
func singleHostFactory(df *face.DummyFace) engine.TransportFactory {
	return func(host string, port uint16) (face.Transport, error) { return df, nil }
}

func fixedOrder(order ...string) func([]string) {
	return func(s []string) { copy(s, order) }
}

func waitSent(t *testing.T, df *face.DummyFace) []byte {
	t.Helper()
	pkt, ok := df.Consume()
	require.True(t, ok, "expected a packet to have been sent")
	return pkt
}

func TestExpressInterestEcho(t *testing.T) {
	df := face.NewDummyFace(true)
	f, err := engine.NewFace(
		engine.WithHost("local", 6363),
		engine.WithTransportFactory(singleHostFactory(df)),
		engine.WithVerify(false),
	)
	require.NoError(t, err)

	var mu sync.Mutex
	var result ndn.InterestResult
	var data *wire.Data
	f.ExpressInterest(mustName(t, "/testecho/hello"), func(r ndn.InterestResult, d *wire.Data) ndn.SinkDirective {
		mu.Lock()
		result, data = r, d
		mu.Unlock()
		return ndn.SinkDone
	}, nil)
	f.Sync()

	sent := waitSent(t, df)
	kind, it, _, _, ok := wire.Sniff(sent)
	require.True(t, ok)
	require.Equal(t, wire.ElementInterest, kind)
	require.Equal(t, "/testecho/hello", it.Name.String())

	reply := signedData(t, mustName(t, "/testecho/hello/1"), []byte("pong"))
	df.FeedPacket(reply.Encode().Join())
	f.Sync()

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, ndn.InterestResultUnverified, result)
	require.NotNil(t, data)
	require.True(t, mustName(t, "/testecho/hello").IsPrefixOf(data.Name))
}

func TestExpressInterestTimeoutAndReexpress(t *testing.T) {
	df := face.NewDummyFace(true)
	timer := engine.NewDummyTimer()
	f, err := engine.NewFace(
		engine.WithHost("local", 6363),
		engine.WithTransportFactory(singleHostFactory(df)),
		engine.WithTimer(timer),
		engine.WithVerify(false),
	)
	require.NoError(t, err)

	var mu sync.Mutex
	timeouts := 0
	var finalResult ndn.InterestResult
	tmpl := &wire.Interest{InterestLifetime: 200 * time.Millisecond}
	f.ExpressInterest(mustName(t, "/nonexistent"), func(r ndn.InterestResult, d *wire.Data) ndn.SinkDirective {
		mu.Lock()
		defer mu.Unlock()
		finalResult = r
		timeouts++
		if timeouts == 1 {
			return ndn.SinkReexpress
		}
		return ndn.SinkDone
	}, tmpl)
	f.Sync()
	require.Equal(t, 1, df.SentCount())
	_, _ = df.Consume()

	timer.MoveForward(200 * time.Millisecond)
	f.Sync()
	require.Equal(t, 1, df.SentCount(), "re-expression should have resent exactly once")
	_, _ = df.Consume()

	timer.MoveForward(200 * time.Millisecond)
	f.Sync()

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, 2, timeouts)
	require.Equal(t, ndn.InterestResultTimeout, finalResult)
}

func TestWithDefaultInterestLifetimeAppliesToUntemplatedInterest(t *testing.T) {
	df := face.NewDummyFace(true)
	f, err := engine.NewFace(
		engine.WithHost("local", 6363),
		engine.WithTransportFactory(singleHostFactory(df)),
		engine.WithVerify(false),
		engine.WithDefaultInterestLifetime(777*time.Millisecond),
	)
	require.NoError(t, err)

	f.ExpressInterest(mustName(t, "/testecho/hello"), nil, nil)
	f.Sync()

	sent := waitSent(t, df)
	_, it, _, _, ok := wire.Sniff(sent)
	require.True(t, ok)
	require.Equal(t, 777*time.Millisecond, it.InterestLifetime)
}

func TestFailover(t *testing.T) {
	faces := map[string]*face.DummyFace{
		"a": face.NewDummyFace(false),
		"b": face.NewDummyFace(false),
		"c": face.NewDummyFace(false),
	}
	dialed := []string{}
	var dialedMu sync.Mutex
	factory := func(host string, port uint16) (face.Transport, error) {
		dialedMu.Lock()
		dialed = append(dialed, host)
		dialedMu.Unlock()
		return faces[host], nil
	}
	fixedShuffle := fixedOrder("b", "a", "c")

	timer := engine.NewDummyTimer()
	opened := make(chan struct{}, 1)
	f, err := engine.NewFace(
		engine.WithHostCandidates([]string{"a", "b", "c"}, 6363, fixedShuffle),
		engine.WithTransportFactory(factory),
		engine.WithTimer(timer),
		engine.WithOnOpen(func() { opened <- struct{}{} }),
	)
	require.NoError(t, err)

	f.ExpressInterest(mustName(t, "/anything"), nil, nil)
	f.Sync()

	dialedMu.Lock()
	require.Equal(t, []string{"b"}, dialed)
	dialedMu.Unlock()

	timer.MoveForward(3 * time.Second)
	f.Sync()

	dialedMu.Lock()
	require.Equal(t, []string{"b", "a"}, dialed)
	dialedMu.Unlock()

	reply := signedData(t, enc.Name{}, nil)
	faces["a"].FeedPacket(reply.Encode().Join())
	f.Sync()

	select {
	case <-opened:
	case <-time.After(time.Second):
		t.Fatal("on_open was never invoked")
	}
}

func TestRegisterThenServe(t *testing.T) {
	df := face.NewDummyFace(true)
	f, err := engine.NewFace(
		engine.WithHost("local", 6363),
		engine.WithTransportFactory(singleHostFactory(df)),
		engine.WithVerify(false),
	)
	require.NoError(t, err)

	f.RegisterPrefix(mustName(t, "/app/foo"), func(it *wire.Interest) (cst.InterestDirective, *wire.Data) {
		return cst.InterestConsumed, &wire.Data{Name: it.Name, Content: []byte("ok")}
	}, 0)
	f.Sync()

	bootstrapInterest := waitSent(t, df)
	_, it, _, _, ok := wire.Sniff(bootstrapInterest)
	require.True(t, ok)
	require.Equal(t, "/%C1.M.S.localhost/%C1.M.SRV/ndnd/KEY", it.Name.String())

	bootstrapReply := &wire.Data{
		Name:       it.Name,
		SignedInfo: wire.SignedInfo{PublisherPublicKeyDigest: []byte("forwarder-digest")},
	}
	df.FeedPacket(bootstrapReply.Encode().Join())
	f.Sync()

	selfReg := waitSent(t, df)
	_, selfRegInterest, _, _, ok := wire.Sniff(selfReg)
	require.True(t, ok)
	require.True(t, selfRegInterest.Selectors.Scope.IsSet())

	inbound := &wire.Interest{Name: mustName(t, "/app/foo/bar"), InterestLifetime: wire.DefaultInterestLifetime}
	df.FeedPacket(inbound.Encode().Join())
	f.Sync()

	respPkt := waitSent(t, df)
	_, _, respData, _, ok := wire.Sniff(respPkt)
	require.True(t, ok)
	require.Equal(t, "/app/foo/bar", respData.Name.String())
	require.Equal(t, []byte("ok"), respData.Content)
}

func TestVerifyViaKeyFetch(t *testing.T) {
	df := face.NewDummyFace(true)
	f, err := engine.NewFace(
		engine.WithHost("local", 6363),
		engine.WithTransportFactory(singleHostFactory(df)),
		engine.WithVerify(true),
	)
	require.NoError(t, err)

	keyName := mustName(t, "/keys/signer")
	s, err := signer.KeygenEd25519(keyName)
	require.NoError(t, err)
	pub, err := s.Public()
	require.NoError(t, err)

	d := &wire.Data{
		Name:       mustName(t, "/content/x"),
		Content:    []byte("payload"),
		SignedInfo: wire.SignedInfo{Locator: wire.KeyLocatorName{Name: keyName}},
	}
	sig, err := s.Sign(d.SignedPortion())
	require.NoError(t, err)
	d.Signature = wire.Signature{Type: s.Type(), Value: sig}

	var mu sync.Mutex
	var result ndn.InterestResult
	f.ExpressInterest(mustName(t, "/content/x"), func(r ndn.InterestResult, _ *wire.Data) ndn.SinkDirective {
		mu.Lock()
		result = r
		mu.Unlock()
		return ndn.SinkDone
	}, nil)
	f.Sync()
	_, _ = df.Consume() // the outgoing /content/x Interest

	df.FeedPacket(d.Encode().Join())
	f.Sync()
	f.Sync() // fetchKey defers the nested express through another Post

	keyFetchPkt := waitSent(t, df)
	_, keyInterest, _, _, ok := wire.Sniff(keyFetchPkt)
	require.True(t, ok)
	require.Equal(t, keyName.String(), keyInterest.Name.String())

	keyData := &wire.Data{Name: keyName, Content: pub}
	df.FeedPacket(keyData.Encode().Join())
	f.Sync()

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, ndn.InterestResultData, result)
}

func TestStatsReportsTransportUpAndLocal(t *testing.T) {
	df := face.NewDummyFace(true)
	f, err := engine.NewFace(
		engine.WithHost("local", 6363),
		engine.WithTransportFactory(singleHostFactory(df)),
		engine.WithVerify(false),
	)
	require.NoError(t, err)

	require.False(t, f.Stats().TransportUp, "no transport dialed yet")

	f.ExpressInterest(mustName(t, "/testecho/hello"), nil, nil)
	f.Sync()

	stats := f.Stats()
	require.True(t, stats.TransportUp)
	require.True(t, stats.TransportLocal)
}

func TestCloseClearsPIT(t *testing.T) {
	df := face.NewDummyFace(true)
	timer := engine.NewDummyTimer()
	f, err := engine.NewFace(
		engine.WithHost("local", 6363),
		engine.WithTransportFactory(singleHostFactory(df)),
		engine.WithTimer(timer),
		engine.WithVerify(false),
	)
	require.NoError(t, err)

	called := false
	f.ExpressInterest(mustName(t, "/pending"), func(ndn.InterestResult, *wire.Data) ndn.SinkDirective {
		called = true
		return ndn.SinkDone
	}, nil)
	f.Sync()

	require.NoError(t, f.Close())

	timer.MoveForward(wire.DefaultInterestLifetime)
	require.False(t, called, "no sink may fire after close")

	require.ErrorIs(t, f.Close(), ndn.ErrNotOpen)
}
