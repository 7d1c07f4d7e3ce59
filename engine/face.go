// Package engine implements the Face engine (spec.md §4.7, C6): the
// public API applications drive (ExpressInterest, RegisterPrefix,
// Close), running on a single cooperative event loop that owns the
// transport's I/O callbacks, every PIT/probe timer, and every
// application-visible sink. Ported in spirit from the teacher's
// std/engine/basic/engine.go (Post/taskQueue/close select loop,
// AttachHandler/Express dispatch shape), generalized to this tree's
// simplified wire codec, per-Face PIT/CST/key-cache ownership (fixing
// the historical source's process-wide statics, spec.md §9), and the
// host-and-port failover strategy (§4.8) the teacher never needed since
// it always dials one configured forwarder.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/named-data/ndndface/cst"
	"github.com/named-data/ndndface/face"
	"github.com/named-data/ndndface/hoststrategy"
	"github.com/named-data/ndndface/keycache"
	"github.com/named-data/ndndface/pit"
	enc "github.com/named-data/ndndface/std/encoding"
	"github.com/named-data/ndndface/std/log"
	"github.com/named-data/ndndface/std/ndn"
	"github.com/named-data/ndndface/std/security/signer"
	"github.com/named-data/ndndface/std/types/optional"
	"github.com/named-data/ndndface/std/utils"
	"github.com/named-data/ndndface/verifier"
	"github.com/named-data/ndndface/wire"
)

// ReadyState is a Face's transport lifecycle state (spec.md §3.8).
type ReadyState int

const (
	Unopen ReadyState = iota
	Opened
	Closed
)

func (r ReadyState) String() string {
	switch r {
	case Opened:
		return "opened"
	case Closed:
		return "closed"
	default:
		return "unopen"
	}
}

// DefaultPort is the forwarder TCP port used when none is configured
// (spec.md §6).
const DefaultPort uint16 = 6363

// probeTimeout is how long a candidate host is given to answer the
// liveness Interest before the strategy fails over to the next one
// (spec.md §4.8).
const probeTimeout = 3 * time.Second

// keyPrefixLen mirrors verifier.keyPrefixLen; the recursive key fetch
// issued from this package's FetchKey implementation uses the same
// first-four-components convention (spec.md §4.4).
const keyPrefixLen = 4

// TransportFactory builds (but does not open) a Transport for host:port.
// Supplied by the application so the engine package never imports a
// concrete network dependency directly; face.NewStreamFace,
// face.NewWebSocketFace and face.NewQuicFace are the production
// implementations, face.NewDummyFace the test one.
type TransportFactory func(host string, port uint16) (face.Transport, error)

// Face is the client-side NDN endpoint (spec.md §3.8, C6).
type Face struct {
	mu          sync.Mutex
	ready       ReadyState
	host        optional.Optional[string]
	port        optional.Optional[uint16]
	ndndID      optional.Optional[[]byte]
	transport   face.Transport
	transportUp bool

	verifyEnabled   bool
	defaultLifetime time.Duration
	hostStrategy    *hoststrategy.Strategy
	newTransport    TransportFactory
	onOpen          func()
	onClose         func()

	realTimer ndn.Timer
	timer     ndn.Timer // wraps realTimer so every fire is posted onto the loop
	signer    ndn.Signer

	pit      *pit.Table
	cst      *cst.Table
	keys     *keycache.Cache
	verifier *verifier.Verifier

	taskQueue chan func()
	closeCh   chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// Option configures a Face at construction time.
type Option func(*Face)

// WithHost fixes the Face to dial host:port directly, without a
// host-and-port failover strategy (spec.md §4.7.1 "otherwise" branch).
func WithHost(host string, port uint16) Option {
	return func(f *Face) {
		f.host.Set(host)
		f.port.Set(port)
	}
}

// WithHostCandidates installs a host-and-port strategy (spec.md §4.8)
// over the given candidate hosts, using port for every candidate. shuffle
// may be nil to use the strategy's default (math/rand) shuffling; tests
// pass a deterministic one.
func WithHostCandidates(hosts []string, port uint16, shuffle func([]string)) Option {
	return func(f *Face) {
		f.hostStrategy = hoststrategy.New(hosts, shuffle)
		f.port.Set(port)
	}
}

// WithTransportFactory supplies how the Face builds a Transport for a
// given host:port. Required; NewFace returns ndn.ErrNotSupported if
// omitted.
func WithTransportFactory(factory TransportFactory) Option {
	return func(f *Face) { f.newTransport = factory }
}

// WithVerify enables or disables signature verification of inbound Data
// (spec.md §4.4). Verification is enabled by default.
func WithVerify(enabled bool) Option {
	return func(f *Face) { f.verifyEnabled = enabled }
}

// WithDefaultInterestLifetime overrides the lifetime applied to
// Interests expressed without an explicit template, and to the Face's
// own internal Interests (the key bootstrap and host-liveness probe).
// Defaults to wire.DefaultInterestLifetime (spec.md §3.2's 4000ms).
func WithDefaultInterestLifetime(d time.Duration) Option {
	return func(f *Face) { f.defaultLifetime = d }
}

// WithSigner supplies the identity used to sign the self-registration
// envelope (spec.md §4.7.2). Defaults to a SHA-256 digest signer, which
// needs no identity key to be configured (ported from
// signer.NewSha256Signer, spec.md's "zero-configuration default").
func WithSigner(s ndn.Signer) Option {
	return func(f *Face) { f.signer = s }
}

// WithTimer overrides the ndn.Timer implementation; tests supply a
// DummyTimer for deterministic PIT/probe timeouts.
func WithTimer(t ndn.Timer) Option {
	return func(f *Face) { f.realTimer = t }
}

// WithOnOpen registers a callback run once the transport reaches Opened
// (spec.md §4.8's "invoke on_open").
func WithOnOpen(cb func()) Option {
	return func(f *Face) { f.onOpen = cb }
}

// WithOnClose registers a callback run after Close completes.
func WithOnClose(cb func()) Option {
	return func(f *Face) { f.onClose = cb }
}

// NewFace builds and starts a Face's event loop. The Face is Unopen
// until the first ExpressInterest or RegisterPrefix call triggers a
// connect (lazily, per spec.md §4.7.1).
func NewFace(opts ...Option) (*Face, error) {
	f := &Face{
		verifyEnabled:   true,
		defaultLifetime: wire.DefaultInterestLifetime,
		realTimer:       NewTimer(),
		signer:          signer.NewSha256Signer(),
		pit:             pit.NewTable(),
		cst:             cst.NewTable(),
		keys:            keycache.New(keycache.DefaultCapacity),
		taskQueue:       make(chan func(), 1024),
		closeCh:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.newTransport == nil {
		return nil, ndn.ErrNotSupported{Item: "transport factory"}
	}
	f.timer = postingTimer{inner: f.realTimer, post: f.Post}
	f.verifier = verifier.New(f.keys, f.realTimer.Now)

	f.wg.Add(1)
	go f.loop()
	return f, nil
}

func (f *Face) String() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	host, _ := f.host.Get()
	return fmt.Sprintf("face(%s, %s)", host, f.ready)
}

// postingTimer wraps an ndn.Timer so that every scheduled callback is
// dispatched through the Face's event loop rather than on whatever
// goroutine the underlying Timer fires from (spec.md §5: "Timer
// callbacks run serialized with element dispatches"). Real time.AfterFunc
// timers fire on their own goroutine; DummyTimer fires synchronously
// from MoveForward, which is itself usually called from a test's own
// goroutine — both need the same serialization.
type postingTimer struct {
	inner ndn.Timer
	post  func(func())
}

func (t postingTimer) Now() time.Time             { return t.inner.Now() }
func (t postingTimer) Sleep(d time.Duration)       { t.inner.Sleep(d) }
func (t postingTimer) Nonce() []byte               { return t.inner.Nonce() }
func (t postingTimer) Schedule(d time.Duration, f func()) func() error {
	return t.inner.Schedule(d, func() { t.post(f) })
}

// Post schedules task to run on the Face's event loop, serialized with
// every other dispatch (spec.md §5). Safe to call from any goroutine,
// including from inside a sink already running on the loop (the
// Verifier's recursive key fetch relies on this, spec.md §9 "Recursive
// sinks... deferred through the event loop").
func (f *Face) Post(task func()) {
	select {
	case f.taskQueue <- task:
	case <-f.closeCh:
	}
}

func (f *Face) loop() {
	defer f.wg.Done()
	for {
		select {
		case task := <-f.taskQueue:
			task()
		case <-f.closeCh:
			return
		}
	}
}

// Sync blocks until every task posted before this call has run. Exposed
// for tests driving a DummyTimer/DummyFace, which need a synchronization
// point after advancing the clock or feeding a packet before asserting
// on Face state (mirrors the teacher's own engine_test.go helpers).
func (f *Face) Sync() {
	done := make(chan struct{})
	f.Post(func() { close(done) })
	<-done
}

// Stats is a snapshot of the Face's internal table sizes and transport
// state, exposed for the facehttp debug surface (spec.md §10
// "Debug/status surface").
type Stats struct {
	Ready          string
	PITEntries     int
	CSTEntries     int
	CachedKeys     int
	TransportUp    bool
	TransportLocal bool
}

// Stats reports the current sizes of the PIT, CST, and key cache, the
// Face's ready state, and whether its current transport (if any) is up
// and/or local (face.Transport.IsLocal). Safe to call from any
// goroutine.
func (f *Face) Stats() Stats {
	f.mu.Lock()
	t := f.transport
	up := f.transportUp
	ready := f.ready
	f.mu.Unlock()

	local := false
	if t != nil {
		local = t.IsLocal()
	}
	return Stats{
		Ready:          ready.String(),
		PITEntries:     f.pit.Len(),
		CSTEntries:     f.cst.Len(),
		CachedKeys:     f.keys.Len(),
		TransportUp:    up,
		TransportLocal: local,
	}
}

func (f *Face) getReady() ReadyState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ready
}

func (f *Face) sendEncoded(w enc.Wire) {
	f.mu.Lock()
	t := f.transport
	f.mu.Unlock()
	if t == nil {
		log.Warn(f, "dropping send: no transport")
		return
	}
	if err := t.Send(w.Join()); err != nil {
		log.Warn(f, "send failed", "err", err)
	}
}

// ExpressInterest implements spec.md §4.7.1. sink may be nil for a
// fire-and-forget Interest (no PIT entry is created). template, if
// non-nil, supplies the selectors and lifetime to copy onto the new
// Interest; otherwise the lifetime defaults to f.defaultLifetime.
func (f *Face) ExpressInterest(name enc.Name, sink pit.Sink, template *wire.Interest) {
	f.Post(func() { f.doExpressInterest(name, sink, template) })
}

func (f *Face) doExpressInterest(name enc.Name, sink pit.Sink, template *wire.Interest) {
	it := &wire.Interest{Name: name, Nonce: f.realTimer.Nonce(), InterestLifetime: f.defaultLifetime}
	if template != nil {
		it.Selectors = template.Selectors
		// Copy verbatim, including the boundary case of an explicit
		// zero lifetime (spec.md §8: "Interest with
		// interest_lifetime_ms = 0 -> sink receives InterestTimedOut
		// on the next loop tick") — only the no-template case falls
		// back to the default above.
		it.InterestLifetime = template.InterestLifetime
	}
	f.ensureConnected(func() { f.sendInterest(it, sink) })
}

func (f *Face) sendInterest(it *wire.Interest, sink pit.Sink) {
	if sink != nil {
		entry := &pit.Entry{Interest: it, Sink: sink}
		f.pit.Insert(f.timer, entry, func(e *pit.Entry) { f.sendEncoded(e.Interest.Encode()) })
	}
	f.sendEncoded(it.Encode())
}

// ensureConnected runs cont once the Face is Opened, dialing or probing
// first if necessary (spec.md §4.7.1). Always called from the loop
// goroutine.
func (f *Face) ensureConnected(cont func()) {
	if f.getReady() == Opened {
		cont()
		return
	}
	f.mu.Lock()
	host, hasHost := f.host.Get()
	port := f.port.GetOr(DefaultPort)
	strategy := f.hostStrategy
	f.mu.Unlock()

	if !hasHost && strategy != nil {
		f.probeNext(port, cont)
		return
	}
	if !hasHost {
		log.Warn(f, "express_interest with no host configured and no host strategy")
		return
	}
	f.dial(host, port, cont)
}

// dial opens a transport to host:port directly (no liveness probe),
// used when the Face was configured with WithHost rather than
// WithHostCandidates.
func (f *Face) dial(host string, port uint16, cont func()) {
	t, err := f.newTransport(host, port)
	if err != nil {
		log.Error(f, "failed to build transport", "host", host, "err", err)
		return
	}
	f.subscribeTransport(t)
	if err := t.Open(); err != nil {
		log.Error(f, "failed to open transport", "host", host, "err", err)
		return
	}
	f.markOpened(t, host, port)
	cont()
}

// probeNext pops the next candidate host from the strategy and probes
// it, or logs and leaves the host unset once candidates are exhausted
// (spec.md §4.8, §7 "Host-exhaustion").
func (f *Face) probeNext(port uint16, cont func()) {
	f.mu.Lock()
	strategy := f.hostStrategy
	f.mu.Unlock()
	host, ok := strategy.Next()
	if !ok {
		log.Warn(f, "host strategy exhausted; leaving host unset")
		return
	}
	f.probe(host, port, cont)
}

// probe dials host:port, sends a liveness Interest for "/" with the
// default 4-second lifetime, and arms a separate 3-second probe timer
// (spec.md §4.8). Whichever fires first decides the outcome; the loser
// is made a no-op via pit.Table's own idempotent removal so a probe
// timer that fires just after the Data arrives (or vice versa) never
// double-delivers.
func (f *Face) probe(host string, port uint16, cont func()) {
	t, err := f.newTransport(host, port)
	if err != nil {
		log.Warn(f, "probe: failed to build transport, trying next host", "host", host, "err", err)
		f.probeNext(port, cont)
		return
	}
	f.subscribeTransport(t)
	if err := t.Open(); err != nil {
		log.Warn(f, "probe: failed to open transport, trying next host", "host", host, "err", err)
		f.probeNext(port, cont)
		return
	}

	it := &wire.Interest{Nonce: f.realTimer.Nonce(), InterestLifetime: f.defaultLifetime}
	entry := &pit.Entry{Interest: it}
	var cancelProbe func() error
	entry.Sink = func(result ndn.InterestResult, data *wire.Data) ndn.SinkDirective {
		if result == ndn.InterestResultTimeout {
			return ndn.SinkDone
		}
		if cancelProbe != nil {
			_ = cancelProbe()
		}
		f.markOpened(t, host, port)
		log.Info(f, "probe succeeded", "host", host)
		cont()
		return ndn.SinkDone
	}
	f.pit.Insert(f.timer, entry, func(e *pit.Entry) { f.sendEncoded(e.Interest.Encode()) })
	f.sendEncoded(it.Encode())

	cancelProbe = f.timer.Schedule(probeTimeout, func() {
		f.pit.Remove(entry) // double-fire fix: the Interest's own 4s
		// timeout would otherwise still fire later and re-run entry.Sink.
		_ = t.Close()
		log.Info(f, "probe timed out, failing over", "host", host)
		f.probeNext(port, cont)
	})
}

// subscribeTransport wires t's upward-delivery, error, up, and down
// callbacks. Must run before t.Open(): every concrete Transport
// (StreamFace, WebSocketFace, QuicFace) refuses to open until both
// OnPacket and OnError have a subscriber. OnUp/OnDown feed
// Face.transportUp, reported via Stats for the facehttp debug surface.
func (f *Face) subscribeTransport(t face.Transport) {
	t.OnPacket(func(elem []byte) { f.Post(func() { f.onElement(elem) }) })
	t.OnError(func(err error) {
		f.Post(func() { log.Warn(f, "transport error", "err", err) })
	})
	t.OnUp(func() {
		f.mu.Lock()
		f.transportUp = true
		f.mu.Unlock()
	})
	t.OnDown(func() {
		f.Post(func() {
			f.mu.Lock()
			f.ready = Unopen
			f.transportUp = false
			f.mu.Unlock()
			log.Warn(f, "transport went down")
		})
	})
}

// markOpened records t as the Face's live transport at host:port and
// runs onOpen. Must run only after t.Open() succeeded.
func (f *Face) markOpened(t face.Transport, host string, port uint16) {
	f.mu.Lock()
	f.transport = t
	f.host.Set(host)
	f.port.Set(port)
	f.ready = Opened
	onOpen := f.onOpen
	f.mu.Unlock()

	if onOpen != nil {
		onOpen()
	}
}

// RegisterPrefix implements spec.md §4.7.2.
func (f *Face) RegisterPrefix(name enc.Name, sink cst.InterestSink, flags uint32) {
	f.Post(func() { f.doRegisterPrefix(name, sink, flags) })
}

func (f *Face) doRegisterPrefix(name enc.Name, sink cst.InterestSink, flags uint32) {
	flags |= 3
	if entry, found := f.cst.Lookup(name); found && entry.Prefix.Equal(name) {
		log.Warn(f, "register_prefix: prefix already registered", "name", name.String(), "err", ndn.ErrMultipleHandlers)
		return
	}
	f.ensureConnected(func() {
		f.mu.Lock()
		_, haveID := f.ndndID.Get()
		f.mu.Unlock()
		if !haveID {
			f.bootstrapNdndID(func() { f.sendSelfReg(name, sink, flags) })
			return
		}
		f.sendSelfReg(name, sink, flags)
	})
}

// bootstrapNdndID expresses the well-known key-digest Interest (spec.md
// §6) and stores the answering Data's publisher key digest as ndndID,
// then runs cont. On timeout the registration this bootstrap is serving
// is simply abandoned, with a diagnostic (spec.md §4.7.2 "aborts this
// registration with a diagnostic").
func (f *Face) bootstrapNdndID(cont func()) {
	it := &wire.Interest{Name: ndndKeyName, Nonce: f.realTimer.Nonce(), InterestLifetime: f.defaultLifetime}
	entry := &pit.Entry{Interest: it}
	entry.Sink = func(result ndn.InterestResult, data *wire.Data) ndn.SinkDirective {
		if result == ndn.InterestResultTimeout {
			log.Error(f, "ndnd_id bootstrap timed out; aborting registration")
			return ndn.SinkDone
		}
		digest := data.SignedInfo.PublisherPublicKeyDigest
		if len(digest) == 0 {
			digest = data.Signature.Value
		}
		f.mu.Lock()
		f.ndndID.Set(digest)
		f.mu.Unlock()
		cont()
		return ndn.SinkDone
	}
	f.pit.Insert(f.timer, entry, func(e *pit.Entry) { f.sendEncoded(e.Interest.Encode()) })
	f.sendEncoded(it.Encode())
}

// sendSelfReg builds and signs the ForwardingEntry envelope, sends the
// self-registration Interest, and records the CST entry (spec.md §4.7.2,
// §6).
func (f *Face) sendSelfReg(name enc.Name, sink cst.InterestSink, flags uint32) {
	f.mu.Lock()
	ndndID, _ := f.ndndID.Get()
	f.mu.Unlock()

	fe := &wire.ForwardingEntry{Action: "selfreg", Name: name, Flags: flags, Lifetime: 2147483647}
	envelope := &wire.Data{
		Name:       enc.Name{}.Append(enc.NewComponent([]byte("selfreg-entry"))),
		Content:    fe.Encode(),
		SignedInfo: wire.SignedInfo{Timestamp: utils.MakeTimestamp(f.realTimer.Now())},
	}
	if kn := f.signer.KeyName(); kn != nil {
		envelope.SignedInfo.Locator = wire.KeyLocatorName{Name: kn}
	}
	sig, err := f.signer.Sign(envelope.SignedPortion())
	if err != nil {
		log.Error(f, "failed to sign self-registration envelope", "err", err)
		return
	}
	envelope.Signature = wire.Signature{Type: f.signer.Type(), Value: sig}

	it := &wire.Interest{
		Name: enc.Name{}.
			Append(enc.NewComponent([]byte("ndnx"))).
			Append(enc.NewComponent(ndndID)).
			Append(enc.NewComponent([]byte("selfreg"))).
			Append(enc.NewComponent(envelope.Encode().Join())),
		Nonce:            f.realTimer.Nonce(),
		InterestLifetime: f.defaultLifetime,
	}
	it.Selectors.Scope.Set(1)

	f.cst.Register(&cst.Entry{Prefix: name, Sink: sink, Flags: flags})
	f.sendEncoded(it.Encode())
	log.Info(f, "registered prefix", "name", name.String())
}

// onElement implements spec.md §4.7.4.
func (f *Face) onElement(elem []byte) {
	kind, interest, data, _, ok := wire.Sniff(elem)
	if !ok {
		log.Warn(f, "discarding malformed element")
		return
	}
	switch kind {
	case wire.ElementInterest:
		f.dispatchInterest(interest)
	case wire.ElementData:
		f.dispatchData(data)
	default:
		log.Warn(f, "discarding element of unknown type")
	}
}

func (f *Face) dispatchInterest(it *wire.Interest) {
	entry, found := f.cst.Lookup(it.Name)
	if !found {
		return
	}
	directive, response := entry.Sink(it)
	if directive == cst.InterestConsumed && response != nil {
		f.sendEncoded(response.Encode())
	}
}

func (f *Face) dispatchData(data *wire.Data) {
	entry, found := f.pit.MatchForData(data.Name)
	if !found {
		return
	}
	f.pit.Remove(entry)
	if entry.Sink == nil {
		return
	}
	f.verifier.Verify(data, f.verifyEnabled, f.fetchKey, entry.Sink)
}

// fetchKey implements verifier.FetchKey by expressing a nested Interest
// over this same Face (spec.md §4.4). Per spec.md §9 ("Recursive
// sinks... deferred through the event loop"), the nested express is
// posted as a one-shot task rather than invoked in-stack, even though
// dispatchData (the caller of Verify) already runs on the loop goroutine.
func (f *Face) fetchKey(keyPrefix enc.Name, cb func(raw []byte, ok bool)) {
	f.Post(func() {
		f.doExpressInterest(keyPrefix, func(result ndn.InterestResult, data *wire.Data) ndn.SinkDirective {
			if result == ndn.InterestResultTimeout || data == nil {
				cb(nil, false)
				return ndn.SinkDone
			}
			cb(data.Content, true)
			return ndn.SinkDone
		}, nil)
	})
}

// Close implements spec.md §4.7.3. It deliberately bypasses Post and
// runs synchronously: PIT/CST clearing and the mutex already guard the
// relevant state, and routing Close through Post would deadlock if it
// were ever called reentrantly from a sink running on the loop
// goroutine (Post would block forever waiting for a loop iteration that
// is itself blocked on Close's own Post call).
func (f *Face) Close() error {
	f.mu.Lock()
	if f.ready != Opened {
		f.mu.Unlock()
		return ndn.ErrNotOpen
	}
	f.ready = Closed
	transport := f.transport
	f.mu.Unlock()

	f.pit.Clear()
	f.cst.Clear()
	if transport != nil {
		_ = transport.Close()
	}
	f.closeOnce.Do(func() { close(f.closeCh) })
	f.wg.Wait()

	if f.onClose != nil {
		f.onClose()
	}
	return nil
}

// ndndKeyName is the well-known local-forwarder key name used to
// bootstrap ndndID (spec.md §6).
var ndndKeyName = mustName("/%C1.M.S.localhost/%C1.M.SRV/ndnd/KEY")

func mustName(s string) enc.Name {
	n, err := enc.NameFromString(s)
	if err != nil {
		panic(err)
	}
	return n
}
