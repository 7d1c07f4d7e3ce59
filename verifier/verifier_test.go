package verifier_test

import (
	"testing"
	"time"

	"github.com/named-data/ndndface/keycache"
	enc "github.com/named-data/ndndface/std/encoding"
	"github.com/named-data/ndndface/std/ndn"
	"github.com/named-data/ndndface/std/security/signer"
	"github.com/named-data/ndndface/verifier"
	"github.com/named-data/ndndface/wire"
	"github.com/stretchr/testify/require"
)

func mustName(t *testing.T, s string) enc.Name {
	t.Helper()
	n, err := enc.NameFromString(s)
	require.NoError(t, err)
	return n
}

func sign(t *testing.T, s ndn.Signer, d *wire.Data) {
	t.Helper()
	sig, err := s.Sign(d.SignedPortion())
	require.NoError(t, err)
	d.Signature = wire.Signature{Type: s.Type(), Value: sig}
}

func collect() (verifier.Deliver, *ndn.InterestResult) {
	var got ndn.InterestResult
	return func(result ndn.InterestResult, data *wire.Data) ndn.SinkDirective {
		got = result
		return ndn.SinkDone
	}, &got
}

func keygen(t *testing.T, name enc.Name) ndn.Signer {
	t.Helper()
	s, err := signer.KeygenEd25519(name)
	require.NoError(t, err)
	return s
}

func TestVerifyDisabledDeliversUnverified(t *testing.T) {
	v := verifier.New(keycache.New(0), time.Now)
	d := &wire.Data{Name: mustName(t, "/a/b")}
	deliver, got := collect()
	v.Verify(d, false, nil, deliver)
	require.Equal(t, ndn.InterestResultUnverified, *got)
}

func TestVerifyWitnessIsRejected(t *testing.T) {
	v := verifier.New(keycache.New(0), time.Now)
	d := &wire.Data{Name: mustName(t, "/a/b"), Signature: wire.Signature{Witness: []byte{1}}}
	deliver, got := collect()
	v.Verify(d, true, nil, deliver)
	require.Equal(t, ndn.InterestResultBadSignature, *got)
}

func TestVerifyDigestNoLocator(t *testing.T) {
	v := verifier.New(keycache.New(0), time.Now)
	s := signer.NewSha256Signer()
	d := &wire.Data{Name: mustName(t, "/a/b"), Content: []byte("hi")}
	sign(t, s, d)

	deliver, got := collect()
	v.Verify(d, true, nil, deliver)
	require.Equal(t, ndn.InterestResultData, *got)

	d.Signature.Value[0] ^= 0xff
	deliver, got = collect()
	v.Verify(d, true, nil, deliver)
	require.Equal(t, ndn.InterestResultBadSignature, *got)
}

func TestVerifySelfReferentialKeyName(t *testing.T) {
	keyName := mustName(t, "/keys/signer")
	s := keygen(t, keyName)
	pub, err := s.Public()
	require.NoError(t, err)

	d := &wire.Data{
		Name:       keyName.Append(enc.NewComponent([]byte("KEY"))),
		Content:    pub,
		SignedInfo: wire.SignedInfo{Locator: wire.KeyLocatorName{Name: keyName}},
	}
	sign(t, s, d)

	v := verifier.New(keycache.New(0), time.Now)
	deliver, got := collect()
	v.Verify(d, true, nil, deliver)
	require.Equal(t, ndn.InterestResultData, *got)
}

func TestVerifyKeyNameCacheHit(t *testing.T) {
	keyName := mustName(t, "/keys/signer")
	s := keygen(t, keyName)
	pub, err := s.Public()
	require.NoError(t, err)

	cache := keycache.New(0)
	cache.Insert(keyName, ndn.PublicKey{Type: ndn.SignatureEd25519, Raw: pub}, time.Now())

	d := &wire.Data{
		Name:       mustName(t, "/content/x"),
		Content:    []byte("payload"),
		SignedInfo: wire.SignedInfo{Locator: wire.KeyLocatorName{Name: keyName}},
	}
	sign(t, s, d)

	v := verifier.New(cache, time.Now)
	deliver, got := collect()
	v.Verify(d, true, func(enc.Name, func([]byte, bool)) { t.Fatal("should not fetch: cache hit") }, deliver)
	require.Equal(t, ndn.InterestResultData, *got)
}

func TestVerifyKeyNameFetchesOnMiss(t *testing.T) {
	keyName := mustName(t, "/keys/signer/extra/components")
	s := keygen(t, keyName)
	pub, err := s.Public()
	require.NoError(t, err)

	d := &wire.Data{
		Name:       mustName(t, "/content/x"),
		Content:    []byte("payload"),
		SignedInfo: wire.SignedInfo{Locator: wire.KeyLocatorName{Name: keyName}},
	}
	sign(t, s, d)

	cache := keycache.New(0)
	v := verifier.New(cache, time.Now)

	var fetchedPrefix enc.Name
	deliver, got := collect()
	v.Verify(d, true, func(prefix enc.Name, cb func([]byte, bool)) {
		fetchedPrefix = prefix
		cb(pub, true)
	}, deliver)

	require.Equal(t, ndn.InterestResultData, *got)
	require.Equal(t, 4, fetchedPrefix.Len())
	_, found := cache.Lookup(keyName)
	require.True(t, found)
}

func TestVerifyKeyNameFetchTimeoutDropsDelivery(t *testing.T) {
	keyName := mustName(t, "/keys/signer")
	d := &wire.Data{
		Name:       mustName(t, "/content/x"),
		Content:    []byte("payload"),
		SignedInfo: wire.SignedInfo{Locator: wire.KeyLocatorName{Name: keyName}},
		Signature:  wire.Signature{Type: ndn.SignatureEd25519},
	}

	v := verifier.New(keycache.New(0), time.Now)
	delivered := false
	v.Verify(d, true, func(enc.Name, func([]byte, bool) ) {
		// simulate timeout: never call cb with ok=true
	}, func(ndn.InterestResult, *wire.Data) ndn.SinkDirective {
		delivered = true
		return ndn.SinkDone
	})
	require.False(t, delivered)
}

func TestVerifyInlineKeyLocatorBugFix(t *testing.T) {
	s := signer.NewSha256Signer()
	d := &wire.Data{Name: mustName(t, "/a/b"), Content: []byte("x")}
	d.SignedInfo.Locator = wire.KeyLocatorKey{PublicKey: []byte("unused-for-digest")}
	sign(t, s, d)

	v := verifier.New(keycache.New(0), time.Now)
	deliver, got := collect()
	v.Verify(d, true, nil, deliver)
	require.Equal(t, ndn.InterestResultData, *got)

	d.Signature.Value[0] ^= 0xff
	deliver, got = collect()
	v.Verify(d, true, nil, deliver)
	require.Equal(t, ndn.InterestResultBadSignature, *got)
}

func TestVerifyCertLocatorIsUnsupported(t *testing.T) {
	s := signer.NewSha256Signer()
	d := &wire.Data{Name: mustName(t, "/a/b"), Content: []byte("x")}
	sign(t, s, d)
	d.SignedInfo.Locator = wire.KeyLocatorCert{Certificate: []byte("cert")}

	v := verifier.New(keycache.New(0), time.Now)
	deliver, got := collect()
	v.Verify(d, true, nil, deliver)
	require.Equal(t, ndn.InterestResultBadSignature, *got)
}
