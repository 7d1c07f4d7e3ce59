// Package verifier implements the signature-verification flow (spec.md
// §4.4, C5): dispatch on a Data packet's key locator kind, consult the key
// cache, and recursively fetch a signer's key over the owning Face when
// needed. Grounded on the teacher's std/security/signer verifier pairing
// (sha256/ed25519 signer+verifier) and std/engine/basic/engine.go's onData
// verification hook, adapted to this Face's simplified locator model.
package verifier

import (
	"time"

	"github.com/named-data/ndndface/keycache"
	enc "github.com/named-data/ndndface/std/encoding"
	"github.com/named-data/ndndface/std/log"
	"github.com/named-data/ndndface/std/ndn"
	"github.com/named-data/ndndface/std/security/signer"
	"github.com/named-data/ndndface/wire"
)

// keyPrefixLen is how many components of a KeyLocatorName are used when
// expressing the nested Interest to fetch the signing key (spec.md §4.4:
// "express an Interest for the key-name prefix (first four components)").
const keyPrefixLen = 4

// FetchKey expresses an Interest for keyPrefix on the owning Face, then
// invokes cb with the fetched key's raw bytes once matching Data arrives,
// or ok=false on timeout (spec.md §4.4's recursive key-fetch branch). It
// is supplied by the engine package, which alone knows how to safely
// re-enter the Face (deferred through the event loop, per spec.md §9
// "Recursive sinks").
type FetchKey func(keyPrefix enc.Name, cb func(raw []byte, ok bool))

// Deliver reports the outcome of verifying one Data packet. It has the
// same shape as pit.Sink so the Verifier can call a PIT entry's sink
// directly; the returned directive is discarded by Verify since a Data
// delivery is never re-expressed (only a timeout is, per spec.md §4.2).
type Deliver func(result ndn.InterestResult, data *wire.Data) ndn.SinkDirective

// Verifier orchestrates Data verification, including recursive key
// fetching through a Face-supplied FetchKey (spec.md §4.4, C5).
type Verifier struct {
	cache     *keycache.Cache
	clock     func() time.Time
	verifiers map[ndn.SigType]ndn.Verifier
}

// New builds a Verifier backed by cache for the key lookups of §4.6, and
// clock for timestamping freshly cached keys.
func New(cache *keycache.Cache, clock func() time.Time) *Verifier {
	return &Verifier{
		cache: cache,
		clock: clock,
		verifiers: map[ndn.SigType]ndn.Verifier{
			ndn.SignatureDigestSha256: signer.NewSha256Verifier(),
			ndn.SignatureEd25519:      signer.NewEd25519Verifier(),
		},
	}
}

// Verify runs the algorithm of spec.md §4.4 against data, eventually
// calling deliver exactly once with the outcome (possibly after a nested
// key fetch completes, or never, if that nested fetch times out — "the
// original request receives no delivery", spec.md §4.4/§9).
func (v *Verifier) Verify(data *wire.Data, verifyEnabled bool, fetchKey FetchKey, deliver Deliver) {
	if !verifyEnabled {
		deliver(ndn.InterestResultUnverified, data)
		return
	}
	if len(data.Signature.Witness) > 0 {
		log.Warn(data.Name.String(), "rejecting data signed with an unsupported Merkle witness")
		deliver(ndn.InterestResultBadSignature, data)
		return
	}

	check, ok := v.verifiers[data.Signature.Type]
	if !ok {
		log.Warn(data.Name.String(), "rejecting data with unknown signature type", "type", data.Signature.Type)
		deliver(ndn.InterestResultBadSignature, data)
		return
	}

	covered := data.SignedPortion()
	sig := data.Signature.Value

	switch loc := data.SignedInfo.Locator.(type) {
	case nil:
		// No locator: the only signature kind that can be checked
		// without separate key material is a plain digest.
		deliverVerified(deliver, data, check.Verify(covered, sig, nil))

	case wire.KeyLocatorName:
		if loc.Name.IsPrefixOf(data.Name) {
			// Self-referential: the key itself rides along in Content
			// (spec.md §4.4 "KeyName, self-referential").
			deliverVerified(deliver, data, check.Verify(covered, sig, data.Content))
			return
		}

		if entry, found := v.cache.Lookup(loc.Name); found {
			deliverVerified(deliver, data, check.Verify(covered, sig, entry.Key.Raw))
			return
		}

		prefix := loc.Name
		if prefix.Len() > keyPrefixLen {
			prefix = prefix.Prefix(keyPrefixLen)
		}
		keyName := loc.Name
		sigType := data.Signature.Type
		fetchKey(prefix, func(raw []byte, ok bool) {
			if !ok {
				log.Warn(data.Name.String(), "key fetch timed out; dropping pending verification", "key", prefix.String())
				return
			}
			verified := check.Verify(covered, sig, raw)
			deliverVerified(deliver, data, verified)
			if verified {
				v.cache.Insert(keyName, ndn.PublicKey{Type: sigType, Raw: raw}, v.clock())
			}
		})

	case wire.KeyLocatorKey:
		// spec.md §9's "likely bug" fix: deliver ContentBad on failure
		// instead of always reporting the data as verified.
		deliverVerified(deliver, data, check.Verify(covered, sig, loc.PublicKey))

	case wire.KeyLocatorCert:
		// Open question (spec.md §9): no certificate trust policy is
		// specified, so this branch only ever reports failure.
		log.Warn(data.Name.String(), "certificate key locator is not supported")
		deliver(ndn.InterestResultBadSignature, data)

	default:
		deliver(ndn.InterestResultBadSignature, data)
	}
}

func deliverVerified(deliver Deliver, data *wire.Data, ok bool) {
	if ok {
		deliver(ndn.InterestResultData, data)
	} else {
		deliver(ndn.InterestResultBadSignature, data)
	}
}
