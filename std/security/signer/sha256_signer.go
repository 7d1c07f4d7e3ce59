package signer

import (
	"bytes"
	"crypto/sha256"

	enc "github.com/named-data/ndndface/std/encoding"
	"github.com/named-data/ndndface/std/ndn"
)

// sha256Signer is the zero-configuration default: a digest "signature"
// that proves nothing about identity but lets the self-registration Data
// carry a well-formed SignatureInfo even before an application has
// configured a real key. Ported from the teacher's
// sha256_signer.go.
type sha256Signer struct{}

func (sha256Signer) Type() ndn.SigType { return ndn.SignatureDigestSha256 }

// KeyName is nil: a digest signature names no key, so the verifier never
// needs to look one up (spec.md §4.6's key-fetch path is skipped entirely).
func (sha256Signer) KeyName() enc.Name { return nil }

func (sha256Signer) EstimateSize() uint { return sha256.Size }

func (sha256Signer) Sign(covered enc.Wire) ([]byte, error) {
	h := sha256.New()
	for _, buf := range covered {
		if _, err := h.Write(buf); err != nil {
			return nil, enc.ErrUnexpected{Err: err}
		}
	}
	return h.Sum(nil), nil
}

func (sha256Signer) Public() ([]byte, error) {
	return nil, ndn.ErrNoPubKey
}

// NewSha256Signer returns a signer producing plain SHA-256 digests.
func NewSha256Signer() ndn.Signer {
	return sha256Signer{}
}

// sha256Verifier checks a digest "signature" by recomputing it; there is
// no key material involved, matching sha256Signer above.
type sha256Verifier struct{}

func (sha256Verifier) Type() ndn.SigType { return ndn.SignatureDigestSha256 }

func (sha256Verifier) Verify(covered enc.Wire, sig []byte, _ []byte) bool {
	h := sha256.New()
	for _, buf := range covered {
		if _, err := h.Write(buf); err != nil {
			return false
		}
	}
	return bytes.Equal(h.Sum(nil), sig)
}

// NewSha256Verifier returns the matching Verifier for NewSha256Signer.
func NewSha256Verifier() ndn.Verifier {
	return sha256Verifier{}
}
