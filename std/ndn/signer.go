package ndn

import enc "github.com/named-data/ndndface/std/encoding"

// SigType identifies a signature algorithm.
type SigType int

const (
	SignatureNone SigType = iota
	SignatureDigestSha256
	SignatureEd25519
)

// Signer produces signatures over a wire's covered bytes. Ported in spirit
// from the teacher's ndn.Signer (std/security/signer).
type Signer interface {
	Type() SigType
	// KeyName returns the name under which the signer's public key can be
	// fetched, or nil if the signer has no named key (e.g. digest-only).
	KeyName() enc.Name
	// EstimateSize returns the expected signature length in bytes, used
	// to size encode buffers up front.
	EstimateSize() uint
	// Sign computes the signature over the covered bytes.
	Sign(covered enc.Wire) ([]byte, error)
	// Public returns the raw public key bytes, or ErrNoPubKey if this
	// signer has none (e.g. a plain digest signer).
	Public() ([]byte, error)
}

// Verifier checks a signature against covered bytes using a known public key.
type Verifier interface {
	Type() SigType
	// Verify reports whether sig is a valid signature over covered,
	// under the given raw public key bytes.
	Verify(covered enc.Wire, sig []byte, pubKey []byte) bool
}

// PublicKey is a parsed public key ready for verification.
type PublicKey struct {
	Type SigType
	Raw  []byte
}
