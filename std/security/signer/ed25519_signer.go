package signer

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"fmt"

	enc "github.com/named-data/ndndface/std/encoding"
	"github.com/named-data/ndndface/std/ndn"
)

// ed25519Signer signs with a real Ed25519 identity key. Used when an
// application passes it to engine.WithSigner, so the self-registration
// envelope is signed with a named key instead of the SHA-256 digest
// default. Ported from the
// teacher's ed25519_signer.go.
type ed25519Signer struct {
	name enc.Name
	key  ed25519.PrivateKey
}

func (s *ed25519Signer) Type() ndn.SigType { return ndn.SignatureEd25519 }

func (s *ed25519Signer) KeyName() enc.Name { return s.name }

func (s *ed25519Signer) EstimateSize() uint { return ed25519.SignatureSize }

func (s *ed25519Signer) Sign(covered enc.Wire) ([]byte, error) {
	return ed25519.Sign(s.key, covered.Join()), nil
}

func (s *ed25519Signer) Public() ([]byte, error) {
	return x509.MarshalPKIXPublicKey(s.key.Public())
}

// GetSecret returns s's private key in PKCS#8 encoding, for persisting an
// identity between process restarts. Not part of the ndn.Signer interface
// since most signers (digest, test) have no secret to export.
func GetSecret(s ndn.Signer) ([]byte, error) {
	es, ok := s.(*ed25519Signer)
	if !ok {
		return nil, fmt.Errorf("signer does not support exporting a secret")
	}
	return x509.MarshalPKCS8PrivateKey(es.key)
}

// NewEd25519Signer wraps an existing Ed25519 private key as a signer
// publishing under name.
func NewEd25519Signer(name enc.Name, key ed25519.PrivateKey) ndn.Signer {
	return &ed25519Signer{name, key}
}

// KeygenEd25519 generates a fresh Ed25519 key pair and wraps it as a
// signer publishing under name.
func KeygenEd25519(name enc.Name) (ndn.Signer, error) {
	_, sk, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return NewEd25519Signer(name, sk), nil
}

// ParseEd25519 reconstructs a signer from a PKCS#8-encoded private key,
// as used when loading a persisted identity from configuration.
func ParseEd25519(name enc.Name, key []byte) (ndn.Signer, error) {
	pkey, err := x509.ParsePKCS8PrivateKey(key)
	if err != nil {
		return nil, err
	}
	sk, ok := pkey.(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("invalid key type")
	}
	return NewEd25519Signer(name, sk), nil
}

// ed25519Verifier checks Ed25519 signatures against a recovered public key
// (fetched via the KeyLocator's name, per spec.md §4.6).
type ed25519Verifier struct{}

func (ed25519Verifier) Type() ndn.SigType { return ndn.SignatureEd25519 }

func (ed25519Verifier) Verify(covered enc.Wire, sig []byte, pubKey []byte) bool {
	parsed, err := x509.ParsePKIXPublicKey(pubKey)
	if err != nil {
		return false
	}
	pub, ok := parsed.(ed25519.PublicKey)
	if !ok {
		return false
	}
	return ed25519.Verify(pub, covered.Join(), sig)
}

// NewEd25519Verifier returns the matching Verifier for NewEd25519Signer.
func NewEd25519Verifier() ndn.Verifier {
	return ed25519Verifier{}
}
