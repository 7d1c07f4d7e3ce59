package signer

import (
	"crypto/rand"

	enc "github.com/named-data/ndndface/std/encoding"
	"github.com/named-data/ndndface/std/ndn"
)

// testSigner fills the signature field with sigSize random bytes and
// never verifies true; it exists purely so tests can exercise encoding
// and PIT/transport plumbing without caring whether verification passes.
// Ported from the teacher's test_signer.go (its SignatureEmptyTest type is
// folded into plain SignatureNone here, since this tree has no separate
// "empty" signature kind to dispatch on).
type testSigner struct {
	keyName enc.Name
	sigSize int
}

func (testSigner) Type() ndn.SigType { return ndn.SignatureNone }

func (t testSigner) KeyName() enc.Name { return t.keyName }

func (t testSigner) EstimateSize() uint { return uint(t.sigSize) }

func (t testSigner) Sign(covered enc.Wire) ([]byte, error) {
	buf := make([]byte, t.sigSize)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (testSigner) Public() ([]byte, error) {
	return nil, ndn.ErrNoPubKey
}

// NewTestSigner creates a signer for tests that need a well-formed but
// meaningless signature of a given size.
func NewTestSigner(keyName enc.Name, sigSize int) ndn.Signer {
	return testSigner{keyName: keyName, sigSize: sigSize}
}
