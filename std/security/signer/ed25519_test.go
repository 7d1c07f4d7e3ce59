package signer_test

import (
	"crypto/ed25519"
	"crypto/x509"
	"testing"

	enc "github.com/named-data/ndndface/std/encoding"
	"github.com/named-data/ndndface/std/ndn"
	sig "github.com/named-data/ndndface/std/security/signer"
	tu "github.com/named-data/ndndface/std/utils/testutils"
	"github.com/stretchr/testify/require"
)

var testKeyName, _ = enc.NameFromString("/KEY")

func verifyEd25519(t *testing.T, signer ndn.Signer, verifyKey []byte) bool {
	require.Equal(t, uint(ed25519.SignatureSize), signer.EstimateSize())
	require.Equal(t, ndn.SignatureEd25519, signer.Type())
	require.True(t, testKeyName.Equal(signer.KeyName()))

	dataVal := enc.Wire{
		[]byte("\x07\x14\x08\x05local\x08\x03ndn\x08\x06prefix"),
		[]byte("\x14\x03\x18\x01\x00"),
	}
	sigValue := tu.NoErr(signer.Sign(dataVal))

	verifyKeyBits := tu.NoErr(x509.ParsePKIXPublicKey(verifyKey)).(ed25519.PublicKey)
	return ed25519.Verify(verifyKeyBits, dataVal.Join(), sigValue)
}

func TestEd25519SignerNew(t *testing.T) {
	tu.SetT(t)

	edkeybits := ed25519.NewKeyFromSeed([]byte("01234567890123456789012345678901"))
	signer := sig.NewEd25519Signer(testKeyName, edkeybits)
	pub := tu.NoErr(signer.Public())
	require.True(t, verifyEd25519(t, signer, pub))
}

func TestEd25519Keygen(t *testing.T) {
	tu.SetT(t)

	signer1 := tu.NoErr(sig.KeygenEd25519(testKeyName))
	pub1 := tu.NoErr(signer1.Public())
	require.True(t, verifyEd25519(t, signer1, pub1))

	signer2 := tu.NoErr(sig.KeygenEd25519(testKeyName))
	pub2 := tu.NoErr(signer2.Public())
	require.True(t, verifyEd25519(t, signer2, pub2))

	require.False(t, verifyEd25519(t, signer2, pub1))
}

func TestEd25519Parse(t *testing.T) {
	tu.SetT(t)

	edkeybits := ed25519.NewKeyFromSeed([]byte("01234567890123456789012345678901"))
	signer1 := sig.NewEd25519Signer(testKeyName, edkeybits)

	secret := tu.NoErr(sig.GetSecret(signer1))
	signer2 := tu.NoErr(sig.ParseEd25519(testKeyName, secret))

	pub1 := tu.NoErr(signer1.Public())
	require.True(t, verifyEd25519(t, signer2, pub1))

	pub2 := tu.NoErr(signer1.Public())
	_, err := sig.ParseEd25519(testKeyName, pub2)
	require.Error(t, err)
}

func TestEd25519VerifierRoundTrip(t *testing.T) {
	edkeybits := ed25519.NewKeyFromSeed([]byte("01234567890123456789012345678902"))
	signer := sig.NewEd25519Signer(testKeyName, edkeybits)
	pub := tu.NoErr(signer.Public())

	covered := enc.Wire{[]byte("hello"), []byte("world")}
	sv := tu.NoErr(signer.Sign(covered))

	verifier := sig.NewEd25519Verifier()
	require.True(t, verifier.Verify(covered, sv, pub))
	require.False(t, verifier.Verify(enc.Wire{[]byte("tampered")}, sv, pub))
}
