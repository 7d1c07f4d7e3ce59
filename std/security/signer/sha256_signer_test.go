package signer_test

import (
	"testing"

	enc "github.com/named-data/ndndface/std/encoding"
	"github.com/named-data/ndndface/std/ndn"
	sig "github.com/named-data/ndndface/std/security/signer"
	"github.com/stretchr/testify/require"
)

func TestSha256SignVerify(t *testing.T) {
	signer := sig.NewSha256Signer()
	require.Equal(t, ndn.SignatureDigestSha256, signer.Type())
	require.Nil(t, signer.KeyName())
	require.Equal(t, uint(32), signer.EstimateSize())

	covered := enc.Wire{[]byte("abc"), []byte("def")}
	sv, err := signer.Sign(covered)
	require.NoError(t, err)
	require.Len(t, sv, 32)

	_, err = signer.Public()
	require.ErrorIs(t, err, ndn.ErrNoPubKey)

	verifier := sig.NewSha256Verifier()
	require.True(t, verifier.Verify(covered, sv, nil))
	require.False(t, verifier.Verify(enc.Wire{[]byte("xyz")}, sv, nil))
}
