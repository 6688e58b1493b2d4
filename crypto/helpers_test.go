package crypto_test

import (
	"testing"

	btcec "github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/stretchr/testify/require"
)

func ecdsaSignatureFromRS(t *testing.T, signature []byte) *ecdsa.Signature {
	t.Helper()
	require.Len(t, signature, 64)

	var r, s btcec.ModNScalar
	require.False(t, r.SetByteSlice(signature[:32]), "r overflows")
	require.False(t, s.SetByteSlice(signature[32:]), "s overflows")

	return ecdsa.NewSignature(&r, &s)
}

func parsePubKey(t *testing.T, compressed []byte) *btcec.PublicKey {
	t.Helper()

	pubKey, err := btcec.ParsePubKey(compressed)
	require.NoError(t, err)
	return pubKey
}
