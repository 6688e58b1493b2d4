package crypto_test

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"

	"github.com/tessellated-io/signet/crypto"
)

const (
	defaultMnemonic = "special sign fit simple patrol salute grocery chicken wheat radar tonight ceiling"
	defaultPubKey   = "02baa4ef93f2ce84592a49b1d729c074eab640112522a7a89f7d03ebab21ded7b6"
	defaultAddress  = "cosmos1jhg0e7s6gn44tfc5k37kr04sznyhedtc9rzys5"

	faucetMnemonic = "economy stock theory fatal elder harbor betray wasp final emotion task crumble siren bottom lizard educate guess current outdoor pair theory focus wife stone"
	faucetPubKey   = "A08EGB7ro1ORuFhjOnZcSgwYlpe0DSFjVNUIkNNQxwKQ"
	faucetAddress  = "cosmos1pkptre7fdkl6gfrzlesjjvhxhlc3r4gmmk8rs6"
)

func TestDefaultHdPath(t *testing.T) {
	assert.Equal(t, "m/44'/118'/0'/0/0", crypto.DefaultHdPath)
	assert.Equal(t, "m/44'/60'/0'/0/0", crypto.HdPathForCoinType(60))
}

func TestKeyPair_DerivesKnownAccounts(t *testing.T) {
	keyPair, err := crypto.NewCosmosKeyPairFromMnemonic(defaultMnemonic)
	require.NoError(t, err)

	assert.Equal(t, defaultPubKey, hex.EncodeToString(keyPair.PublicKeyBytes()))
	assert.Equal(t, defaultAddress, keyPair.GetAddress("cosmos"))
	assert.Equal(t, crypto.AlgoSecp256k1, keyPair.Algorithm())

	faucet, err := crypto.NewCosmosKeyPairFromMnemonic(faucetMnemonic)
	require.NoError(t, err)

	assert.Equal(t, faucetPubKey, base64.StdEncoding.EncodeToString(faucet.PublicKeyBytes()))
	assert.Equal(t, faucetAddress, faucet.GetAddress("cosmos"))

	other, err := crypto.NewCosmosKeyPairFromMnemonic("oyster design unusual machine spread century engine gravity focus cave carry slot")
	require.NoError(t, err)
	assert.Equal(t, "cosmos1cjsxept9rkggzxztslae9ndgpdyt2408lk850u", other.GetAddress("cosmos"))
}

func TestKeyPair_InvalidMnemonic(t *testing.T) {
	_, err := crypto.NewCosmosKeyPairFromMnemonic("definitely not a valid mnemonic")
	require.Error(t, err)
}

func TestKeyPair_SignatureVerifiesAgainstSha256Digest(t *testing.T) {
	keyPair, err := crypto.NewCosmosKeyPairFromMnemonic(faucetMnemonic)
	require.NoError(t, err)

	message := []byte("foo bar")
	signature, err := keyPair.SignBytes(message)
	require.NoError(t, err)
	require.Len(t, signature, 64)

	// Cosmos verification hashes with SHA-256 internally.
	pubKey := &secp256k1.PubKey{Key: keyPair.PublicKeyBytes()}
	assert.True(t, pubKey.VerifySignature(message, signature))
	assert.False(t, pubKey.VerifySignature([]byte("foo baz"), signature))

	// And independently, over the digest.
	parsedSignature := ecdsaSignatureFromRS(t, signature)
	parsedPubKey := parsePubKey(t, keyPair.PublicKeyBytes())
	digest := sha256.Sum256(message)
	assert.True(t, parsedSignature.Verify(digest[:], parsedPubKey))
}

func TestEthermintKeyPair(t *testing.T) {
	keyPair, err := crypto.NewEthermintKeyPairFromMnemonic(defaultMnemonic, crypto.HdPathForCoinType(60))
	require.NoError(t, err)

	assert.Equal(t, crypto.AlgoEthSecp256k1, keyPair.Algorithm())
	assert.Len(t, keyPair.PublicKeyBytes(), 33)

	address := keyPair.GetAddress("evmos")
	assert.True(t, strings.HasPrefix(address, "evmos1"))
	assert.NotEqual(t, defaultAddress, keyPair.GetAddress("cosmos"))

	message := []byte("foo bar")
	signature, err := keyPair.SignBytes(message)
	require.NoError(t, err)
	require.Len(t, signature, 65)

	// Convert back to compact form and recover the public key from the keccak digest.
	compact := append([]byte{signature[64] + 27}, signature[:64]...)
	hash := sha3.NewLegacyKeccak256()
	hash.Write(message)
	recovered, _, err := ecdsa.RecoverCompact(compact, hash.Sum(nil))
	require.NoError(t, err)
	assert.Equal(t, keyPair.PublicKeyBytes(), recovered.SerializeCompressed())
}

func TestNewKeypair(t *testing.T) {
	cosmos, err := crypto.NewKeypair(crypto.AlgoSecp256k1, defaultMnemonic, crypto.DefaultHdPath)
	require.NoError(t, err)
	assert.Equal(t, defaultAddress, cosmos.GetAddress("cosmos"))

	eth, err := crypto.NewKeypair(crypto.AlgoEthSecp256k1, defaultMnemonic, crypto.HdPathForCoinType(60))
	require.NoError(t, err)
	assert.Equal(t, crypto.AlgoEthSecp256k1, eth.Algorithm())

	_, err = crypto.NewKeypair(crypto.Algorithm("ed25519"), defaultMnemonic, crypto.DefaultHdPath)
	require.Error(t, err)
}

func TestEncodeSignature(t *testing.T) {
	pubKey, _ := hex.DecodeString(defaultPubKey)
	signature := []byte{0x01, 0x02, 0x03}

	encoded, err := crypto.EncodeSignature(crypto.AlgoSecp256k1, pubKey, signature)
	require.NoError(t, err)
	assert.Equal(t, crypto.PubKeyTypeSecp256k1, encoded.PubKey.Type)
	assert.Equal(t, "AruE75PyzoRZKkmx1ynAdOq2QBElIqeon30D66sh3te2", encoded.PubKey.Value)
	assert.Equal(t, "AQID", encoded.Signature)

	decoded, err := encoded.DecodeSignature()
	require.NoError(t, err)
	assert.Equal(t, signature, decoded)

	ethEncoded, err := crypto.EncodeSignature(crypto.AlgoEthSecp256k1, pubKey, signature)
	require.NoError(t, err)
	assert.Equal(t, crypto.PubKeyTypeEthSecp256k1, ethEncoded.PubKey.Type)

	_, err = crypto.EncodeSignature(crypto.AlgoSecp256k1, pubKey[:32], signature)
	require.Error(t, err)
}
