package wallet_test

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessellated-io/signet/crypto"
	"github.com/tessellated-io/signet/wallet"
)

// Cheap parameters so tests stay fast.
var testKdf = wallet.Argon2idConfiguration(32, 4, 3*1024)

func TestSerialize_Layout(t *testing.T) {
	w, err := wallet.FromMnemonic(defaultMnemonic)
	require.NoError(t, err)

	serialized, err := w.Serialize("123")
	require.NoError(t, err)

	var layout map[string]any
	require.NoError(t, json.Unmarshal([]byte(serialized), &layout))

	assert.Equal(t, "secp256k1wallet-v1", layout["type"])
	assert.Equal(t, map[string]any{
		"algorithm": "argon2id",
		"params": map[string]any{
			"outputLength": float64(32),
			"opsLimit":     float64(20),
			"memLimitKib":  float64(12 * 1024),
		},
	}, layout["kdf"])
	assert.Equal(t, map[string]any{"algorithm": "xchacha20poly1305-ietf"}, layout["encryption"])

	data, ok := layout["data"].(string)
	require.True(t, ok)
	_, err = base64.StdEncoding.Strict().DecodeString(data)
	require.NoError(t, err)
}

func TestSerialize_RoundTrip(t *testing.T) {
	original, err := wallet.FromMnemonic(defaultMnemonic)
	require.NoError(t, err)

	serialized, err := original.Serialize("123")
	require.NoError(t, err)

	restored, err := wallet.Deserialize(serialized, "123")
	require.NoError(t, err)

	assert.Equal(t, defaultMnemonic, restored.Mnemonic())
	assert.Equal(t, original.GetAccounts(), restored.GetAccounts())
	assert.Equal(t, defaultAddress, restored.Address())
}

func TestSerialize_WrongPassword(t *testing.T) {
	original, err := wallet.FromMnemonic(defaultMnemonic)
	require.NoError(t, err)

	key, err := wallet.ExecuteKdf("123", testKdf)
	require.NoError(t, err)
	serialized, err := original.SerializeWithEncryptionKey(key, testKdf)
	require.NoError(t, err)

	_, err = wallet.Deserialize(serialized, "1234")
	require.ErrorIs(t, err, wallet.ErrDecryptionFailed)
}

func TestSerialize_FreshNonce(t *testing.T) {
	w, err := wallet.FromMnemonic(defaultMnemonic)
	require.NoError(t, err)

	key := make([]byte, 32)
	first, err := w.SerializeWithEncryptionKey(key, testKdf)
	require.NoError(t, err)
	second, err := w.SerializeWithEncryptionKey(key, testKdf)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestSerializeWithEncryptionKey_CustomKdf(t *testing.T) {
	w, err := wallet.FromMnemonic(defaultMnemonic)
	require.NoError(t, err)

	key, _ := hex.DecodeString("aabb221100aabb332211aabb33221100aabb221100aabb332211aabb33221100")
	custom := wallet.Argon2idConfiguration(32, 321, 11*1024)

	serialized, err := w.SerializeWithEncryptionKey(key, custom)
	require.NoError(t, err)

	var parsed wallet.SerializedWallet
	require.NoError(t, json.Unmarshal([]byte(serialized), &parsed))
	assert.Equal(t, wallet.SerializationTypeV1, parsed.Type)
	assert.Equal(t, custom, parsed.Kdf)
	assert.Equal(t, wallet.EncryptionXChaCha20Poly1305, parsed.Encryption.Algorithm)

	extracted, err := wallet.ExtractKdfConfiguration(serialized)
	require.NoError(t, err)
	assert.Equal(t, custom, *extracted)

	restored, err := wallet.DeserializeWithEncryptionKey(serialized, key)
	require.NoError(t, err)
	assert.Equal(t, defaultMnemonic, restored.Mnemonic())
}

func TestDeserializeWithEncryptionKey_ExtractedKdfPath(t *testing.T) {
	password := "123"

	original, err := wallet.FromMnemonic(defaultMnemonic)
	require.NoError(t, err)
	key, err := wallet.ExecuteKdf(password, testKdf)
	require.NoError(t, err)
	serialized, err := original.SerializeWithEncryptionKey(key, testKdf)
	require.NoError(t, err)

	kdfConfig, err := wallet.ExtractKdfConfiguration(serialized)
	require.NoError(t, err)
	derived, err := wallet.ExecuteKdf(password, *kdfConfig)
	require.NoError(t, err)

	restored, err := wallet.DeserializeWithEncryptionKey(serialized, derived)
	require.NoError(t, err)
	assert.Equal(t, defaultMnemonic, restored.Mnemonic())
	assert.Equal(t, original.GetAccounts(), restored.GetAccounts())
}

func TestDeserialize_RestoresDerivationOptions(t *testing.T) {
	original, err := wallet.FromMnemonic(
		defaultMnemonic,
		wallet.WithAlgorithm(crypto.AlgoEthSecp256k1),
		wallet.WithHdPath(crypto.HdPathForCoinType(60)),
		wallet.WithPrefix("evmos"),
		wallet.WithEncryptionAlgorithm(wallet.EncryptionAES256GCM),
	)
	require.NoError(t, err)

	key := make([]byte, 32)
	serialized, err := original.SerializeWithEncryptionKey(key, testKdf)
	require.NoError(t, err)

	var parsed wallet.SerializedWallet
	require.NoError(t, json.Unmarshal([]byte(serialized), &parsed))
	assert.Equal(t, wallet.EncryptionAES256GCM, parsed.Encryption.Algorithm)

	restored, err := wallet.DeserializeWithEncryptionKey(serialized, key)
	require.NoError(t, err)
	assert.Equal(t, original.Address(), restored.Address())
	assert.Equal(t, "evmos", restored.Prefix())
	assert.Equal(t, crypto.HdPathForCoinType(60), restored.HdPath())
	assert.Equal(t, crypto.AlgoEthSecp256k1, restored.GetAccounts()[0].Algo)
}

func TestDeserialize_TamperedData(t *testing.T) {
	w, err := wallet.FromMnemonic(defaultMnemonic)
	require.NoError(t, err)

	key := make([]byte, 32)
	serialized, err := w.SerializeWithEncryptionKey(key, testKdf)
	require.NoError(t, err)

	var parsed wallet.SerializedWallet
	require.NoError(t, json.Unmarshal([]byte(serialized), &parsed))

	sealed, err := base64.StdEncoding.DecodeString(parsed.Data)
	require.NoError(t, err)

	for _, index := range []int{0, 30, len(sealed) - 1} {
		tampered := append([]byte{}, sealed...)
		tampered[index] ^= 0x01
		parsed.Data = base64.StdEncoding.EncodeToString(tampered)

		reserialized, err := json.Marshal(parsed)
		require.NoError(t, err)

		_, err = wallet.DeserializeWithEncryptionKey(string(reserialized), key)
		require.ErrorIs(t, err, wallet.ErrDecryptionFailed, "byte %d", index)
	}

	// Not base64 at all
	parsed.Data = "!!!"
	reserialized, err := json.Marshal(parsed)
	require.NoError(t, err)
	_, err = wallet.DeserializeWithEncryptionKey(string(reserialized), key)
	require.ErrorIs(t, err, wallet.ErrDecryptionFailed)

	// Truncated
	parsed.Data = base64.StdEncoding.EncodeToString(sealed[:10])
	reserialized, err = json.Marshal(parsed)
	require.NoError(t, err)
	_, err = wallet.DeserializeWithEncryptionKey(string(reserialized), key)
	require.ErrorIs(t, err, wallet.ErrDecryptionFailed)
}

func TestDeserialize_WrongKeyLength(t *testing.T) {
	w, err := wallet.FromMnemonic(defaultMnemonic)
	require.NoError(t, err)

	serialized, err := w.SerializeWithEncryptionKey(make([]byte, 32), testKdf)
	require.NoError(t, err)

	_, err = wallet.DeserializeWithEncryptionKey(serialized, make([]byte, 16))
	require.ErrorIs(t, err, wallet.ErrDecryptionFailed)

	_, err = w.SerializeWithEncryptionKey(make([]byte, 16), testKdf)
	require.ErrorIs(t, err, wallet.ErrInvalidKey)
}

func TestDeserialize_UnsupportedFormats(t *testing.T) {
	_, err := wallet.Deserialize(`{"type":"secp256k1wallet-v2","kdf":{},"encryption":{},"data":""}`, "123")
	require.ErrorIs(t, err, wallet.ErrUnsupportedWalletVersion)

	_, err = wallet.Deserialize(`{"type":"secp256k1wallet-v1","kdf":{"algorithm":"pbkdf2","params":{}},"encryption":{"algorithm":"xchacha20poly1305-ietf"},"data":""}`, "123")
	require.ErrorIs(t, err, wallet.ErrUnsupportedKdf)

	_, err = wallet.Deserialize(`{"type":"secp256k1wallet-v1","kdf":{"algorithm":"argon2id","params":{"outputLength":32,"opsLimit":4,"memLimitKib":3072}},"encryption":{"algorithm":"rot13"},"data":""}`, "123")
	require.ErrorIs(t, err, wallet.ErrUnsupportedCipher)

	_, err = wallet.Deserialize("not json", "123")
	require.ErrorIs(t, err, wallet.ErrMalformedSerialization)

	_, err = wallet.ExtractKdfConfiguration(`{"type":"something-else"}`)
	require.ErrorIs(t, err, wallet.ErrUnsupportedWalletVersion)
}
