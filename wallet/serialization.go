package wallet

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tessellated-io/signet/crypto"
)

// SerializationTypeV1 identifies the only wallet format this package reads and writes.
const SerializationTypeV1 = "secp256k1wallet-v1"

// SerializedWallet is the on-disk JSON layout of an encrypted wallet.
type SerializedWallet struct {
	Type       string                  `json:"type"`
	Kdf        KdfConfiguration        `json:"kdf"`
	Encryption EncryptionConfiguration `json:"encryption"`

	// base64(nonce || ciphertext)
	Data string `json:"data"`
}

// sealedWallet is the plaintext sealed inside SerializedWallet.Data.
type sealedWallet struct {
	Mnemonic string          `json:"mnemonic"`
	Accounts []sealedAccount `json:"accounts"`
}

type sealedAccount struct {
	Algo   crypto.Algorithm `json:"algo"`
	HdPath string           `json:"hdPath"`
	Prefix string           `json:"prefix"`
}

// Serialize encrypts the wallet with a key derived from password using the default KDF.
func (w *Wallet) Serialize(password string) (string, error) {
	kdfConfig := DefaultKdfConfiguration()

	key, err := w.cipher.DeriveKey(password, kdfConfig)
	if err != nil {
		return "", err
	}

	return w.SerializeWithEncryptionKey(key, kdfConfig)
}

// SerializeWithEncryptionKey encrypts the wallet with a precomputed key. kdfConfig is recorded
// verbatim and is not checked against the key.
func (w *Wallet) SerializeWithEncryptionKey(key []byte, kdfConfig KdfConfiguration) (string, error) {
	plaintext, err := json.Marshal(sealedWallet{
		Mnemonic: w.mnemonic,
		Accounts: []sealedAccount{
			{
				Algo:   w.algo,
				HdPath: w.hdPath,
				Prefix: w.prefix,
			},
		},
	})
	if err != nil {
		return "", err
	}

	sealed, err := w.cipher.Seal(key, plaintext, w.encryption)
	if err != nil {
		return "", err
	}

	serialized, err := json.Marshal(SerializedWallet{
		Type:       SerializationTypeV1,
		Kdf:        kdfConfig,
		Encryption: EncryptionConfiguration{Algorithm: w.encryption},
		Data:       base64.StdEncoding.EncodeToString(sealed),
	})
	if err != nil {
		return "", err
	}
	return string(serialized), nil
}

// Deserialize decrypts a serialized wallet with a password. Derivation options are restored from
// the sealed contents; only WithKeyCipher is honoured from opts.
func Deserialize(serialization, password string, opts ...Option) (*Wallet, error) {
	o := applyOptions(opts)

	serialized, err := parseSerialization(serialization)
	if err != nil {
		return nil, err
	}

	key, err := o.cipher.DeriveKey(password, serialized.Kdf)
	if err != nil {
		return nil, err
	}

	return deserializeWithKey(serialized, key, o)
}

// DeserializeWithEncryptionKey decrypts a serialized wallet with a precomputed key.
func DeserializeWithEncryptionKey(serialization string, key []byte, opts ...Option) (*Wallet, error) {
	o := applyOptions(opts)

	serialized, err := parseSerialization(serialization)
	if err != nil {
		return nil, err
	}

	return deserializeWithKey(serialized, key, o)
}

// ExtractKdfConfiguration reads the KDF configuration without decrypting anything.
func ExtractKdfConfiguration(serialization string) (*KdfConfiguration, error) {
	serialized, err := parseSerialization(serialization)
	if err != nil {
		return nil, err
	}
	return &serialized.Kdf, nil
}

func parseSerialization(serialization string) (*SerializedWallet, error) {
	var header struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal([]byte(serialization), &header); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedSerialization, err)
	}
	if header.Type != SerializationTypeV1 {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedWalletVersion, header.Type)
	}

	var serialized SerializedWallet
	if err := json.Unmarshal([]byte(serialization), &serialized); err != nil {
		if errors.Is(err, ErrUnsupportedKdf) || errors.Is(err, ErrInvalidKdfParams) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrMalformedSerialization, err)
	}
	if !serialized.Encryption.Algorithm.IsSupported() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCipher, serialized.Encryption.Algorithm)
	}

	return &serialized, nil
}

func deserializeWithKey(serialized *SerializedWallet, key []byte, o *options) (*Wallet, error) {
	sealed, err := base64.StdEncoding.Strict().DecodeString(serialized.Data)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	plaintext, err := o.cipher.Unseal(key, sealed, serialized.Encryption.Algorithm)
	if err != nil {
		return nil, err
	}

	var contents sealedWallet
	if err := json.Unmarshal(plaintext, &contents); err != nil {
		return nil, ErrDecryptionFailed
	}
	if len(contents.Accounts) != 1 {
		return nil, fmt.Errorf("%w: expected exactly one account, got %d", ErrMalformedSerialization, len(contents.Accounts))
	}

	account := contents.Accounts[0]
	o.algo = account.Algo
	o.hdPath = account.HdPath
	o.prefix = account.Prefix
	o.encryption = serialized.Encryption.Algorithm

	return newWallet(contents.Mnemonic, o)
}
