package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// EncryptionAlgorithm names an AEAD used to seal wallet contents.
type EncryptionAlgorithm string

const (
	EncryptionXChaCha20Poly1305 EncryptionAlgorithm = "xchacha20poly1305-ietf"
	EncryptionAES256GCM         EncryptionAlgorithm = "aes256gcm"
)

// EncryptionConfiguration is the serialized description of how data was sealed.
type EncryptionConfiguration struct {
	Algorithm EncryptionAlgorithm `json:"algorithm"`
}

// KeyCipher provides the cryptographic primitives a wallet needs at rest.
type KeyCipher interface {
	DeriveKey(password string, config KdfConfiguration) ([]byte, error)

	// Seal returns nonce || ciphertext, using a fresh random nonce on every call.
	Seal(key, plaintext []byte, algorithm EncryptionAlgorithm) ([]byte, error)

	// Unseal reverses Seal. Any authentication or decoding failure is ErrDecryptionFailed.
	Unseal(key, sealed []byte, algorithm EncryptionAlgorithm) ([]byte, error)
}

type keyCipher struct{}

var _ KeyCipher = (*keyCipher)(nil)

// NewKeyCipher returns a KeyCipher backed by golang.org/x/crypto and crypto/aes.
func NewKeyCipher() KeyCipher {
	return &keyCipher{}
}

func (kc *keyCipher) DeriveKey(password string, config KdfConfiguration) ([]byte, error) {
	return ExecuteKdf(password, config)
}

func (kc *keyCipher) Seal(key, plaintext []byte, algorithm EncryptionAlgorithm) ([]byte, error) {
	aead, err := newAEAD(key, algorithm)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

func (kc *keyCipher) Unseal(key, sealed []byte, algorithm EncryptionAlgorithm) ([]byte, error) {
	aead, err := newAEAD(key, algorithm)
	if err != nil {
		if algorithm.IsSupported() {
			return nil, ErrDecryptionFailed
		}
		return nil, err
	}

	if len(sealed) < aead.NonceSize()+aead.Overhead() {
		return nil, ErrDecryptionFailed
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

// IsSupported reports whether the algorithm can be used by the default KeyCipher.
func (a EncryptionAlgorithm) IsSupported() bool {
	return a == EncryptionXChaCha20Poly1305 || a == EncryptionAES256GCM
}

func newAEAD(key []byte, algorithm EncryptionAlgorithm) (cipher.AEAD, error) {
	switch algorithm {
	case EncryptionXChaCha20Poly1305:
		if len(key) != chacha20poly1305.KeySize {
			return nil, fmt.Errorf("%w: %s requires a %d byte key, got %d", ErrInvalidKey, algorithm, chacha20poly1305.KeySize, len(key))
		}
		return chacha20poly1305.NewX(key)
	case EncryptionAES256GCM:
		if len(key) != 32 {
			return nil, fmt.Errorf("%w: %s requires a 32 byte key, got %d", ErrInvalidKey, algorithm, len(key))
		}
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		return cipher.NewGCM(block)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedCipher, algorithm)
}
