package wallet

import "errors"

var (
	ErrDecryptionFailed         = errors.New("decryption failed")
	ErrUnsupportedWalletVersion = errors.New("unsupported wallet serialization type")
	ErrUnsupportedKdf           = errors.New("unsupported kdf algorithm")
	ErrUnsupportedCipher        = errors.New("unsupported encryption algorithm")
	ErrMalformedSerialization   = errors.New("malformed wallet serialization")
	ErrInvalidKdfParams         = errors.New("invalid kdf params")
	ErrInvalidKey               = errors.New("invalid encryption key")
	ErrInvalidMnemonic          = errors.New("invalid mnemonic")
	ErrInvalidMnemonicLength    = errors.New("invalid mnemonic length, must be one of 12, 15, 18, 21 or 24 words")
	ErrUnknownAddress           = errors.New("address not found in wallet")
)
