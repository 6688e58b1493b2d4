package wallet

import (
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/scrypt"
)

// KdfAlgorithm names a password based key derivation function.
type KdfAlgorithm string

const (
	KdfArgon2id KdfAlgorithm = "argon2id"
	KdfScrypt   KdfAlgorithm = "scrypt"
)

// kdfSalt is fixed for every wallet. The KDF configuration only carries cost parameters.
var kdfSalt = []byte("signet wallet v1")

// Argon2idParams are the cost parameters for argon2id. Parallelism is always 1.
type Argon2idParams struct {
	OutputLength uint32 `json:"outputLength"`
	OpsLimit     uint32 `json:"opsLimit"`
	MemLimitKib  uint32 `json:"memLimitKib"`
}

// ScryptParams are the cost parameters for scrypt.
type ScryptParams struct {
	OutputLength    int `json:"outputLength"`
	Cost            int `json:"cost"`
	BlockSize       int `json:"blockSize"`
	Parallelization int `json:"parallelization"`
}

// KdfConfiguration selects a KDF and its parameters. Exactly one of the params fields is set,
// matching Algorithm.
type KdfConfiguration struct {
	Algorithm KdfAlgorithm

	Argon2id *Argon2idParams
	Scrypt   *ScryptParams
}

// DefaultKdfConfiguration is used by Wallet.Serialize.
func DefaultKdfConfiguration() KdfConfiguration {
	return Argon2idConfiguration(32, 20, 12*1024)
}

func Argon2idConfiguration(outputLength, opsLimit, memLimitKib uint32) KdfConfiguration {
	return KdfConfiguration{
		Algorithm: KdfArgon2id,
		Argon2id: &Argon2idParams{
			OutputLength: outputLength,
			OpsLimit:     opsLimit,
			MemLimitKib:  memLimitKib,
		},
	}
}

func ScryptConfiguration(outputLength, cost, blockSize, parallelization int) KdfConfiguration {
	return KdfConfiguration{
		Algorithm: KdfScrypt,
		Scrypt: &ScryptParams{
			OutputLength:    outputLength,
			Cost:            cost,
			BlockSize:       blockSize,
			Parallelization: parallelization,
		},
	}
}

type kdfConfigurationJSON struct {
	Algorithm KdfAlgorithm    `json:"algorithm"`
	Params    json.RawMessage `json:"params"`
}

func (c KdfConfiguration) MarshalJSON() ([]byte, error) {
	var params any
	switch c.Algorithm {
	case KdfArgon2id:
		params = c.Argon2id
	case KdfScrypt:
		params = c.Scrypt
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKdf, c.Algorithm)
	}
	if params == nil {
		return nil, fmt.Errorf("%w: missing params for %s", ErrInvalidKdfParams, c.Algorithm)
	}

	rawParams, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	return json.Marshal(kdfConfigurationJSON{
		Algorithm: c.Algorithm,
		Params:    rawParams,
	})
}

func (c *KdfConfiguration) UnmarshalJSON(data []byte) error {
	var raw kdfConfigurationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	config := KdfConfiguration{Algorithm: raw.Algorithm}
	switch raw.Algorithm {
	case KdfArgon2id:
		config.Argon2id = &Argon2idParams{}
		if err := unmarshalParams(raw.Params, config.Argon2id); err != nil {
			return err
		}
	case KdfScrypt:
		config.Scrypt = &ScryptParams{}
		if err := unmarshalParams(raw.Params, config.Scrypt); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedKdf, raw.Algorithm)
	}

	*c = config
	return nil
}

func unmarshalParams(raw json.RawMessage, target any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: missing params", ErrInvalidKdfParams)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidKdfParams, err)
	}
	return nil
}

// Validate checks that the parameters are usable.
func (c KdfConfiguration) Validate() error {
	switch c.Algorithm {
	case KdfArgon2id:
		p := c.Argon2id
		if p == nil || p.OutputLength == 0 || p.OpsLimit == 0 || p.MemLimitKib == 0 {
			return fmt.Errorf("%w: argon2id requires positive outputLength, opsLimit and memLimitKib", ErrInvalidKdfParams)
		}
	case KdfScrypt:
		p := c.Scrypt
		if p == nil || p.OutputLength <= 0 || p.BlockSize <= 0 || p.Parallelization <= 0 {
			return fmt.Errorf("%w: scrypt requires positive outputLength, blockSize and parallelization", ErrInvalidKdfParams)
		}
		if p.Cost <= 1 || p.Cost&(p.Cost-1) != 0 {
			return fmt.Errorf("%w: scrypt cost must be a power of two greater than 1", ErrInvalidKdfParams)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedKdf, c.Algorithm)
	}
	return nil
}

// ExecuteKdf derives an encryption key from a password. Deterministic for a given password and
// configuration.
func ExecuteKdf(password string, config KdfConfiguration) ([]byte, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Algorithm {
	case KdfArgon2id:
		p := config.Argon2id
		return argon2.IDKey([]byte(password), kdfSalt, p.OpsLimit, p.MemLimitKib, 1, p.OutputLength), nil
	case KdfScrypt:
		p := config.Scrypt
		return scrypt.Key([]byte(password), kdfSalt, p.Cost, p.BlockSize, p.Parallelization, p.OutputLength)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedKdf, config.Algorithm)
}
