package wallet

import (
	"fmt"
	"strings"

	"github.com/cosmos/go-bip39"

	"github.com/tessellated-io/signet/crypto"
)

const DefaultPrefix = "cosmos"

// Wallet holds a single keypair derived from a mnemonic. It is not safe for concurrent use.
type Wallet struct {
	mnemonic string
	algo     crypto.Algorithm
	hdPath   string
	prefix   string

	keypair crypto.Keypair
	address string

	cipher     KeyCipher
	encryption EncryptionAlgorithm
}

type options struct {
	hdPath     string
	prefix     string
	algo       crypto.Algorithm
	cipher     KeyCipher
	encryption EncryptionAlgorithm
}

// Option configures a Wallet.
type Option func(*options)

func WithHdPath(hdPath string) Option {
	return func(o *options) { o.hdPath = hdPath }
}

func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

func WithAlgorithm(algo crypto.Algorithm) Option {
	return func(o *options) { o.algo = algo }
}

func WithKeyCipher(cipher KeyCipher) Option {
	return func(o *options) { o.cipher = cipher }
}

// WithEncryptionAlgorithm selects the AEAD used by Serialize and SerializeWithEncryptionKey.
func WithEncryptionAlgorithm(algorithm EncryptionAlgorithm) Option {
	return func(o *options) { o.encryption = algorithm }
}

func defaultOptions() *options {
	return &options{
		hdPath:     crypto.DefaultHdPath,
		prefix:     DefaultPrefix,
		algo:       crypto.AlgoSecp256k1,
		cipher:     NewKeyCipher(),
		encryption: EncryptionXChaCha20Poly1305,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// FromMnemonic restores a wallet from a BIP-39 mnemonic.
func FromMnemonic(mnemonic string, opts ...Option) (*Wallet, error) {
	return newWallet(mnemonic, applyOptions(opts))
}

// Generate creates a wallet from a fresh random mnemonic with the given number of words.
func Generate(length int, opts ...Option) (*Wallet, error) {
	entropyBits, err := entropyBitsForLength(length)
	if err != nil {
		return nil, err
	}

	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return nil, err
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, err
	}

	return FromMnemonic(mnemonic, opts...)
}

func entropyBitsForLength(length int) (int, error) {
	switch length {
	case 12, 15, 18, 21, 24:
		return length / 3 * 32, nil
	}
	return 0, fmt.Errorf("%w: got %d", ErrInvalidMnemonicLength, length)
}

func newWallet(mnemonic string, o *options) (*Wallet, error) {
	normalized := strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(normalized) {
		return nil, ErrInvalidMnemonic
	}

	keypair, err := crypto.NewKeypair(o.algo, normalized, o.hdPath)
	if err != nil {
		return nil, err
	}

	address := keypair.GetAddress(o.prefix)
	if address == "" {
		return nil, fmt.Errorf("unable to derive address with prefix %q", o.prefix)
	}

	return &Wallet{
		mnemonic:   normalized,
		algo:       o.algo,
		hdPath:     o.hdPath,
		prefix:     o.prefix,
		keypair:    keypair,
		address:    address,
		cipher:     o.cipher,
		encryption: o.encryption,
	}, nil
}

// Mnemonic returns the secret mnemonic. Handle with care.
func (w *Wallet) Mnemonic() string {
	return w.mnemonic
}

func (w *Wallet) Address() string {
	return w.address
}

func (w *Wallet) HdPath() string {
	return w.hdPath
}

func (w *Wallet) Prefix() string {
	return w.prefix
}

// GetAccounts returns the single account this wallet controls.
func (w *Wallet) GetAccounts() []crypto.AccountData {
	return []crypto.AccountData{
		{
			Algo:    w.algo,
			Address: w.address,
			PubKey:  w.keypair.PublicKeyBytes(),
		},
	}
}

// Sign signs the given bytes with the key for address.
func (w *Wallet) Sign(address string, signBytes []byte) (*crypto.StdSignature, error) {
	if address != w.address {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAddress, address)
	}

	signature, err := w.keypair.SignBytes(signBytes)
	if err != nil {
		return nil, err
	}

	return crypto.EncodeSignature(w.algo, w.keypair.PublicKeyBytes(), signature)
}
