package crypto

import (
	btcec "github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"golang.org/x/crypto/sha3"

	"github.com/cosmos/cosmos-sdk/crypto/hd"
	"github.com/cosmos/cosmos-sdk/crypto/keyring"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"
)

// EthermintKeyPair is an eth_secp256k1 key, as used by EVM based cosmos chains. Addresses and
// signatures use Keccak-256 rather than SHA-256.
type EthermintKeyPair struct {
	public  *btcec.PublicKey
	private *btcec.PrivateKey
}

var _ Keypair = (*EthermintKeyPair)(nil)

// NewEthermintKeyPairFromMnemonic derives a key at the given path, usually m/44'/60'/0'/0/0.
func NewEthermintKeyPairFromMnemonic(mnemonic, hdPath string) (*EthermintKeyPair, error) {
	// BIP-32 derivation is identical for both curves' key types, only the usage differs.
	derivedPriv, err := hd.Secp256k1.Derive()(mnemonic, keyring.DefaultBIP39Passphrase, hdPath)
	if err != nil {
		return nil, err
	}
	private, public := btcec.PrivKeyFromBytes(derivedPriv)

	return &EthermintKeyPair{
		public:  public,
		private: private,
	}, nil
}

func (e *EthermintKeyPair) Algorithm() Algorithm {
	return AlgoEthSecp256k1
}

func (e *EthermintKeyPair) GetAddress(prefix string) string {
	decompressedPublicKey := e.public.SerializeUncompressed()

	// Remove the prefix byte from the uncompressed public key
	addressBytes := keccak256(decompressedPublicKey[1:])[12:]

	encoded, err := bech32.ConvertAndEncode(prefix, sdk.AccAddress(addressBytes))
	if err != nil {
		return ""
	}
	return encoded
}

// SignBytes returns a 65 byte [R || S || V] signature over keccak256(bytesToSign).
func (e *EthermintKeyPair) SignBytes(bytesToSign []byte) ([]byte, error) {
	compact, err := ecdsa.SignCompact(e.private, keccak256(bytesToSign), false)
	if err != nil {
		return nil, err
	}

	// Compact form is [27 + V || R || S]
	recoveryID := compact[0] - 27
	signature := make([]byte, 0, 65)
	signature = append(signature, compact[1:]...)
	signature = append(signature, recoveryID)

	return signature, nil
}

func (e *EthermintKeyPair) PublicKeyBytes() []byte {
	return e.public.SerializeCompressed()
}

func keccak256(data []byte) []byte {
	hash := sha3.NewLegacyKeccak256()
	hash.Write(data)
	return hash.Sum(nil)
}
