package crypto

import (
	"fmt"

	"github.com/cosmos/cosmos-sdk/crypto/hd"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Algorithm names a signature scheme a Keypair signs with.
type Algorithm string

const (
	AlgoSecp256k1    Algorithm = "secp256k1"
	AlgoEthSecp256k1 Algorithm = "eth_secp256k1"
)

// DefaultHdPath is m/44'/118'/0'/0/0
var DefaultHdPath = HdPathForCoinType(sdk.CoinType)

// Keypair is an identity that can sign arbitrary bytes. Implementations hash the bytes themselves
// with whatever digest their scheme requires.
type Keypair interface {
	Algorithm() Algorithm
	GetAddress(prefix string) string
	SignBytes(bytesToSign []byte) ([]byte, error)

	// Compressed (33 byte) public key
	PublicKeyBytes() []byte
}

// AccountData describes the single account a wallet exposes.
type AccountData struct {
	Algo    Algorithm
	Address string
	PubKey  []byte
}

// NewKeypair derives a keypair for the given algorithm from a mnemonic and a BIP-44 path.
func NewKeypair(algo Algorithm, mnemonic, hdPath string) (Keypair, error) {
	switch algo {
	case AlgoSecp256k1:
		return NewKeyPairFromMnemonic(mnemonic, hdPath)
	case AlgoEthSecp256k1:
		return NewEthermintKeyPairFromMnemonic(mnemonic, hdPath)
	}

	return nil, fmt.Errorf("unknown key algorithm: %s", algo)
}

// HdPathForCoinType returns the first address path for a SLIP-44 coin type, ex. m/44'/60'/0'/0/0.
func HdPathForCoinType(coinType uint32) string {
	return hd.NewFundraiserParams(0, coinType, 0).String()
}
