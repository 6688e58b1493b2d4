package crypto

import (
	"github.com/cosmos/cosmos-sdk/crypto/hd"
	"github.com/cosmos/cosmos-sdk/crypto/keyring"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"
)

// KeyPair is a cosmos secp256k1 key. Signatures are over the SHA-256 digest of the input.
type KeyPair struct {
	public  cryptotypes.PubKey
	private cryptotypes.PrivKey
}

var _ Keypair = (*KeyPair)(nil)

// NewCosmosKeyPairFromMnemonic returns a key pair derived from the given mnemonic, with coin type 118 (cosmos)
func NewCosmosKeyPairFromMnemonic(mnemonic string) (*KeyPair, error) {
	return NewKeyPairFromMnemonic(mnemonic, DefaultHdPath)
}

// NewKeyPairFromMnemonic returns a key pair derived from the given mnemonic at the given path.
func NewKeyPairFromMnemonic(mnemonic, hdPath string) (*KeyPair, error) {
	algo := hd.Secp256k1
	derivedPriv, err := algo.Derive()(mnemonic, keyring.DefaultBIP39Passphrase, hdPath)
	if err != nil {
		return nil, err
	}
	privKey := algo.Generate()(derivedPriv)

	return &KeyPair{
		public:  privKey.PubKey(),
		private: privKey,
	}, nil
}

func (kp *KeyPair) Algorithm() Algorithm {
	return AlgoSecp256k1
}

func (kp *KeyPair) GetAddress(prefix string) string {
	address := sdk.AccAddress(kp.public.Address())
	encoded, err := bech32.ConvertAndEncode(prefix, address)
	if err != nil {
		return ""
	}
	return encoded
}

func (kp *KeyPair) SignBytes(bytesToSign []byte) ([]byte, error) {
	return kp.private.Sign(bytesToSign)
}

func (kp *KeyPair) PublicKeyBytes() []byte {
	return kp.public.Bytes()
}
