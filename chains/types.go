package chains

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tessellated-io/signet/crypto"
)

// Defaults for chains that don't say otherwise.
const (
	DefaultCoinType  uint32           = sdk.CoinType
	DefaultAlgorithm crypto.Algorithm = crypto.AlgoSecp256k1
)

// ChainData describes a network the signer knows how to talk to without any configuration.
type ChainData struct {
	ChainName     string
	ChainID       string
	AccountPrefix string

	LcdUrl  string
	GrpcUrl string

	NativeToken         string
	NativeTokenDecimals int
	GasPrice            string

	CoinType  uint32
	Algorithm crypto.Algorithm
}

// HdPath returns the first address derivation path for the chain's coin type.
func (cd *ChainData) HdPath() string {
	return crypto.HdPathForCoinType(cd.CoinType)
}
