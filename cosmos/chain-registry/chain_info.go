package registry

import (
	"strconv"
	"strings"

	"github.com/tessellated-io/signet/chains"
	"github.com/tessellated-io/signet/crypto"
)

// Convenience helper methods

func (ci *ChainInfo) FeeToken() (*FeeToken, error) {
	feeTokens := ci.Fees.FeeTokens
	if len(feeTokens) == 0 {
		return nil, ErrNoFeeTokenFound
	}
	return &feeTokens[0], nil
}

func (ci *ChainInfo) StakingDenom() (string, error) {
	stakingTokens := ci.Staking.StakingTokens
	if len(stakingTokens) == 0 {
		return "", ErrNoStakingTokenFound
	}

	return stakingTokens[0].Denom, nil
}

// GasPrice renders the registry's suggested price for the first fee token, ex. "0.025uatom". The
// average price is preferred, then the low and minimum prices.
func (ci *ChainInfo) GasPrice() (string, error) {
	feeToken, err := ci.FeeToken()
	if err != nil {
		return "", err
	}

	for _, price := range []float64{feeToken.AverageGasPrice, feeToken.LowGasPrice, feeToken.FixedMinGasPrice} {
		if price > 0 {
			return strconv.FormatFloat(price, 'f', -1, 64) + feeToken.Denom, nil
		}
	}
	return "", ErrNoGasPriceFound
}

// Algorithm returns the signing algorithm the chain expects.
func (ci *ChainInfo) Algorithm() crypto.Algorithm {
	for _, algo := range ci.KeyAlgos {
		if strings.EqualFold(algo, string(crypto.AlgoEthSecp256k1)) || strings.EqualFold(algo, "ethsecp256k1") {
			return crypto.AlgoEthSecp256k1
		}
	}
	return chains.DefaultAlgorithm
}

// ToChainData converts registry data into the same shape as an offline preset. Endpoints are taken
// from the first provider listed.
func (ci *ChainInfo) ToChainData() (*chains.ChainData, error) {
	gasPrice, err := ci.GasPrice()
	if err != nil {
		return nil, err
	}

	feeToken, err := ci.FeeToken()
	if err != nil {
		return nil, err
	}

	chainData := &chains.ChainData{
		ChainName:     ci.ChainName,
		ChainID:       ci.ChainID,
		AccountPrefix: ci.Bech32Prefix,

		NativeToken: feeToken.Denom,
		GasPrice:    gasPrice,

		CoinType:  ci.Slip44,
		Algorithm: ci.Algorithm(),
	}

	if chainData.CoinType == 0 {
		chainData.CoinType = chains.DefaultCoinType
	}
	if len(ci.APIs.Rest) > 0 {
		chainData.LcdUrl = ci.APIs.Rest[0].Address
	}
	if len(ci.APIs.GRPC) > 0 {
		chainData.GrpcUrl = ci.APIs.GRPC[0].Address
	}

	return chainData, nil
}
