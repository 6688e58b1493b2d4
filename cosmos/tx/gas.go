package tx

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgKind names a kind of message that has a configured gas limit.
type MsgKind string

const (
	MsgKindSend       MsgKind = "send"
	MsgKindDelegate   MsgKind = "delegate"
	MsgKindUndelegate MsgKind = "undelegate"
)

// GasPrice is a positive price per unit of gas in a single denom, ex. 0.025ucosm.
type GasPrice struct {
	Amount sdk.Dec
	Denom  string
}

// ParseGasPrice parses a price such as "0.025ucosm".
func ParseGasPrice(input string) (*GasPrice, error) {
	decCoin, err := sdk.ParseDecCoin(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidGasPrice, err)
	}

	if !decCoin.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: price must be positive, got %s", ErrInvalidGasPrice, input)
	}

	return &GasPrice{
		Amount: decCoin.Amount,
		Denom:  decCoin.Denom,
	}, nil
}

func (gp GasPrice) String() string {
	return sdk.NewDecCoinFromDec(gp.Denom, gp.Amount).String()
}

// FeeForGas returns ceil(price * gasLimit) in the price's denom.
func (gp GasPrice) FeeForGas(gasLimit uint64) StdFee {
	amount := gp.Amount.MulInt64(int64(gasLimit)).Ceil().TruncateInt()

	return StdFee{
		Amount: sdk.NewCoins(sdk.NewCoin(gp.Denom, amount)),
		Gas:    gasLimit,
	}
}

// GasLimits are per message kind gas limits. Zero values mean "not set".
type GasLimits struct {
	Send       uint64 `yaml:"send" comment:"Gas limit for token transfers"`
	Delegate   uint64 `yaml:"delegate" comment:"Gas limit for delegations"`
	Undelegate uint64 `yaml:"undelegate" comment:"Gas limit for undelegations"`
}

// DefaultGasLimits are used for any kind without an override.
func DefaultGasLimits() GasLimits {
	return GasLimits{
		Send:       80_000,
		Delegate:   160_000,
		Undelegate: 160_000,
	}
}

// Merge returns limits with every non-zero field of overrides applied.
func (gl GasLimits) Merge(overrides GasLimits) GasLimits {
	merged := gl
	if overrides.Send != 0 {
		merged.Send = overrides.Send
	}
	if overrides.Delegate != 0 {
		merged.Delegate = overrides.Delegate
	}
	if overrides.Undelegate != 0 {
		merged.Undelegate = overrides.Undelegate
	}
	return merged
}

// FeeTable holds a precomputed fee for each message kind. It is built explicitly from
// configuration; there is no process wide default.
type FeeTable struct {
	fees map[MsgKind]StdFee
}

func BuildFeeTable(gasPrice GasPrice, defaults, overrides GasLimits) FeeTable {
	limits := defaults.Merge(overrides)

	return FeeTable{
		fees: map[MsgKind]StdFee{
			MsgKindSend:       gasPrice.FeeForGas(limits.Send),
			MsgKindDelegate:   gasPrice.FeeForGas(limits.Delegate),
			MsgKindUndelegate: gasPrice.FeeForGas(limits.Undelegate),
		},
	}
}

// FeeFor returns the fee for a message kind.
func (ft FeeTable) FeeFor(kind MsgKind) (*StdFee, error) {
	fee, found := ft.fees[kind]
	if !found || fee.Gas == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMsgKind, kind)
	}

	return &StdFee{
		Amount: append(fee.Amount[:0:0], fee.Amount...),
		Gas:    fee.Gas,
	}, nil
}

// Helper function to know if an error had to do with gas.
func IsGasRelatedError(codespace string, code uint32) bool {
	return IsGasPriceError(codespace, code) || isGasAmountError(codespace, code)
}

// Helper function to determine if an error is related to too small of a gas price
func IsGasPriceError(codespace string, code uint32) bool {
	return (codespace == "sdk" && code == 13) || (codespace == "gaia" && code == 4)
}

// Helper function to determine if an error is related to to few gas units
func isGasAmountError(codespace string, code uint32) bool {
	return (codespace == "sdk" && code == 11)
}
