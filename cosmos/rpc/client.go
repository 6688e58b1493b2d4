package rpc

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tessellated-io/signet/cosmos/tx"
)

// Delegation is a delegator's stake with a single validator.
type Delegation struct {
	ValidatorAddress string
	Balance          sdk.Coin
}

// QueryClient answers read-only queries over gRPC.
type QueryClient interface {
	tx.AccountQuerier

	GetBalances(ctx context.Context, address string) (sdk.Coins, error)
	GetBalance(ctx context.Context, address, denom string) (*sdk.Coin, error)
	GetDelegations(ctx context.Context, delegator string) ([]Delegation, error)
}
