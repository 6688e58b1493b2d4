package rpc

import (
	"context"
	"errors"
	"time"

	retry "github.com/avast/retry-go/v4"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tessellated-io/signet/cosmos/tx"
	"github.com/tessellated-io/signet/log"
)

// Implements retryable queries and returns the last error
type retryableQueryClient struct {
	wrappedClient QueryClient

	attempts retry.Option
	delay    retry.Option

	logger *log.Logger
}

// Ensure that retryableQueryClient implements QueryClient
var _ QueryClient = (*retryableQueryClient)(nil)

// NewRetryableQueryClient returns a new retryableQueryClient
func NewRetryableQueryClient(attempts uint, delay time.Duration, queryClient QueryClient, logger *log.Logger) (QueryClient, error) {
	return &retryableQueryClient{
		wrappedClient: queryClient,

		attempts: retry.Attempts(attempts),
		delay:    retry.Delay(delay),

		logger: logger,
	}, nil
}

// QueryClient Interface

func (r *retryableQueryClient) Account(ctx context.Context, address string) (*tx.AccountRecord, error) {
	var result *tx.AccountRecord
	var err error

	err = retry.Do(func() error {
		result, err = r.wrappedClient.Account(ctx, address)
		r.logFailure(err, "account")
		return err
	}, r.delay, r.attempts, retry.Context(ctx))
	if err != nil {
		return nil, unwrapRetryError(err)
	}

	return result, nil
}

func (r *retryableQueryClient) GetBalances(ctx context.Context, address string) (sdk.Coins, error) {
	var result sdk.Coins
	var err error

	err = retry.Do(func() error {
		result, err = r.wrappedClient.GetBalances(ctx, address)
		r.logFailure(err, "get_balances")
		return err
	}, r.delay, r.attempts, retry.Context(ctx))
	if err != nil {
		return nil, unwrapRetryError(err)
	}

	return result, nil
}

func (r *retryableQueryClient) GetBalance(ctx context.Context, address, denom string) (*sdk.Coin, error) {
	var result *sdk.Coin
	var err error

	err = retry.Do(func() error {
		result, err = r.wrappedClient.GetBalance(ctx, address, denom)
		r.logFailure(err, "get_balance")
		return err
	}, r.delay, r.attempts, retry.Context(ctx))
	if err != nil {
		return nil, unwrapRetryError(err)
	}

	return result, nil
}

func (r *retryableQueryClient) GetDelegations(ctx context.Context, delegator string) ([]Delegation, error) {
	var result []Delegation
	var err error

	err = retry.Do(func() error {
		result, err = r.wrappedClient.GetDelegations(ctx, delegator)
		r.logFailure(err, "get_delegations")
		return err
	}, r.delay, r.attempts, retry.Context(ctx))
	if err != nil {
		return nil, unwrapRetryError(err)
	}

	return result, nil
}

func (r *retryableQueryClient) logFailure(err error, method string) {
	if err != nil {
		r.logger.Error("failed call in rpc client, will retry", "error", err.Error(), "method", method)
	}
}

// If err is an error from a context, unwrapping will write out nil
func unwrapRetryError(err error) error {
	unwrappedErr := errors.Unwrap(err)
	if unwrappedErr != nil {
		return unwrappedErr
	}
	return err
}
