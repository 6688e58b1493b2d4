package lcd

import (
	"context"
	"errors"
	"time"

	retry "github.com/avast/retry-go/v4"

	"github.com/tessellated-io/signet/cosmos/tx"
	"github.com/tessellated-io/signet/log"
)

// Retries idempotent queries and returns the last error. Broadcasts are never retried, since
// resubmitting a signed envelope blindly can double spend or fail on a consumed sequence.
type retryableClient struct {
	wrappedClient Client

	attempts retry.Option
	delay    retry.Option

	logger *log.Logger
}

// Ensure that retryableClient implements Client
var _ Client = (*retryableClient)(nil)

// NewRetryableClient returns a new retryableClient
func NewRetryableClient(attempts uint, delay time.Duration, client Client, logger *log.Logger) (Client, error) {
	return &retryableClient{
		wrappedClient: client,

		attempts: retry.Attempts(attempts),
		delay:    retry.Delay(delay),

		logger: logger,
	}, nil
}

// Client Interface

func (r *retryableClient) Account(ctx context.Context, address string) (*tx.AccountRecord, error) {
	var result *tx.AccountRecord
	var err error

	err = retry.Do(func() error {
		result, err = r.wrappedClient.Account(ctx, address)
		if err != nil {
			r.logger.Error("failed call in lcd client, will retry", "error", err.Error(), "method", "account")
		}
		return err
	}, r.delay, r.attempts, retry.Context(ctx))
	if err != nil {
		return nil, unwrapRetryError(err)
	}

	return result, nil
}

func (r *retryableClient) ChainID(ctx context.Context) (string, error) {
	var result string
	var err error

	err = retry.Do(func() error {
		result, err = r.wrappedClient.ChainID(ctx)
		if err != nil {
			r.logger.Error("failed call in lcd client, will retry", "error", err.Error(), "method", "chain_id")
		}
		return err
	}, r.delay, r.attempts, retry.Context(ctx))
	if err != nil {
		return "", unwrapRetryError(err)
	}

	return result, nil
}

func (r *retryableClient) BroadcastTx(ctx context.Context, envelope *tx.SignedEnvelope) ([]byte, error) {
	return r.wrappedClient.BroadcastTx(ctx, envelope)
}

// If err is an error from a context, unwrapping will write out nil
func unwrapRetryError(err error) error {
	unwrappedErr := errors.Unwrap(err)
	if unwrappedErr != nil {
		return unwrappedErr
	}
	return err
}
