package registry

import (
	"context"
	"errors"
	"time"

	retry "github.com/avast/retry-go/v4"

	"github.com/tessellated-io/signet/log"
)

// Implements a retryable and returns the last error
type retryableChainRegistryClient struct {
	wrappedClient ChainRegistryClient

	attempts retry.Option
	delay    retry.Option

	logger *log.Logger
}

// Ensure that retryableChainRegistryClient implements ChainRegistryClient
var _ ChainRegistryClient = (*retryableChainRegistryClient)(nil)

// NewRetryableChainRegistryClient returns a new retryableChainRegistryClient
func NewRetryableChainRegistryClient(attempts uint, delay time.Duration, chainRegistryClient ChainRegistryClient, logger *log.Logger) (ChainRegistryClient, error) {
	return &retryableChainRegistryClient{
		wrappedClient: chainRegistryClient,

		attempts: retry.Attempts(attempts),
		delay:    retry.Delay(delay),

		logger: logger,
	}, nil
}

// ChainRegistryClient Interface

func (r *retryableChainRegistryClient) AllChainNames(ctx context.Context) ([]string, error) {
	var result []string
	var err error

	err = retry.Do(func() error {
		result, err = r.wrappedClient.AllChainNames(ctx)
		r.logFailure(err, "all_chain_names")
		return err
	}, r.delay, r.attempts, retry.Context(ctx))
	if err != nil {
		return nil, unwrapRetryError(err)
	}

	return result, nil
}

func (r *retryableChainRegistryClient) ChainNameForChainID(ctx context.Context, targetChainID string, refreshCache bool) (string, error) {
	var result string
	var err error

	// A chain that isn't in the registry won't appear on a retry
	isTransient := retry.RetryIf(func(err error) bool {
		return !errors.Is(err, ErrNoChainFoundForChainID)
	})

	err = retry.Do(func() error {
		result, err = r.wrappedClient.ChainNameForChainID(ctx, targetChainID, refreshCache)
		r.logFailure(err, "chain_name_for_id")
		return err
	}, r.delay, r.attempts, isTransient, retry.Context(ctx))
	if err != nil {
		return "", unwrapRetryError(err)
	}

	return result, nil
}

func (r *retryableChainRegistryClient) ChainInfo(ctx context.Context, chainName string) (*ChainInfo, error) {
	var result *ChainInfo
	var err error

	err = retry.Do(func() error {
		result, err = r.wrappedClient.ChainInfo(ctx, chainName)
		r.logFailure(err, "chain_info")
		return err
	}, r.delay, r.attempts, retry.Context(ctx))
	if err != nil {
		return nil, unwrapRetryError(err)
	}

	return result, nil
}

func (r *retryableChainRegistryClient) logFailure(err error, method string) {
	if err != nil {
		r.logger.Error("failed call in registry client, will retry", "error", err.Error(), "method", method)
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
