package tx

import (
	"context"
	"fmt"

	"github.com/tessellated-io/signet/log"
)

// AccountQuerier fetches raw account records from a ledger.
type AccountQuerier interface {
	Account(ctx context.Context, address string) (*AccountRecord, error)
}

// SequenceTracker fetches the signing state for an address. It never caches and never retries:
// a retried or cached sequence risks signing with a stale value.
type SequenceTracker struct {
	querier AccountQuerier
	logger  *log.Logger
}

func NewSequenceTracker(querier AccountQuerier, logger *log.Logger) *SequenceTracker {
	return &SequenceTracker{
		querier: querier,
		logger:  logger,
	}
}

// Fetch returns the current account number and sequence for address, or ErrAccountNotFound if the
// ledger has no record of it.
func (st *SequenceTracker) Fetch(ctx context.Context, address string) (*SequenceState, error) {
	record, err := st.querier.Account(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to query account %s: %w", address, err)
	}

	if record.IsEmpty() {
		st.logger.Debug("account not found on chain", "address", address)
		return nil, ErrAccountNotFound
	}

	st.logger.Debug("fetched sequence", "address", address, "account_number", record.AccountNumber, "sequence", record.Sequence)
	return &SequenceState{
		AccountNumber: record.AccountNumber,
		Sequence:      record.Sequence,
	}, nil
}
