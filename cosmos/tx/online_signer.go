package tx

import (
	"context"

	"github.com/cosmos/cosmos-sdk/x/auth/migrations/legacytx"

	"github.com/tessellated-io/signet/coding"
	"github.com/tessellated-io/signet/crypto"
	"github.com/tessellated-io/signet/log"
)

// OfflineSigner holds keys and signs bytes without any network access.
type OfflineSigner interface {
	GetAccounts() []crypto.AccountData
	Sign(address string, signBytes []byte) (*crypto.StdSignature, error)
}

// Broadcaster submits an envelope and returns the raw response body. Transport failures are errors,
// a response from the ledger is never an error, even if it reports a failure.
type Broadcaster interface {
	BroadcastTx(ctx context.Context, envelope *SignedEnvelope) ([]byte, error)
}

// SignRequest is everything needed to sign, except the account's sequencing state.
type SignRequest struct {
	Msgs    []legacytx.LegacyMsg
	ChainID string
	Memo    string
	Fee     *StdFee
}

// OnlineSigner signs and broadcasts transactions for accounts held by an OfflineSigner.
//
// Calls for the same address must be serialized by the caller. Each call fetches a fresh sequence,
// so concurrent calls race on it.
type OnlineSigner interface {
	GetAccounts() []crypto.AccountData
	GetSequence(ctx context.Context, address string) (*SequenceState, error)
	SignAndBroadcast(ctx context.Context, address string, request SignRequest) (BroadcastOutcome, error)
}

type onlineSigner struct {
	signer      OfflineSigner
	tracker     *SequenceTracker
	broadcaster Broadcaster
	logger      *log.Logger
}

var _ OnlineSigner = (*onlineSigner)(nil)

func NewOnlineSigner(signer OfflineSigner, querier AccountQuerier, broadcaster Broadcaster, logger *log.Logger) (OnlineSigner, error) {
	return &onlineSigner{
		signer:      signer,
		tracker:     NewSequenceTracker(querier, logger),
		broadcaster: broadcaster,
		logger:      logger,
	}, nil
}

func (ols *onlineSigner) GetAccounts() []crypto.AccountData {
	return ols.signer.GetAccounts()
}

func (ols *onlineSigner) GetSequence(ctx context.Context, address string) (*SequenceState, error) {
	return ols.tracker.Fetch(ctx, address)
}

func (ols *onlineSigner) SignAndBroadcast(ctx context.Context, address string, request SignRequest) (BroadcastOutcome, error) {
	logger := ols.logger.With("address", address, "chain_id", request.ChainID)

	// 1. Validate
	if err := validateRequest(request); err != nil {
		return nil, err
	}

	// 2. Fetch sequence
	sequenceState, err := ols.tracker.Fetch(ctx, address)
	if err != nil {
		return nil, err
	}

	// Ditch if context has timed out
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// 3. Build sign bytes
	signBytes, err := BuildSignBytes(request.Msgs, *request.Fee, request.ChainID, request.Memo, sequenceState.AccountNumber, sequenceState.Sequence)
	if err != nil {
		return nil, err
	}
	logger.Debug("built sign bytes", "sequence", sequenceState.Sequence, "sign_bytes", coding.PayloadFingerprint(signBytes))

	// 4. Sign
	signature, err := ols.signer.Sign(address, signBytes)
	if err != nil {
		return nil, err
	}

	// 5. Assemble
	envelope := NewSignedEnvelope(request.Msgs, *request.Fee, request.Memo, []crypto.StdSignature{*signature})

	// 6. Submit
	rawResponse, err := ols.broadcaster.BroadcastTx(ctx, envelope)
	if err != nil {
		logger.Error("failed to broadcast transaction", "error", err.Error())
		return nil, err
	}

	// 7. Classify
	outcome, err := Classify(rawResponse)
	if err != nil {
		logger.Error("unable to classify broadcast response", "error", err.Error())
		return nil, err
	}

	logOutcome(logger, outcome)
	return outcome, nil
}

func validateRequest(request SignRequest) error {
	if request.Fee == nil {
		return ErrMissingFee
	}
	if request.Fee.Gas == 0 {
		return ErrInvalidFee
	}
	if len(request.Msgs) == 0 {
		return ErrNoMessages
	}
	if request.ChainID == "" {
		return ErrMissingChainID
	}
	return nil
}

func logOutcome(logger *log.Logger, outcome BroadcastOutcome) {
	switch o := outcome.(type) {
	case *Success:
		logger.Info("📣 transaction broadcast successfully", "tx_hash", o.TransactionHash)
	case *ExecutionFailure:
		logger.Warn("transaction failed on chain", "tx_hash", o.TransactionHash, "code", o.Code, "codespace", o.Codespace, "raw_log", o.RawLog)
	case *SubmissionFailure:
		logger.Warn("transaction was not accepted for broadcast", "reason", o.Reason)
	}
}
