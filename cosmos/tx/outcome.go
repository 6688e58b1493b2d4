package tx

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BroadcastOutcome is one of *SubmissionFailure, *ExecutionFailure or *Success.
type BroadcastOutcome interface {
	isBroadcastOutcome()
	String() string
}

// SubmissionFailure means the ledger refused the transaction before evaluating it.
type SubmissionFailure struct {
	Reason string
}

// ExecutionFailure means the transaction was evaluated and rejected by the ledger. This is a
// normal outcome, not an error.
type ExecutionFailure struct {
	Code            uint32
	Codespace       string
	RawLog          string
	Height          int64
	TransactionHash string
}

// Success means the transaction was accepted. Data is nil when the ledger returned none.
type Success struct {
	Logs            sdk.ABCIMessageLogs
	RawLog          string
	TransactionHash string
	Data            []byte
}

func (*SubmissionFailure) isBroadcastOutcome() {}
func (*ExecutionFailure) isBroadcastOutcome()  {}
func (*Success) isBroadcastOutcome()           {}

func (sf *SubmissionFailure) String() string {
	return fmt.Sprintf("submission failure: %s", sf.Reason)
}

func (ef *ExecutionFailure) String() string {
	return fmt.Sprintf("execution failure [tx_hash=%s, height=%d, codespace=%s, code=%d]: %s", ef.TransactionHash, ef.Height, ef.Codespace, ef.Code, ef.RawLog)
}

func (s *Success) String() string {
	return fmt.Sprintf("success [tx_hash=%s]", s.TransactionHash)
}

// IsGasRelated reports whether the failure was caused by too little gas or too low a fee.
func (ef *ExecutionFailure) IsGasRelated() bool {
	return IsGasRelatedError(ef.Codespace, ef.Code)
}

// IsSuccess reports whether an outcome is a *Success.
func IsSuccess(outcome BroadcastOutcome) bool {
	_, ok := outcome.(*Success)
	return ok
}
