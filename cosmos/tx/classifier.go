package tx

import (
	"bytes"
	"encoding/json"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tessellated-io/signet/coding"
)

// broadcastResponse covers every field any known response shape uses. Pointers distinguish
// absent fields from zero values.
type broadcastResponse struct {
	Height    coding.FlexUint64 `json:"height"`
	TxHash    *string           `json:"txhash"`
	Code      *uint32           `json:"code"`
	Codespace string            `json:"codespace"`
	RawLog    string            `json:"raw_log"`
	Logs      json.RawMessage   `json:"logs"`
	Data      string            `json:"data"`
	Error     string            `json:"error"`
}

// Classify interprets a raw broadcast response.
//
// The shape of the response, not an explicit discriminant, determines the outcome:
//   - an `error` without a `txhash` is a SubmissionFailure
//   - a non-zero `code` is an ExecutionFailure
//   - otherwise the response is a Success
//
// A zero `code`, or anything that does not look like a response at all, fails with
// ErrUnknownResponseShape rather than being guessed at.
func Classify(raw []byte) (BroadcastOutcome, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: not a JSON object", ErrUnknownResponseShape)
	}

	var response broadcastResponse
	if err := json.Unmarshal(trimmed, &response); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownResponseShape, err)
	}

	txHash := ""
	if response.TxHash != nil {
		txHash = *response.TxHash
	}

	if response.Error != "" && txHash == "" {
		return &SubmissionFailure{Reason: response.Error}, nil
	}

	if !coding.IsUpperHexDigest(txHash) {
		return nil, fmt.Errorf("%w: %q", ErrMalformedTxHash, txHash)
	}

	if response.Code != nil {
		if *response.Code == 0 {
			return nil, fmt.Errorf("%w: code field present with value 0", ErrUnknownResponseShape)
		}

		return &ExecutionFailure{
			Code:            *response.Code,
			Codespace:       response.Codespace,
			RawLog:          response.RawLog,
			Height:          int64(response.Height),
			TransactionHash: txHash,
		}, nil
	}

	logs, err := parseLogs(response.Logs)
	if err != nil {
		return nil, err
	}

	var data []byte
	if response.Data != "" {
		data, err = coding.DecodeHex(response.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedData, err)
		}
	}

	return &Success{
		Logs:            logs,
		RawLog:          response.RawLog,
		TransactionHash: txHash,
		Data:            data,
	}, nil
}

func parseLogs(raw json.RawMessage) (sdk.ABCIMessageLogs, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return sdk.ABCIMessageLogs{}, nil
	}

	var logs sdk.ABCIMessageLogs
	if err := json.Unmarshal(raw, &logs); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedLogs, err)
	}
	if logs == nil {
		logs = sdk.ABCIMessageLogs{}
	}
	return logs, nil
}
