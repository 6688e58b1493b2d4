package tx

import (
	"encoding/json"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/x/auth/migrations/legacytx"
)

// stdSignDoc mirrors the amino StdSignDoc, with integers rendered as strings the way amino does.
type stdSignDoc struct {
	AccountNumber string            `json:"account_number"`
	ChainID       string            `json:"chain_id"`
	Fee           json.RawMessage   `json:"fee"`
	Memo          string            `json:"memo"`
	Msgs          []json.RawMessage `json:"msgs"`
	Sequence      string            `json:"sequence"`
}

// BuildSignBytes renders the canonical bytes to sign. Keys are sorted at every level, so the
// output depends only on the inputs and never on field or map ordering. Messages keep their order.
func BuildSignBytes(msgs []legacytx.LegacyMsg, fee StdFee, chainID, memo string, accountNumber, sequence uint64) ([]byte, error) {
	renderedMsgs, err := renderMsgs(msgs)
	if err != nil {
		return nil, err
	}

	renderedFee, err := json.Marshal(fee)
	if err != nil {
		return nil, err
	}

	doc := stdSignDoc{
		AccountNumber: strconv.FormatUint(accountNumber, 10),
		ChainID:       chainID,
		Fee:           renderedFee,
		Memo:          memo,
		Msgs:          renderedMsgs,
		Sequence:      strconv.FormatUint(sequence, 10),
	}

	unsorted, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	return sdk.SortJSON(unsorted)
}

func renderMsgs(msgs []legacytx.LegacyMsg) ([]json.RawMessage, error) {
	rendered := make([]json.RawMessage, 0, len(msgs))
	for _, msg := range msgs {
		msgJSON, err := aminoJSON(msg)
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, msgJSON)
	}
	return rendered, nil
}
