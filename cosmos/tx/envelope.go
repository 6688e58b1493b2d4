package tx

import (
	"encoding/json"

	"github.com/cosmos/cosmos-sdk/x/auth/migrations/legacytx"

	"github.com/tessellated-io/signet/crypto"
)

// SignedEnvelope is a signed legacy StdTx, ready for broadcast. It is immutable once built.
type SignedEnvelope struct {
	msgs       []legacytx.LegacyMsg
	fee        StdFee
	memo       string
	signatures []crypto.StdSignature
}

func NewSignedEnvelope(msgs []legacytx.LegacyMsg, fee StdFee, memo string, signatures []crypto.StdSignature) *SignedEnvelope {
	ownedMsgs := make([]legacytx.LegacyMsg, len(msgs))
	copy(ownedMsgs, msgs)

	ownedSignatures := make([]crypto.StdSignature, len(signatures))
	copy(ownedSignatures, signatures)

	ownedFee := StdFee{
		Amount: append(fee.Amount[:0:0], fee.Amount...),
		Gas:    fee.Gas,
	}

	return &SignedEnvelope{
		msgs:       ownedMsgs,
		fee:        ownedFee,
		memo:       memo,
		signatures: ownedSignatures,
	}
}

func (se *SignedEnvelope) Msgs() []legacytx.LegacyMsg {
	msgs := make([]legacytx.LegacyMsg, len(se.msgs))
	copy(msgs, se.msgs)
	return msgs
}

func (se *SignedEnvelope) Fee() StdFee {
	return StdFee{
		Amount: append(se.fee.Amount[:0:0], se.fee.Amount...),
		Gas:    se.fee.Gas,
	}
}

func (se *SignedEnvelope) Memo() string {
	return se.memo
}

func (se *SignedEnvelope) Signatures() []crypto.StdSignature {
	signatures := make([]crypto.StdSignature, len(se.signatures))
	copy(signatures, se.signatures)
	return signatures
}

type stdTx struct {
	Msg        []json.RawMessage     `json:"msg"`
	Fee        StdFee                `json:"fee"`
	Signatures []crypto.StdSignature `json:"signatures"`
	Memo       string                `json:"memo"`
}

// MarshalJSON renders the envelope as a legacy amino StdTx value.
func (se *SignedEnvelope) MarshalJSON() ([]byte, error) {
	msgs, err := renderMsgs(se.msgs)
	if err != nil {
		return nil, err
	}

	return json.Marshal(stdTx{
		Msg:        msgs,
		Fee:        se.fee,
		Signatures: se.signatures,
		Memo:       se.memo,
	})
}
