package tx

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// AccountRecord is an account as reported by the ledger. An empty Address means the ledger has no
// record of the account.
type AccountRecord struct {
	Address       string
	AccountNumber uint64
	Sequence      uint64
}

func (ar *AccountRecord) IsEmpty() bool {
	return ar == nil || ar.Address == ""
}

// SequenceState is the signing state for an account at query time. It is never cached.
type SequenceState struct {
	AccountNumber uint64
	Sequence      uint64
}

// StdFee is the legacy amino fee. Amount may be empty, Gas must be positive.
type StdFee struct {
	Amount sdk.Coins `json:"amount"`
	Gas    uint64    `json:"gas,string"`
}

func NewStdFee(gas uint64, amount ...sdk.Coin) *StdFee {
	return &StdFee{
		Amount: sdk.NewCoins(amount...),
		Gas:    gas,
	}
}
