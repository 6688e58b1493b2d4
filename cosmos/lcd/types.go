package lcd

import (
	"fmt"
	"strings"

	"github.com/tessellated-io/signet/coding"
)

// BroadcastMode defines at which point of transaction processing a broadcast returns.
type BroadcastMode string

const (
	// Return after the transaction is included in a block
	BroadcastModeBlock BroadcastMode = "block"
	// Return after CheckTx
	BroadcastModeSync BroadcastMode = "sync"
	// Return immediately
	BroadcastModeAsync BroadcastMode = "async"
)

func ParseBroadcastMode(input string) (BroadcastMode, error) {
	switch mode := BroadcastMode(strings.ToLower(strings.TrimSpace(input))); mode {
	case BroadcastModeBlock, BroadcastModeSync, BroadcastModeAsync:
		return mode, nil
	case "":
		return BroadcastModeBlock, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidBroadcastMode, input)
}

// accountResponse is the legacy `GET /auth/accounts/{address}` body.
type accountResponse struct {
	Result struct {
		Type  string       `json:"type"`
		Value accountValue `json:"value"`
	} `json:"result"`
}

// accountValue covers base accounts, and the nesting used by vesting and module accounts.
type accountValue struct {
	baseAccount

	BaseAccount        *baseAccount `json:"base_account"`
	BaseVestingAccount *struct {
		BaseAccount *baseAccount `json:"base_account"`
	} `json:"base_vesting_account"`
}

type baseAccount struct {
	Address       string            `json:"address"`
	AccountNumber coding.FlexUint64 `json:"account_number"`
	Sequence      coding.FlexUint64 `json:"sequence"`
}

func (av *accountValue) resolve() baseAccount {
	if av.Address != "" {
		return av.baseAccount
	}
	if av.BaseAccount != nil && av.BaseAccount.Address != "" {
		return *av.BaseAccount
	}
	if av.BaseVestingAccount != nil && av.BaseVestingAccount.BaseAccount != nil {
		return *av.BaseVestingAccount.BaseAccount
	}
	return baseAccount{}
}

// nodeInfoResponse is the legacy `GET /node_info` body.
type nodeInfoResponse struct {
	NodeInfo struct {
		Network string `json:"network"`
	} `json:"node_info"`
}

type broadcastRequest struct {
	Tx   any           `json:"tx"`
	Mode BroadcastMode `json:"mode"`
}
