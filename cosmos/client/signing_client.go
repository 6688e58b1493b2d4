package client

import (
	"context"
	"fmt"
	"sync"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	"github.com/cosmos/cosmos-sdk/x/auth/migrations/legacytx"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"

	"github.com/tessellated-io/signet/cosmos/tx"
	"github.com/tessellated-io/signet/log"
)

// ChainIDProvider resolves the chain id of the node being talked to.
type ChainIDProvider interface {
	ChainID(ctx context.Context) (string, error)
}

// SigningClient sends common transactions from a single sender, paying fees from a fee table.
type SigningClient struct {
	sender   string
	signer   tx.OnlineSigner
	feeTable tx.FeeTable
	logger   *log.Logger

	chainIDProvider ChainIDProvider
	chainIDLock     sync.Mutex
	chainID         string
}

// NewSigningClient creates a client for sender, which must be held by the signer. If chainID is
// empty it is fetched from the provider on first use and cached.
func NewSigningClient(
	sender string,
	signer tx.OnlineSigner,
	chainIDProvider ChainIDProvider,
	feeTable tx.FeeTable,
	chainID string,
	logger *log.Logger,
) (*SigningClient, error) {
	found := false
	for _, account := range signer.GetAccounts() {
		if account.Address == sender {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSender, sender)
	}

	if chainID == "" && chainIDProvider == nil {
		return nil, ErrNoChainID
	}

	return &SigningClient{
		sender:   sender,
		signer:   signer,
		feeTable: feeTable,
		logger:   logger.ApplyPrefix("[client]").With("sender", sender),

		chainIDProvider: chainIDProvider,
		chainID:         chainID,
	}, nil
}

func (sc *SigningClient) Address() string {
	return sc.sender
}

// ChainID returns the configured chain id, or fetches and caches it.
func (sc *SigningClient) ChainID(ctx context.Context) (string, error) {
	sc.chainIDLock.Lock()
	defer sc.chainIDLock.Unlock()

	if sc.chainID != "" {
		return sc.chainID, nil
	}

	chainID, err := sc.chainIDProvider.ChainID(ctx)
	if err != nil {
		return "", err
	}
	if chainID == "" {
		return "", ErrNoChainID
	}

	sc.logger.Debug("resolved chain id", "chain_id", chainID)
	sc.chainID = chainID
	return chainID, nil
}

func (sc *SigningClient) GetSequence(ctx context.Context) (*tx.SequenceState, error) {
	return sc.signer.GetSequence(ctx, sc.sender)
}

// SendTokens sends coins to a recipient, paying the send fee.
func (sc *SigningClient) SendTokens(ctx context.Context, recipient string, amount sdk.Coins, memo string) (tx.BroadcastOutcome, error) {
	if err := validateAddress(recipient); err != nil {
		return nil, err
	}
	if !amount.IsValid() || amount.IsZero() {
		return nil, fmt.Errorf("%w: %s", ErrEmptyAmount, amount)
	}

	msg := &banktypes.MsgSend{
		FromAddress: sc.sender,
		ToAddress:   recipient,
		Amount:      amount,
	}

	return sc.sendMsg(ctx, tx.MsgKindSend, msg, memo)
}

// Delegate bonds coins to a validator, paying the delegate fee.
func (sc *SigningClient) Delegate(ctx context.Context, validator string, amount sdk.Coin, memo string) (tx.BroadcastOutcome, error) {
	if err := validateStake(validator, amount); err != nil {
		return nil, err
	}

	msg := &stakingtypes.MsgDelegate{
		DelegatorAddress: sc.sender,
		ValidatorAddress: validator,
		Amount:           amount,
	}

	return sc.sendMsg(ctx, tx.MsgKindDelegate, msg, memo)
}

// Undelegate unbonds coins from a validator, paying the undelegate fee.
func (sc *SigningClient) Undelegate(ctx context.Context, validator string, amount sdk.Coin, memo string) (tx.BroadcastOutcome, error) {
	if err := validateStake(validator, amount); err != nil {
		return nil, err
	}

	msg := &stakingtypes.MsgUndelegate{
		DelegatorAddress: sc.sender,
		ValidatorAddress: validator,
		Amount:           amount,
	}

	return sc.sendMsg(ctx, tx.MsgKindUndelegate, msg, memo)
}

// SignAndBroadcast signs arbitrary messages with an explicit fee.
func (sc *SigningClient) SignAndBroadcast(ctx context.Context, msgs []legacytx.LegacyMsg, fee *tx.StdFee, memo string) (tx.BroadcastOutcome, error) {
	chainID, err := sc.ChainID(ctx)
	if err != nil {
		return nil, err
	}

	return sc.signer.SignAndBroadcast(ctx, sc.sender, tx.SignRequest{
		Msgs:    msgs,
		ChainID: chainID,
		Memo:    memo,
		Fee:     fee,
	})
}

func (sc *SigningClient) sendMsg(ctx context.Context, kind tx.MsgKind, msg legacytx.LegacyMsg, memo string) (tx.BroadcastOutcome, error) {
	fee, err := sc.feeTable.FeeFor(kind)
	if err != nil {
		return nil, err
	}

	return sc.SignAndBroadcast(ctx, []legacytx.LegacyMsg{msg}, fee, memo)
}

func validateStake(validator string, amount sdk.Coin) error {
	if err := validateAddress(validator); err != nil {
		return err
	}
	if !amount.IsValid() || !amount.IsPositive() {
		return fmt.Errorf("%w: %s", ErrEmptyAmount, amount)
	}
	return nil
}

func validateAddress(address string) error {
	if _, _, err := bech32.DecodeAndConvert(address); err != nil {
		return fmt.Errorf("%w: %q: %s", ErrInvalidAddress, address, err)
	}
	return nil
}
