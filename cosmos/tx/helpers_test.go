package tx_test

import (
	"context"
	"encoding/json"
	"sync"

	sdk "github.com/cosmos/cosmos-sdk/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"

	"github.com/tessellated-io/signet/cosmos/tx"
	"github.com/tessellated-io/signet/crypto"
	"github.com/tessellated-io/signet/wallet"
)

const (
	faucetMnemonic = "economy stock theory fatal elder harbor betray wasp final emotion task crumble siren bottom lizard educate guess current outdoor pair theory focus wife stone"
	faucetAddress  = "cosmos1pkptre7fdkl6gfrzlesjjvhxhlc3r4gmmk8rs6"
	otherAddress   = "cosmos1jhg0e7s6gn44tfc5k37kr04sznyhedtc9rzys5"

	successResponse = `{"height":"12","txhash":"0A1B2C3D","raw_log":"[]","logs":[{"msg_index":0,"log":"","events":[{"type":"message","attributes":[{"key":"action","value":"send"}]}]}]}`
)

func sendMsg(amount int64) *banktypes.MsgSend {
	return &banktypes.MsgSend{
		FromAddress: faucetAddress,
		ToAddress:   otherAddress,
		Amount:      sdk.NewCoins(sdk.NewInt64Coin("ucosm", amount)),
	}
}

// panickingMsg blows up when rendered, like a message with an unregistered amino type.
type panickingMsg struct {
	*banktypes.MsgSend
}

func (panickingMsg) GetSignBytes() []byte {
	panic("unregistered concrete type")
}

// fakeQuerier serves a single account. Every broadcast through fakeBroadcaster bumps the sequence.
type fakeQuerier struct {
	mu sync.Mutex

	record *tx.AccountRecord
	err    error
	calls  int

	onQuery func()
}

func (fq *fakeQuerier) Account(ctx context.Context, address string) (*tx.AccountRecord, error) {
	fq.mu.Lock()
	defer fq.mu.Unlock()

	fq.calls++
	if fq.onQuery != nil {
		fq.onQuery()
	}
	if fq.err != nil {
		return nil, fq.err
	}
	if fq.record == nil || fq.record.Address != address {
		return &tx.AccountRecord{}, nil
	}

	record := *fq.record
	return &record, nil
}

func (fq *fakeQuerier) bumpSequence() {
	fq.mu.Lock()
	defer fq.mu.Unlock()

	fq.record.Sequence++
}

type fakeBroadcaster struct {
	querier  *fakeQuerier
	response string
	err      error

	envelopes [][]byte
}

func (fb *fakeBroadcaster) BroadcastTx(ctx context.Context, envelope *tx.SignedEnvelope) ([]byte, error) {
	if fb.err != nil {
		return nil, fb.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(envelope)
	if err != nil {
		return nil, err
	}
	fb.envelopes = append(fb.envelopes, encoded)

	if fb.querier != nil {
		fb.querier.bumpSequence()
	}
	return []byte(fb.response), nil
}

// recordingSigner wraps a wallet and keeps every payload it was asked to sign.
type recordingSigner struct {
	wallet *wallet.Wallet

	signed [][]byte
}

func newRecordingSigner() *recordingSigner {
	w, err := wallet.FromMnemonic(faucetMnemonic)
	if err != nil {
		panic(err)
	}
	return &recordingSigner{wallet: w}
}

func (rs *recordingSigner) GetAccounts() []crypto.AccountData {
	return rs.wallet.GetAccounts()
}

func (rs *recordingSigner) Sign(address string, signBytes []byte) (*crypto.StdSignature, error) {
	rs.signed = append(rs.signed, signBytes)
	return rs.wallet.Sign(address, signBytes)
}
