package lcd_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/x/auth/migrations/legacytx"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessellated-io/signet/cosmos/lcd"
	"github.com/tessellated-io/signet/cosmos/tx"
	"github.com/tessellated-io/signet/crypto"
	"github.com/tessellated-io/signet/log"
)

const address = "cosmos1pkptre7fdkl6gfrzlesjjvhxhlc3r4gmmk8rs6"

func newClient(t *testing.T, server *httptest.Server, mode lcd.BroadcastMode) lcd.Client {
	t.Helper()

	client, err := lcd.NewClient(server.URL+"/", mode, 5*time.Second, log.Discard())
	require.NoError(t, err)
	return client
}

func testEnvelope() *tx.SignedEnvelope {
	msg := &banktypes.MsgSend{
		FromAddress: address,
		ToAddress:   "cosmos1jhg0e7s6gn44tfc5k37kr04sznyhedtc9rzys5",
		Amount:      sdk.NewCoins(sdk.NewInt64Coin("ucosm", 1)),
	}
	signature := crypto.StdSignature{
		PubKey:    crypto.AminoPubKey{Type: crypto.PubKeyTypeSecp256k1, Value: "A08EGB7ro1ORuFhjOnZcSgwYlpe0DSFjVNUIkNNQxwKQ"},
		Signature: "AQID",
	}
	return tx.NewSignedEnvelope([]legacytx.LegacyMsg{msg}, *tx.NewStdFee(80000), "", []crypto.StdSignature{signature})
}

func TestAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/auth/accounts/"+address, r.URL.Path)

		_, _ = w.Write([]byte(`{"height":"55","result":{"type":"cosmos-sdk/Account","value":{"address":"` + address + `","coins":[],"public_key":"","account_number":"4","sequence":"17"}}}`))
	}))
	defer server.Close()

	record, err := newClient(t, server, lcd.BroadcastModeBlock).Account(context.Background(), address)
	require.NoError(t, err)
	assert.Equal(t, &tx.AccountRecord{Address: address, AccountNumber: 4, Sequence: 17}, record)
}

func TestAccount_NumericFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":{"value":{"address":"` + address + `","account_number":4,"sequence":17}}}`))
	}))
	defer server.Close()

	record, err := newClient(t, server, lcd.BroadcastModeBlock).Account(context.Background(), address)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), record.AccountNumber)
	assert.Equal(t, uint64(17), record.Sequence)
}

func TestAccount_VestingAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":{"type":"cosmos-sdk/ContinuousVestingAccount","value":{"base_vesting_account":{"base_account":{"address":"` + address + `","account_number":"9","sequence":"2"}}}}}`))
	}))
	defer server.Close()

	record, err := newClient(t, server, lcd.BroadcastModeBlock).Account(context.Background(), address)
	require.NoError(t, err)
	assert.Equal(t, &tx.AccountRecord{Address: address, AccountNumber: 9, Sequence: 2}, record)
}

func TestAccount_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"height":"0","result":{"type":"cosmos-sdk/Account","value":{"address":"","coins":[],"public_key":"","account_number":"0","sequence":"0"}}}`))
	}))
	defer server.Close()

	client := newClient(t, server, lcd.BroadcastModeBlock)
	record, err := client.Account(context.Background(), address)
	require.NoError(t, err)
	assert.True(t, record.IsEmpty())

	// And the tracker turns that into a distinct error
	_, err = tx.NewSequenceTracker(client, log.Discard()).Fetch(context.Background(), address)
	require.ErrorIs(t, err, tx.ErrAccountNotFound)
}

func TestAccount_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newClient(t, server, lcd.BroadcastModeBlock).Account(context.Background(), address)
	require.ErrorIs(t, err, lcd.ErrUnexpectedStatus)
}

func TestAccount_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer server.Close()

	_, err := newClient(t, server, lcd.BroadcastModeBlock).Account(context.Background(), address)
	require.ErrorIs(t, err, lcd.ErrMalformedResponse)
}

func TestBroadcastTx(t *testing.T) {
	for _, mode := range []lcd.BroadcastMode{lcd.BroadcastModeBlock, lcd.BroadcastModeSync, lcd.BroadcastModeAsync} {
		var received map[string]json.RawMessage
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/txs", r.URL.Path)

			body, err := io.ReadAll(r.Body)
			assert.NoError(t, err)
			assert.NoError(t, json.Unmarshal(body, &received))

			_, _ = w.Write([]byte(`{"height":"1","txhash":"AABB"}`))
		}))

		response, err := newClient(t, server, mode).BroadcastTx(context.Background(), testEnvelope())
		require.NoError(t, err)
		assert.JSONEq(t, `{"height":"1","txhash":"AABB"}`, string(response))

		assert.JSONEq(t, `"`+string(mode)+`"`, string(received["mode"]))
		var stdTx map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(received["tx"], &stdTx))
		assert.Contains(t, stdTx, "msg")
		assert.Contains(t, stdTx, "fee")
		assert.Contains(t, stdTx, "signatures")
		assert.Contains(t, stdTx, "memo")

		server.Close()
	}
}

func TestBroadcastTx_ErrorBodyIsAResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"signature verification failed"}`))
	}))
	defer server.Close()

	response, err := newClient(t, server, lcd.BroadcastModeSync).BroadcastTx(context.Background(), testEnvelope())
	require.NoError(t, err)

	outcome, err := tx.Classify(response)
	require.NoError(t, err)
	assert.Equal(t, &tx.SubmissionFailure{Reason: "signature verification failed"}, outcome)
}

func TestBroadcastTx_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`bad gateway`))
	}))
	defer server.Close()

	_, err := newClient(t, server, lcd.BroadcastModeSync).BroadcastTx(context.Background(), testEnvelope())
	require.ErrorIs(t, err, lcd.ErrUnexpectedStatus)
}

func TestBroadcastTx_ContextCancelled(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"txhash":"AABB"}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newClient(t, server, lcd.BroadcastModeSync).BroadcastTx(ctx, testEnvelope())
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), calls.Load())
}

func TestChainID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/node_info", r.URL.Path)
		_, _ = w.Write([]byte(`{"node_info":{"protocol_version":{"p2p":"7"},"network":"testing","version":"0.33.8"},"application_version":{"name":"wasm"}}`))
	}))
	defer server.Close()

	chainID, err := newClient(t, server, lcd.BroadcastModeBlock).ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "testing", chainID)
}

func TestChainID_Missing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"node_info":{}}`))
	}))
	defer server.Close()

	_, err := newClient(t, server, lcd.BroadcastModeBlock).ChainID(context.Background())
	require.ErrorIs(t, err, lcd.ErrNoChainID)
}

func TestNewClient_Validation(t *testing.T) {
	_, err := lcd.NewClient("localhost:1317", lcd.BroadcastModeBlock, time.Second, log.Discard())
	require.ErrorIs(t, err, lcd.ErrInvalidURL)

	_, err = lcd.NewClient("http://localhost:1317", lcd.BroadcastMode("eventually"), time.Second, log.Discard())
	require.ErrorIs(t, err, lcd.ErrInvalidBroadcastMode)

	_, err = lcd.NewClient("http://localhost:1317", "", time.Second, log.Discard())
	require.NoError(t, err)
}

func TestParseBroadcastMode(t *testing.T) {
	mode, err := lcd.ParseBroadcastMode("SYNC")
	require.NoError(t, err)
	assert.Equal(t, lcd.BroadcastModeSync, mode)

	mode, err = lcd.ParseBroadcastMode("")
	require.NoError(t, err)
	assert.Equal(t, lcd.BroadcastModeBlock, mode)

	_, err = lcd.ParseBroadcastMode("commit")
	require.ErrorIs(t, err, lcd.ErrInvalidBroadcastMode)
}
