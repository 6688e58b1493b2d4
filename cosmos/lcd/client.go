package lcd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tessellated-io/signet/cosmos/tx"
	"github.com/tessellated-io/signet/log"
)

// Client talks to the legacy REST API of a Cosmos SDK light client daemon (LCD).
type Client interface {
	tx.AccountQuerier
	tx.Broadcaster

	ChainID(ctx context.Context) (string, error)
}

// Default implementation
type lcdClient struct {
	apiURL        string
	broadcastMode BroadcastMode

	httpClient *http.Client
	log        *log.Logger
}

// Type assertion
var _ Client = (*lcdClient)(nil)

// NewClient makes a new LCD client. The broadcast mode is fixed for the lifetime of the client.
func NewClient(apiURL string, broadcastMode BroadcastMode, timeout time.Duration, log *log.Logger) (Client, error) {
	parsed, err := url.Parse(apiURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, apiURL)
	}

	if _, err := ParseBroadcastMode(string(broadcastMode)); err != nil {
		return nil, err
	}
	if broadcastMode == "" {
		broadcastMode = BroadcastModeBlock
	}

	return &lcdClient{
		apiURL:        strings.TrimSuffix(apiURL, "/"),
		broadcastMode: broadcastMode,

		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}, nil
}

// Client interface

func (c *lcdClient) Account(ctx context.Context, address string) (*tx.AccountRecord, error) {
	endpoint := fmt.Sprintf("%s/auth/accounts/%s", c.apiURL, url.PathEscape(address))

	status, body, err := c.makeRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, status, endpoint)
	}

	var response accountResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedResponse, err)
	}

	account := response.Result.Value.resolve()
	return &tx.AccountRecord{
		Address:       account.Address,
		AccountNumber: uint64(account.AccountNumber),
		Sequence:      uint64(account.Sequence),
	}, nil
}

func (c *lcdClient) BroadcastTx(ctx context.Context, envelope *tx.SignedEnvelope) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/txs", c.apiURL)

	payload, err := json.Marshal(broadcastRequest{
		Tx:   envelope,
		Mode: c.broadcastMode,
	})
	if err != nil {
		return nil, err
	}

	status, body, err := c.makeRequest(ctx, http.MethodPost, endpoint, payload)
	if err != nil {
		return nil, err
	}

	// Error replies from the LCD carry a JSON body explaining the rejection, which is a result
	// rather than a transport failure.
	if status != http.StatusOK && !isJSONObject(body) {
		return nil, fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, status, endpoint)
	}

	c.log.Debug("broadcast transaction", "mode", c.broadcastMode, "status_code", status)
	return body, nil
}

func (c *lcdClient) ChainID(ctx context.Context) (string, error) {
	endpoint := fmt.Sprintf("%s/node_info", c.apiURL)

	status, body, err := c.makeRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, status, endpoint)
	}

	var response nodeInfoResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("%w: %s", ErrMalformedResponse, err)
	}
	if response.NodeInfo.Network == "" {
		return "", ErrNoChainID
	}

	return response.NodeInfo.Network, nil
}

// Private helpers

func (c *lcdClient) makeRequest(ctx context.Context, method, endpoint string, payload []byte) (int, []byte, error) {
	c.log.Debug("making request to url", "method", method, "url", endpoint)

	var requestBody io.Reader
	if payload != nil {
		requestBody = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, endpoint, requestBody)
	if err != nil {
		return 0, nil, err
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(request)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Debug("received bad response from lcd", "response", string(data), "status_code", resp.StatusCode)
	}
	return resp.StatusCode, data, nil
}

func isJSONObject(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && trimmed[0] == '{' && json.Valid(trimmed)
}
