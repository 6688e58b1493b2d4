package registry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/tessellated-io/signet/log"
)

/**
 * A chain registry client.
 *
 * This is made to be compatible with Planetarium (https://github.com/tessellated-io/planetarium), which is a hosted version
 * of the Chain Registry, although it should be compatible with other services by providing a custom base url.
 */

// Default implementation
type chainRegistryClient struct {
	// Guards the caches
	cacheLock sync.Mutex

	// Cache of all chain names
	chainNames []string

	// Cache of chain names to chain ID
	chainNameToChainID map[string]string

	// Base url of an API service
	chainRegistryBaseUrl string

	httpClient *http.Client
	log        *log.Logger
}

// Type assertion
var _ ChainRegistryClient = (*chainRegistryClient)(nil)

// NewChainRegistryClient makes a new default registry client.
func NewChainRegistryClient(log *log.Logger, chainRegistryBaseUrl string, timeout time.Duration) ChainRegistryClient {
	return &chainRegistryClient{
		chainNames:         []string{},
		chainNameToChainID: make(map[string]string),

		chainRegistryBaseUrl: strings.TrimSuffix(chainRegistryBaseUrl, "/"),

		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// ChainRegistryClient interface

func (rc *chainRegistryClient) ChainInfo(ctx context.Context, chainName string) (*ChainInfo, error) {
	url := fmt.Sprintf("%s/%s/chain.json", rc.chainRegistryBaseUrl, chainName)

	bytes, err := rc.makeRequest(ctx, url)
	if err != nil {
		return nil, err
	}

	chainInfo, err := parseChainResponse(bytes)
	if err != nil {
		return nil, err
	}

	// Add data to cache
	rc.cacheLock.Lock()
	rc.chainNameToChainID[chainName] = chainInfo.ChainID
	rc.cacheLock.Unlock()

	return chainInfo, nil
}

func (rc *chainRegistryClient) ChainNameForChainID(ctx context.Context, targetChainID string, refreshCache bool) (string, error) {
	rc.cacheLock.Lock()
	if refreshCache {
		rc.chainNames = []string{}
		rc.chainNameToChainID = make(map[string]string)
		rc.log.Debug("reset chain names and chain ids caches per client request")
	}
	chainNames := rc.chainNames
	rc.cacheLock.Unlock()

	// Fetch chain names if they are not cached, or if we requested a refetch from the cache
	if len(chainNames) == 0 {
		rc.log.Debug("no index of chain names, reloading from registry")

		var err error
		chainNames, err = rc.AllChainNames(ctx)
		if err != nil {
			return "", err
		}

		rc.cacheLock.Lock()
		rc.chainNames = chainNames
		rc.cacheLock.Unlock()
		rc.log.Debug("loaded chains from the registry", "num_chains", len(chainNames))
	}

	for chainIdx, chainName := range chainNames {
		logger := rc.log.With("chain_name", chainName)
		logger.Debug("processing chain", "chain_index", chainIdx)

		rc.cacheLock.Lock()
		chainID, isSet := rc.chainNameToChainID[chainName]
		rc.cacheLock.Unlock()

		if !isSet {
			logger.Debug("no chain data found in cache, requesting from registry")

			chainInfo, err := rc.ChainInfo(ctx, chainName)
			if err != nil {
				// Ditch if context has timed out, every remaining request would fail too
				if ctx.Err() != nil {
					return "", ctx.Err()
				}
				logger.Warn("error fetching chain information during chain id refresh, this chain will not be supported", "error", err.Error())
				continue
			}
			chainID = chainInfo.ChainID
		}

		if strings.EqualFold(targetChainID, chainID) {
			return chainName, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNoChainFoundForChainID, targetChainID)
}

func (rc *chainRegistryClient) AllChainNames(ctx context.Context) ([]string, error) {
	url := fmt.Sprintf("%s/all", rc.chainRegistryBaseUrl)
	bytes, err := rc.makeRequest(ctx, url)
	if err != nil {
		return nil, err
	}

	return parseAllChainsResponse(bytes)
}

// Private helpers

func (rc *chainRegistryClient) makeRequest(ctx context.Context, url string) ([]byte, error) {
	rc.log.Debug("making GET request to url", "url", url)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Accept", "application/json")

	resp, err := rc.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		rc.log.Debug("received bad response from chain registry", "response", string(data), "status_code", resp.StatusCode)
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	rc.log.Debug("received http 200 response from chain registry")
	return data, nil
}
