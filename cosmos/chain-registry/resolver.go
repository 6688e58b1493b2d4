package registry

import (
	"context"
	"errors"

	"github.com/tessellated-io/signet/chains"
	"github.com/tessellated-io/signet/log"
)

// NetworkResolver finds chain data for a network name, preferring offline presets over the registry.
type NetworkResolver struct {
	offline *chains.OfflineChainRegistry
	online  ChainRegistryClient
	log     *log.Logger
}

// NewNetworkResolver makes a resolver. online may be nil to only use presets.
func NewNetworkResolver(offline *chains.OfflineChainRegistry, online ChainRegistryClient, log *log.Logger) *NetworkResolver {
	return &NetworkResolver{
		offline: offline,
		online:  online,
		log:     log,
	}
}

// Resolve looks a network up by chain name, then by chain id.
func (nr *NetworkResolver) Resolve(ctx context.Context, network string) (*chains.ChainData, error) {
	if chainData, err := nr.offline.ChainByName(network); err == nil {
		return chainData, nil
	}
	if chainData, err := nr.offline.ChainByID(network); err == nil {
		return chainData, nil
	}

	if nr.online == nil {
		return nil, chains.ErrUnknownChain
	}
	nr.log.Info("no preset for network, querying chain registry", "network", network)

	chainInfo, err := nr.online.ChainInfo(ctx, network)
	if err != nil {
		// Maybe the network is a chain id
		chainName, lookupErr := nr.online.ChainNameForChainID(ctx, network, false)
		if lookupErr != nil {
			return nil, errors.Join(err, lookupErr)
		}

		chainInfo, err = nr.online.ChainInfo(ctx, chainName)
		if err != nil {
			return nil, err
		}
	}

	return chainInfo.ToChainData()
}
