package registry

import "context"

// DefaultChainRegistryBaseUrl is a hosted chain registry serving <name>/chain.json and /all.
const DefaultChainRegistryBaseUrl = "https://planetarium.tessellated.io/v1/chains"

type ChainRegistryClient interface {
	AllChainNames(ctx context.Context) ([]string, error)
	ChainNameForChainID(ctx context.Context, targetChainID string, refreshCache bool) (string, error)
	ChainInfo(ctx context.Context, chainName string) (*ChainInfo, error)
}
