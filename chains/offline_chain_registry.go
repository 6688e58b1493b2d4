package chains

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tessellated-io/signet/crypto"
)

const (
	cosmosDirectoryRest = "https://rest.cosmos.directory"
	ethereumCoinType    = 60
)

// Provides offline chain data so common networks work without configuring endpoints by hand.
type OfflineChainRegistry struct {
	ChainIDToData       map[string]*ChainData
	ChainNameToData     map[string]*ChainData
	AccountPrefixToData map[string]*ChainData
}

func NewOfflineChainRegistry() *OfflineChainRegistry {
	chainRegistry := &OfflineChainRegistry{
		ChainIDToData:       make(map[string]*ChainData),
		ChainNameToData:     make(map[string]*ChainData),
		AccountPrefixToData: make(map[string]*ChainData),
	}

	chainRegistry.addToRegistry("axelar", "axelar-dojo-1", "axelar", "uaxl", 6, "0.007uaxl", "axelar-validator.tessageo.net:9090")
	chainRegistry.addToRegistry("cosmoshub", "cosmoshub-4", "cosmos", "uatom", 6, "0.025uatom", "cosmos-validator.tessageo.net:9090")
	chainRegistry.addToRegistry("gravitybridge", "gravity-bridge-3", "gravity", "ugraviton", 6, "0.01ugraviton", "gravity-validator.tessageo.net:9090")
	chainRegistry.addToRegistry("juno", "juno-1", "juno", "ujuno", 6, "0.075ujuno", "juno-validator.tessageo.net:9090")
	chainRegistry.addToRegistry("mars", "mars-1", "mars", "umars", 6, "0.01umars", "mars-validator.tessageo.net:9090")
	chainRegistry.addToRegistry("neutron", "neutron-1", "neutron", "untrn", 6, "0.0053untrn", "neutron-validator.tessageo.net:9090")
	chainRegistry.addToRegistry("osmosis", "osmosis-1", "osmo", "uosmo", 6, "0.0025uosmo", "osmosis-validator.tessageo.net:9090")
	chainRegistry.addToRegistry("sommelier", "sommelier-3", "somm", "usomm", 6, "0.01usomm", "sommelier-validator.tessageo.net:9090")
	chainRegistry.addToRegistry("stride", "stride-1", "stride", "ustrd", 6, "0.0005ustrd", "stride-validator.tessageo.net:9090")

	// Ethermint chains sign with keccak and derive keys on the ethereum coin type
	evmos := chainRegistry.addToRegistry("evmos", "evmos_9001-2", "evmos", "aevmos", 18, "25000000000aevmos", "evmos-validator.tessageo.net:9090")
	evmos.CoinType = ethereumCoinType
	evmos.Algorithm = crypto.AlgoEthSecp256k1

	// Local wasmd devnet, as started by the standard wasmd docker scripts
	local := chainRegistry.addToRegistry("localwasmd", "testing", "wasm", "ucosm", 6, "0.025ucosm", "localhost:9090")
	local.LcdUrl = "http://localhost:1317"

	return chainRegistry
}

func (cr *OfflineChainRegistry) addToRegistry(
	chainName string,
	chainID string,
	accountPrefix string,
	nativeToken string,
	nativeTokenDecimals int,
	gasPrice string,
	grpcUrl string,
) *ChainData {
	chainData := &ChainData{
		ChainID:       chainID,
		ChainName:     chainName,
		AccountPrefix: accountPrefix,

		NativeToken:         nativeToken,
		NativeTokenDecimals: nativeTokenDecimals,
		GasPrice:            gasPrice,

		LcdUrl:  fmt.Sprintf("%s/%s", cosmosDirectoryRest, chainName),
		GrpcUrl: grpcUrl,

		CoinType:  DefaultCoinType,
		Algorithm: DefaultAlgorithm,
	}

	cr.ChainNameToData[chainName] = chainData
	cr.ChainIDToData[chainID] = chainData
	cr.AccountPrefixToData[accountPrefix] = chainData

	return chainData
}

// ChainByName looks up a preset by its chain registry name, ex. "cosmoshub".
func (cr *OfflineChainRegistry) ChainByName(chainName string) (*ChainData, error) {
	return lookup(cr.ChainNameToData, chainName)
}

// ChainByID looks up a preset by chain id, ex. "cosmoshub-4".
func (cr *OfflineChainRegistry) ChainByID(chainID string) (*ChainData, error) {
	return lookup(cr.ChainIDToData, chainID)
}

// ChainByPrefix looks up a preset by bech32 account prefix, ex. "osmo".
func (cr *OfflineChainRegistry) ChainByPrefix(accountPrefix string) (*ChainData, error) {
	return lookup(cr.AccountPrefixToData, accountPrefix)
}

// ChainNames returns every known chain name, sorted.
func (cr *OfflineChainRegistry) ChainNames() []string {
	names := make([]string, 0, len(cr.ChainNameToData))
	for name := range cr.ChainNameToData {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookup(index map[string]*ChainData, key string) (*ChainData, error) {
	chainData, found := index[strings.ToLower(strings.TrimSpace(key))]
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChain, key)
	}

	// Hand out copies so callers can't corrupt the registry
	copied := *chainData
	return &copied, nil
}
