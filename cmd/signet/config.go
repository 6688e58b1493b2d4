package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tessellated-io/signet/chains"
	"github.com/tessellated-io/signet/config"
	registry "github.com/tessellated-io/signet/cosmos/chain-registry"
	"github.com/tessellated-io/signet/cosmos/lcd"
	"github.com/tessellated-io/signet/cosmos/tx"
	"github.com/tessellated-io/signet/log"
)

const (
	defaultConfigDirectory = "~/.signet"
	defaultConfigFile      = defaultConfigDirectory + "/config.yml"
	configHeader           = "signet configuration"
)

var (
	ErrNoLcdUrl   = errors.New("no lcd url configured")
	ErrNoGrpcUrl  = errors.New("no grpc url configured")
	ErrNoPrefix   = errors.New("no account prefix configured")
	ErrNoGasPrice = errors.New("no gas price configured")
)

// Config is the on disk configuration. Any value left empty falls back to the network preset.
type Config struct {
	Network string `yaml:"network" comment:"A preset name or chain id (ex. cosmoshub, osmosis-1, localwasmd). Unknown networks are looked up in the chain registry"`

	LcdUrl  string `yaml:"lcd_url" comment:"REST endpoint used to query accounts and broadcast transactions"`
	GrpcUrl string `yaml:"grpc_url" comment:"gRPC endpoint used for balance and delegation queries"`

	ChainID string `yaml:"chain_id" comment:"Chain id to sign for. Fetched from the node if empty"`
	Prefix  string `yaml:"prefix" comment:"Bech32 account prefix"`

	GasPrice  string       `yaml:"gas_price" comment:"Price per unit of gas, ex. 0.025ucosm"`
	GasLimits tx.GasLimits `yaml:"gas_limits" comment:"Gas limit overrides per message kind. Zero uses the default"`

	BroadcastMode string `yaml:"broadcast_mode" comment:"One of block, sync or async"`

	RetryAttempts  uint   `yaml:"retry_attempts" comment:"How many times queries are attempted"`
	RetryDelay     string `yaml:"retry_delay" comment:"Delay between query attempts, ex. 1s"`
	RequestTimeout string `yaml:"request_timeout" comment:"Timeout for a single request, ex. 30s"`

	ChainRegistryUrl string `yaml:"chain_registry_url" comment:"Chain registry used for networks without a preset"`

	WalletFile string `yaml:"wallet_file" comment:"Path to the encrypted wallet"`
	LogLevel   string `yaml:"log_level" comment:"One of debug, info, warn or error"`
}

func defaultConfig() *Config {
	return &Config{
		Network:          "localwasmd",
		BroadcastMode:    string(lcd.BroadcastModeBlock),
		RetryAttempts:    3,
		RetryDelay:       "1s",
		RequestTimeout:   "30s",
		ChainRegistryUrl: registry.DefaultChainRegistryBaseUrl,
		WalletFile:       defaultConfigDirectory + "/wallet.json",
		LogLevel:         "info",
	}
}

// loadConfig reads the config file, or returns defaults if none exists.
func loadConfig(configFile string) (*Config, error) {
	cfg := defaultConfig()
	if !config.FileExists(configFile) {
		return cfg, nil
	}

	if err := config.LoadYaml(configFile, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configFile, err)
	}
	return cfg, nil
}

// settings are a resolved and validated Config.
type settings struct {
	chain chains.ChainData

	gasPrice      tx.GasPrice
	feeTable      tx.FeeTable
	broadcastMode lcd.BroadcastMode

	retryAttempts  uint
	retryDelay     time.Duration
	requestTimeout time.Duration

	walletFile string
}

func (c *Config) newResolver(logger *log.Logger) (*registry.NetworkResolver, error) {
	var online registry.ChainRegistryClient
	if c.ChainRegistryUrl != "" {
		timeout, err := parseDuration("request_timeout", c.RequestTimeout)
		if err != nil {
			return nil, err
		}
		delay, err := parseDuration("retry_delay", c.RetryDelay)
		if err != nil {
			return nil, err
		}

		registryLogger := logger.ApplyPrefix("[registry]")
		online, err = registry.NewRetryableChainRegistryClient(c.RetryAttempts, delay, registry.NewChainRegistryClient(registryLogger, c.ChainRegistryUrl, timeout), registryLogger)
		if err != nil {
			return nil, err
		}
	}

	return registry.NewNetworkResolver(chains.NewOfflineChainRegistry(), online, logger), nil
}

// resolve merges the network preset with explicit values. Explicit values always win.
func (c *Config) resolve(ctx context.Context, resolver *registry.NetworkResolver) (*settings, error) {
	chain := chains.ChainData{CoinType: chains.DefaultCoinType}
	if c.Network != "" {
		preset, err := resolver.Resolve(ctx, c.Network)
		if err != nil {
			return nil, fmt.Errorf("unable to resolve network %q: %w", c.Network, err)
		}
		chain = *preset
	}

	overrideIfSet(&chain.LcdUrl, c.LcdUrl)
	overrideIfSet(&chain.GrpcUrl, c.GrpcUrl)
	overrideIfSet(&chain.ChainID, c.ChainID)
	overrideIfSet(&chain.AccountPrefix, c.Prefix)
	overrideIfSet(&chain.GasPrice, c.GasPrice)
	if chain.Algorithm == "" {
		chain.Algorithm = chains.DefaultAlgorithm
	}

	if chain.AccountPrefix == "" {
		return nil, ErrNoPrefix
	}
	if chain.GasPrice == "" {
		return nil, ErrNoGasPrice
	}

	gasPrice, err := tx.ParseGasPrice(chain.GasPrice)
	if err != nil {
		return nil, err
	}

	broadcastMode, err := lcd.ParseBroadcastMode(c.BroadcastMode)
	if err != nil {
		return nil, err
	}

	retryDelay, err := parseDuration("retry_delay", c.RetryDelay)
	if err != nil {
		return nil, err
	}
	requestTimeout, err := parseDuration("request_timeout", c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	retryAttempts := c.RetryAttempts
	if retryAttempts == 0 {
		retryAttempts = 1
	}

	return &settings{
		chain: chain,

		gasPrice:      *gasPrice,
		feeTable:      tx.BuildFeeTable(*gasPrice, tx.DefaultGasLimits(), c.GasLimits),
		broadcastMode: broadcastMode,

		retryAttempts:  retryAttempts,
		retryDelay:     retryDelay,
		requestTimeout: requestTimeout,

		walletFile: c.WalletFile,
	}, nil
}

func overrideIfSet(target *string, value string) {
	if strings.TrimSpace(value) != "" {
		*target = strings.TrimSpace(value)
	}
}

func parseDuration(name, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	return duration, nil
}
