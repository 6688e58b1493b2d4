package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tessellated-io/signet/config"
	"github.com/tessellated-io/signet/cosmos/client"
	"github.com/tessellated-io/signet/cosmos/lcd"
	"github.com/tessellated-io/signet/cosmos/rpc"
	"github.com/tessellated-io/signet/cosmos/tx"
	"github.com/tessellated-io/signet/log"
	"github.com/tessellated-io/signet/wallet"
)

var ErrNoPassword = fmt.Errorf("no wallet password, pass --password or set $%s", passwordEnvVar)

// app wires configuration into clients for a single command invocation.
type app struct {
	settings *settings
	logger   *log.Logger
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return nil, err
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if networkFlag != "" {
		cfg.Network = networkFlag
	}
	if !log.IsValidLogLevel(cfg.LogLevel) {
		return nil, fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}
	logger := log.NewLogger(cfg.LogLevel)

	resolver, err := cfg.newResolver(logger)
	if err != nil {
		return nil, err
	}

	resolved, err := cfg.resolve(ctx, resolver)
	if err != nil {
		return nil, err
	}
	logger.Debug("resolved configuration", "chain_name", resolved.chain.ChainName, "chain_id", resolved.chain.ChainID, "lcd_url", resolved.chain.LcdUrl, "gas_price", resolved.gasPrice.String())

	return &app{
		settings: resolved,
		logger:   logger,
	}, nil
}

func (a *app) walletOptions() []wallet.Option {
	chain := a.settings.chain
	return []wallet.Option{
		wallet.WithPrefix(chain.AccountPrefix),
		wallet.WithHdPath(chain.HdPath()),
		wallet.WithAlgorithm(chain.Algorithm),
	}
}

func (a *app) loadWallet() (*wallet.Wallet, error) {
	walletPassword, err := readPassword()
	if err != nil {
		return nil, err
	}

	serialized, err := config.ReadFileContents(a.settings.walletFile)
	if err != nil {
		return nil, err
	}

	return wallet.Deserialize(string(serialized), walletPassword)
}

func (a *app) lcdClient() (lcd.Client, error) {
	if a.settings.chain.LcdUrl == "" {
		return nil, ErrNoLcdUrl
	}

	lcdLogger := a.logger.ApplyPrefix("[lcd]")
	lcdClient, err := lcd.NewClient(a.settings.chain.LcdUrl, a.settings.broadcastMode, a.settings.requestTimeout, lcdLogger)
	if err != nil {
		return nil, err
	}

	return lcd.NewRetryableClient(a.settings.retryAttempts, a.settings.retryDelay, lcdClient, lcdLogger)
}

func (a *app) queryClient() (rpc.QueryClient, error) {
	if a.settings.chain.GrpcUrl == "" {
		return nil, ErrNoGrpcUrl
	}

	rpcLogger := a.logger.ApplyPrefix("[grpc]")
	queryClient, err := rpc.NewGrpcQueryClient(a.settings.chain.GrpcUrl, rpcLogger)
	if err != nil {
		return nil, err
	}

	return rpc.NewRetryableQueryClient(a.settings.retryAttempts, a.settings.retryDelay, queryClient, rpcLogger)
}

func (a *app) signingClient() (*client.SigningClient, error) {
	w, err := a.loadWallet()
	if err != nil {
		return nil, err
	}

	lcdClient, err := a.lcdClient()
	if err != nil {
		return nil, err
	}

	signer, err := tx.NewOnlineSigner(w, lcdClient, lcdClient, a.logger.ApplyPrefix("[signer]"))
	if err != nil {
		return nil, err
	}

	return client.NewSigningClient(w.Address(), signer, lcdClient, a.settings.feeTable, a.settings.chain.ChainID, a.logger)
}

// addressArg returns the address given on the command line, or the wallet's address.
func (a *app) addressArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	w, err := a.loadWallet()
	if err != nil {
		return "", err
	}
	return w.Address(), nil
}

func readPassword() (string, error) {
	if password != "" {
		return password, nil
	}
	if fromEnv := os.Getenv(passwordEnvVar); fromEnv != "" {
		return fromEnv, nil
	}
	return "", ErrNoPassword
}

// runWithApp adapts an app aware handler to cobra.
func runWithApp(handler func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		return handler(ctx, a, cmd, args)
	}
}

// outcomeError turns a failed broadcast into a non-zero exit.
func outcomeError(outcome tx.BroadcastOutcome) error {
	if tx.IsSuccess(outcome) {
		return nil
	}
	return errors.New(outcome.String())
}
