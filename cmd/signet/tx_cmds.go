package main

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/tessellated-io/signet/cosmos/tx"
)

var memo string

var sendCmd = &cobra.Command{
	Use:   "send <recipient> <amount>",
	Short: "Send tokens from the wallet, ex. send cosmos1... 1000uatom,5uosmo",
	Args:  cobra.ExactArgs(2),
	RunE: runWithApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		amount, err := sdk.ParseCoinsNormalized(args[1])
		if err != nil {
			return err
		}

		signingClient, err := a.signingClient()
		if err != nil {
			return err
		}

		outcome, err := signingClient.SendTokens(ctx, args[0], amount, memo)
		if err != nil {
			return err
		}
		return printOutcome(cmd, outcome)
	}),
}

var delegateCmd = &cobra.Command{
	Use:   "delegate <validator> <amount>",
	Short: "Delegate tokens from the wallet to a validator",
	Args:  cobra.ExactArgs(2),
	RunE: runWithApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		amount, err := sdk.ParseCoinNormalized(args[1])
		if err != nil {
			return err
		}

		signingClient, err := a.signingClient()
		if err != nil {
			return err
		}

		outcome, err := signingClient.Delegate(ctx, args[0], amount, memo)
		if err != nil {
			return err
		}
		return printOutcome(cmd, outcome)
	}),
}

var undelegateCmd = &cobra.Command{
	Use:   "undelegate <validator> <amount>",
	Short: "Undelegate the wallet's tokens from a validator",
	Args:  cobra.ExactArgs(2),
	RunE: runWithApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		amount, err := sdk.ParseCoinNormalized(args[1])
		if err != nil {
			return err
		}

		signingClient, err := a.signingClient()
		if err != nil {
			return err
		}

		outcome, err := signingClient.Undelegate(ctx, args[0], amount, memo)
		if err != nil {
			return err
		}
		return printOutcome(cmd, outcome)
	}),
}

func init() {
	for _, cmd := range []*cobra.Command{sendCmd, delegateCmd, undelegateCmd} {
		cmd.Flags().StringVar(&memo, "memo", "", "transaction memo")
	}
}

func printOutcome(cmd *cobra.Command, outcome tx.BroadcastOutcome) error {
	fmt.Fprintln(cmd.OutOrStdout(), outcome.String())

	if failure, ok := outcome.(*tx.ExecutionFailure); ok && failure.IsGasRelated() {
		fmt.Fprintln(cmd.ErrOrStderr(), "the failure looks gas related, consider raising gas_price or gas_limits in the config")
	}
	return outcomeError(outcome)
}
