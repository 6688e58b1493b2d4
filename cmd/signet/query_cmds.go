package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tessellated-io/signet/cosmos/tx"
)

var balanceDenom string

var sequenceCmd = &cobra.Command{
	Use:   "sequence [address]",
	Short: "Print the account number and sequence of an address, defaulting to the wallet's",
	Args:  cobra.MaximumNArgs(1),
	RunE: runWithApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		address, err := a.addressArg(args)
		if err != nil {
			return err
		}

		lcdClient, err := a.lcdClient()
		if err != nil {
			return err
		}

		sequence, err := tx.NewSequenceTracker(lcdClient, a.logger).Fetch(ctx, address)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "account_number: %d\nsequence: %d\n", sequence.AccountNumber, sequence.Sequence)
		return nil
	}),
}

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Print the balances of an address, defaulting to the wallet's",
	Args:  cobra.MaximumNArgs(1),
	RunE: runWithApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		address, err := a.addressArg(args)
		if err != nil {
			return err
		}

		queryClient, err := a.queryClient()
		if err != nil {
			return err
		}

		if balanceDenom != "" {
			balance, err := queryClient.GetBalance(ctx, address, balanceDenom)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), balance.String())
			return nil
		}

		balances, err := queryClient.GetBalances(ctx, address)
		if err != nil {
			return err
		}
		for _, balance := range balances {
			fmt.Fprintln(cmd.OutOrStdout(), balance.String())
		}
		return nil
	}),
}

var delegationsCmd = &cobra.Command{
	Use:   "delegations [address]",
	Short: "Print the delegations of an address, defaulting to the wallet's",
	Args:  cobra.MaximumNArgs(1),
	RunE: runWithApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		address, err := a.addressArg(args)
		if err != nil {
			return err
		}

		queryClient, err := a.queryClient()
		if err != nil {
			return err
		}

		delegations, err := queryClient.GetDelegations(ctx, address)
		if err != nil {
			return err
		}
		for _, delegation := range delegations {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", delegation.ValidatorAddress, delegation.Balance.String())
		}
		return nil
	}),
}

func init() {
	balanceCmd.Flags().StringVar(&balanceDenom, "denom", "", "only print the balance of this denom")
}
