package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tessellated-io/signet/log"
)

const passwordEnvVar = "SIGNET_PASSWORD"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	configFile  string
	password    string
	logLevel    string
	networkFlag string

	rootCmd = &cobra.Command{
		Use:           "signet",
		Short:         "Sign and broadcast Cosmos SDK transactions from an encrypted wallet",
		Version:       formatVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", defaultConfigFile, "path to the config file")
	rootCmd.PersistentFlags().StringVar(&password, "password", "", fmt.Sprintf("wallet password, defaults to $%s", passwordEnvVar))
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "overrides the configured log level")
	rootCmd.PersistentFlags().StringVarP(&networkFlag, "network", "n", "", "overrides the configured network")

	rootCmd.AddCommand(initCmd, walletCmd, sequenceCmd, balanceCmd, delegationsCmd, sendCmd, delegateCmd, undelegateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Default().Error(err.Error())
		os.Exit(1)
	}
}

func formatVersion() string {
	return fmt.Sprintf(
		"Version: %s\nCommit: %s\nDate: %s",
		version, commit, date,
	)
}
