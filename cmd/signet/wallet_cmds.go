package main

import (
	"bufio"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tessellated-io/signet/config"
	"github.com/tessellated-io/signet/log"
	"github.com/tessellated-io/signet/wallet"
)

var (
	mnemonicWords int
	kdfName       string
	cipherName    string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := log.NewLogger("info")

		if err := config.CreateDirectoryIfNeeded(defaultConfigDirectory, logger); err != nil {
			return err
		}
		return config.WriteYamlWithComments(defaultConfig(), configHeader, configFile, logger)
	},
}

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage the encrypted wallet",
}

var walletCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Generate a new mnemonic and save it as an encrypted wallet",
	Args:  cobra.NoArgs,
	RunE: runWithApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		opts, err := a.walletCreationOptions()
		if err != nil {
			return err
		}

		w, err := wallet.Generate(mnemonicWords, opts...)
		if err != nil {
			return err
		}

		if err := a.saveWallet(w); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "address: %s\nmnemonic: %s\n\nWrite the mnemonic down, it is the only way to recover this wallet.\n", w.Address(), w.Mnemonic())
		return nil
	}),
}

var walletImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Read a mnemonic from stdin and save it as an encrypted wallet",
	Args:  cobra.NoArgs,
	RunE: runWithApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		opts, err := a.walletCreationOptions()
		if err != nil {
			return err
		}

		mnemonic, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && strings.TrimSpace(mnemonic) == "" {
			return fmt.Errorf("unable to read mnemonic from stdin: %w", err)
		}

		w, err := wallet.FromMnemonic(mnemonic, opts...)
		if err != nil {
			return err
		}

		if err := a.saveWallet(w); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "address: %s\n", w.Address())
		return nil
	}),
}

var walletShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Decrypt the wallet and print its account",
	Args:  cobra.NoArgs,
	RunE: runWithApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		w, err := a.loadWallet()
		if err != nil {
			return err
		}

		for _, account := range w.GetAccounts() {
			fmt.Fprintf(cmd.OutOrStdout(), "address: %s\nalgo: %s\npubkey: %s\nhd_path: %s\n", account.Address, account.Algo, base64.StdEncoding.EncodeToString(account.PubKey), w.HdPath())
		}
		return nil
	}),
}

var walletKdfCmd = &cobra.Command{
	Use:   "kdf",
	Short: "Print the key derivation settings of the wallet, without decrypting it",
	Args:  cobra.NoArgs,
	RunE: runWithApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		serialized, err := config.ReadFileContents(a.settings.walletFile)
		if err != nil {
			return err
		}

		kdfConfig, err := wallet.ExtractKdfConfiguration(string(serialized))
		if err != nil {
			return err
		}

		rendered, err := json.MarshalIndent(kdfConfig, "", "  ")
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(rendered))
		return nil
	}),
}

func init() {
	walletCreateCmd.Flags().IntVar(&mnemonicWords, "words", 24, "mnemonic length, one of 12, 15, 18, 21 or 24")

	for _, cmd := range []*cobra.Command{walletCreateCmd, walletImportCmd} {
		cmd.Flags().StringVar(&kdfName, "kdf", string(wallet.KdfArgon2id), "key derivation function, argon2id or scrypt")
		cmd.Flags().StringVar(&cipherName, "cipher", string(wallet.EncryptionXChaCha20Poly1305), "wallet cipher, xchacha20poly1305-ietf or aes256gcm")
	}

	walletCmd.AddCommand(walletCreateCmd, walletImportCmd, walletShowCmd, walletKdfCmd)
}

func (a *app) walletCreationOptions() ([]wallet.Option, error) {
	algorithm := wallet.EncryptionAlgorithm(cipherName)
	if !algorithm.IsSupported() {
		return nil, fmt.Errorf("%w: %s", wallet.ErrUnsupportedCipher, cipherName)
	}

	return append(a.walletOptions(), wallet.WithEncryptionAlgorithm(algorithm)), nil
}

// saveWallet encrypts the wallet with the password and the selected KDF. An existing wallet file is
// never overwritten.
func (a *app) saveWallet(w *wallet.Wallet) error {
	if config.FileExists(a.settings.walletFile) {
		return fmt.Errorf("wallet file %s already exists", a.settings.walletFile)
	}

	walletPassword, err := readPassword()
	if err != nil {
		return err
	}

	kdfConfig, err := kdfConfigurationForName(kdfName)
	if err != nil {
		return err
	}

	key, err := wallet.ExecuteKdf(walletPassword, kdfConfig)
	if err != nil {
		return err
	}

	serialized, err := w.SerializeWithEncryptionKey(key, kdfConfig)
	if err != nil {
		return err
	}

	directory := filepath.Dir(config.ExpandHomeDir(a.settings.walletFile))
	if err := config.CreateDirectoryIfNeeded(directory, a.logger); err != nil {
		return err
	}

	return config.SafeWriteSecret(a.settings.walletFile, []byte(serialized), a.logger)
}

func kdfConfigurationForName(name string) (wallet.KdfConfiguration, error) {
	switch wallet.KdfAlgorithm(strings.ToLower(name)) {
	case wallet.KdfArgon2id:
		return wallet.DefaultKdfConfiguration(), nil
	case wallet.KdfScrypt:
		return wallet.ScryptConfiguration(32, 1<<15, 8, 1), nil
	default:
		return wallet.KdfConfiguration{}, fmt.Errorf("%w: %s", wallet.ErrUnsupportedKdf, name)
	}
}
