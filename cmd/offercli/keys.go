package main

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/client"
	"github.com/vaultswap/ledger/errors"
)

func keygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new signing key and store it in the key file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := solana.NewRandomPrivateKey()
			if err != nil {
				return errors.Wrapf(errors.ErrInput, "generate key: %s", err)
			}
			if err := client.SaveKey(viper.GetString(flagKey), key); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key.PublicKey())
			return nil
		},
	}
}

func addressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print the address of the signing key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := signingKey()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key.PublicKey())
			return nil
		},
	}
}

func signingKey() (solana.PrivateKey, error) {
	return client.LoadKey(viper.GetString(flagKey))
}

// parseAddress decodes a base58 address given for the named argument.
func parseAddress(name, raw string) (solana.PublicKey, error) {
	addr, err := ledger.ParseAddress(raw)
	if err != nil {
		return solana.PublicKey{}, errors.Wrap(err, name)
	}
	return addr, nil
}
