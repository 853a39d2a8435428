package main

import (
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"github.com/vaultswap/ledger/errors"
)

func balanceCmd() *cobra.Command {
	var mint string
	cmd := &cobra.Command{
		Use:   "balance [address]",
		Short: "Print the lamports, or token balance when a mint is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var owner solana.PublicKey
			if len(args) == 1 {
				addr, err := parseAddress("address", args[0])
				if err != nil {
					return err
				}
				owner = addr
			} else {
				key, err := signingKey()
				if err != nil {
					return err
				}
				owner = key.PublicKey()
			}

			c := newClient()
			var amount uint64
			if mint == "" {
				n, err := c.NativeBalance(owner)
				if err != nil {
					return err
				}
				amount = n
			} else {
				m, err := parseAddress("mint", mint)
				if err != nil {
					return err
				}
				n, err := c.TokenBalance(owner, m)
				if err != nil {
					return err
				}
				amount = n
			}
			fmt.Fprintln(cmd.OutOrStdout(), amount)
			return nil
		},
	}
	cmd.Flags().StringVar(&mint, "mint", "", "mint of the token balance")
	return cmd
}

func fundCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fund <address> <lamports>",
		Short: "Transfer lamports from the signing key to given address",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := signingKey()
			if err != nil {
				return err
			}
			to, err := parseAddress("address", args[0])
			if err != nil {
				return err
			}
			lamports, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return errors.Wrapf(errors.ErrInput, "lamports: %s", err)
			}
			return newClient().TransferLamports(key, to, lamports)
		},
	}
}

func mintCmd() *cobra.Command {
	var (
		decimals uint8
		amount   uint64
		holder   string
	)
	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Create a new mint controlled by the signing key and issue tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := signingKey()
			if err != nil {
				return err
			}
			to := key.PublicKey()
			if holder != "" {
				if to, err = parseAddress("holder", holder); err != nil {
					return err
				}
			}
			mint, err := newClient().CreateMintAndMintTo(key, key, decimals, to, amount)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), mint)
			return nil
		},
	}
	cmd.Flags().Uint8Var(&decimals, "decimals", 6, "decimals of the new mint")
	cmd.Flags().Uint64Var(&amount, "amount", 0, "token units issued to the holder")
	cmd.Flags().StringVar(&holder, "holder", "", "owner of the issued tokens, defaults to the signing key")
	return cmd
}
