package main

import (
	"encoding/json"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"github.com/vaultswap/ledger/client"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/x/escrow"
)

func makeCmd() *cobra.Command {
	var (
		id                        uint64
		offeredMint, wantedMint   string
		offeredAmount, wantedAmnt uint64
	)
	cmd := &cobra.Command{
		Use:   "make",
		Short: "Lock tokens in a new offer asking for other tokens in exchange",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := signingKey()
			if err != nil {
				return err
			}
			offered, err := parseAddress("offered-mint", offeredMint)
			if err != nil {
				return err
			}
			wanted, err := parseAddress("wanted-mint", wantedMint)
			if err != nil {
				return err
			}
			addr, err := newClient().MakeOffer(key, id, offered, wanted, offeredAmount, wantedAmnt)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), addr)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&id, "id", 0, "offer id, unique among the open offers of the maker")
	cmd.Flags().StringVar(&offeredMint, "offered-mint", "", "mint of the locked tokens")
	cmd.Flags().StringVar(&wantedMint, "wanted-mint", "", "mint of the requested tokens")
	cmd.Flags().Uint64Var(&offeredAmount, "offered", 0, "token units locked in the vault")
	cmd.Flags().Uint64Var(&wantedAmnt, "wanted", 0, "token units requested from the taker")
	return cmd
}

func takeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "take <offer>",
		Short: "Pay the wanted tokens and receive the vault content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := signingKey()
			if err != nil {
				return err
			}
			offer, err := parseAddress("offer", args[0])
			if err != nil {
				return err
			}
			return reportResolved(newClient().TakeOffer(key, offer))
		},
	}
}

func closeCmd() *cobra.Command {
	var id uint64
	cmd := &cobra.Command{
		Use:   "close",
		Short: "Cancel an offer of the signing key and return the locked tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := signingKey()
			if err != nil {
				return err
			}
			return reportResolved(newClient().CloseOffer(key, id))
		},
	}
	cmd.Flags().Uint64Var(&id, "id", 0, "offer id")
	return cmd
}

// reportResolved turns a missing offer into a readable message. The
// offer was taken or closed by an earlier transaction.
func reportResolved(err error) error {
	if client.IsResolvedElsewhere(err) {
		return errors.Wrap(err, "offer no longer open")
	}
	return err
}

type offerView struct {
	Address       solana.PublicKey `json:"address"`
	ID            uint64           `json:"id"`
	Maker         solana.PublicKey `json:"maker"`
	OfferedMint   solana.PublicKey `json:"offered_mint"`
	OfferedAmount uint64           `json:"offered_amount"`
	WantedMint    solana.PublicKey `json:"wanted_mint"`
	WantedAmount  uint64           `json:"wanted_amount"`
}

func offerCmd() *cobra.Command {
	var (
		maker string
		id    uint64
	)
	cmd := &cobra.Command{
		Use:   "offer [address]",
		Short: "Print an open offer, given its address or the maker and id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			var addr solana.PublicKey
			switch {
			case len(args) == 1:
				a, err := parseAddress("offer", args[0])
				if err != nil {
					return err
				}
				addr = a
			case maker != "":
				m, err := parseAddress("maker", maker)
				if err != nil {
					return err
				}
				if addr, err = c.OfferAddress(m, id); err != nil {
					return err
				}
			default:
				return errors.Wrap(errors.ErrInput, "offer address or maker required")
			}

			o, err := c.Offer(addr)
			if err != nil {
				return err
			}
			locked, err := c.TokenBalance(addr, o.OfferedMint)
			if err != nil {
				return err
			}
			return printOffer(cmd, addr, o, locked)
		},
	}
	cmd.Flags().StringVar(&maker, "maker", "", "maker of the offer")
	cmd.Flags().Uint64Var(&id, "id", 0, "offer id, used with --maker")
	return cmd
}

func printOffer(cmd *cobra.Command, addr solana.PublicKey, o *escrow.Offer, locked uint64) error {
	raw, err := json.MarshalIndent(offerView{
		Address:       addr,
		ID:            o.ID,
		Maker:         o.Maker,
		OfferedMint:   o.OfferedMint,
		OfferedAmount: locked,
		WantedMint:    o.WantedMint,
		WantedAmount:  o.WantedAmount,
	}, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(raw))
	return nil
}
