package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/vaultswap/ledger"
	offerapp "github.com/vaultswap/ledger/cmd/offerd/app"
	"github.com/vaultswap/ledger/commands/server"
)

func generateApp(home string, logger log.Logger, debug bool, reg prometheus.Registerer) (abci.Application, error) {
	a, err := offerapp.GenerateApp(offerapp.Options{
		Home:       home,
		Logger:     logger,
		Debug:      debug,
		Registerer: reg,
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func rootCmd() *cobra.Command {
	ctx := server.NewContext()
	root := &cobra.Command{
		Use:           offerapp.Name,
		Short:         "Ledger node with atomic token swap offers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	server.AddLogFlags(root, ctx, os.Stdout)

	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".offerd")
	root.PersistentFlags().String(server.FlagHome, defaultHome, "directory for config and data")
	if err := viper.BindPFlag(server.FlagHome, root.PersistentFlags().Lookup(server.FlagHome)); err != nil {
		panic(err)
	}

	root.AddCommand(
		server.InitCmd(offerapp.GenInitOptions, ctx),
		server.StartCmd(generateApp, ctx),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), ledger.Version())
		},
	}
}

func main() {
	viper.SetEnvPrefix("OFFERD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}
