package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vaultswap/ledger/client"
)

const (
	flagNode = "node"
	flagKey  = "key"
)

// newConn is replaced in tests by an in-process connection.
var newConn = func(node string) client.Conn {
	return client.NewHTTPConn(node)
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "offercli",
		Short:         "Client for atomic token swap offers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultKey := filepath.Join(os.ExpandEnv("$HOME"), ".offercli", "key.json")
	root.PersistentFlags().String(flagNode, "http://localhost:26657", "tendermint RPC address of the node")
	root.PersistentFlags().String(flagKey, defaultKey, "solana-keygen JSON file of the signing key")
	for _, name := range []string{flagNode, flagKey} {
		if err := viper.BindPFlag(name, root.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}

	root.AddCommand(
		keygenCmd(),
		addressCmd(),
		balanceCmd(),
		fundCmd(),
		mintCmd(),
		makeCmd(),
		takeCmd(),
		closeCmd(),
		offerCmd(),
	)
	return root
}

func newClient() *client.Client {
	return client.NewClient(newConn(viper.GetString(flagNode)))
}

func main() {
	viper.SetEnvPrefix("OFFERCLI")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
