package server

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/client"
	"github.com/vaultswap/ledger/errors"
)

const (
	// FlagHome is the directory holding the node configuration and data.
	FlagHome = "home"
	// FlagChainID is the chain id written to a new genesis file.
	FlagChainID = "chain-id"

	// FaucetKeyFile is the name of the faucet key file written by init.
	FaucetKeyFile = "faucet.json"
)

// GenOptions generates the app_state of the genesis file, funding given
// faucet address.
type GenOptions func(faucet solana.PublicKey) (json.RawMessage, error)

// InitCmd will initialize the genesis file with the application state. A
// faucet key is generated and stored in the home directory.
//
// If a tendermint genesis file already exists, only its app_state is
// replaced.
func InitCmd(gen GenOptions, ctx *Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the genesis file and the faucet key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			home := viper.GetString(FlagHome)
			return initGenesis(gen, ctx.Logger, home, viper.GetString(FlagChainID))
		},
	}
	cmd.Flags().String(FlagChainID, "offer-local", "chain id used when a new genesis file is created")
	if err := viper.BindPFlag(FlagChainID, cmd.Flags().Lookup(FlagChainID)); err != nil {
		panic(err)
	}
	return cmd
}

// GenesisFile returns the path of the genesis file in given home directory.
func GenesisFile(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

func initGenesis(gen GenOptions, logger log.Logger, home, chainID string) error {
	if !ledger.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	keyPath := filepath.Join(home, FaucetKeyFile)
	if fileExists(keyPath) {
		return errors.Wrapf(errors.ErrDuplicate, "faucet key %s already exists", keyPath)
	}
	faucet, err := solana.NewRandomPrivateKey()
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "faucet key: %s", err)
	}

	options, err := gen(faucet.PublicKey())
	if err != nil {
		return err
	}

	genFile := GenesisFile(home)
	doc := make(GenesisDoc)
	if fileExists(genFile) {
		logger.Info("Found genesis file", "path", genFile)
		if doc, err = readGenesis(genFile); err != nil {
			return err
		}
	} else {
		doc["genesis_time"], _ = json.Marshal(time.Now().UTC())
		doc["chain_id"], _ = json.Marshal(chainID)
	}
	doc["app_state"] = options
	if err := writeJSON(genFile, doc); err != nil {
		return err
	}
	logger.Info("Wrote genesis file", "path", genFile)

	if err := client.SaveKey(keyPath, faucet); err != nil {
		return err
	}
	logger.Info("Generated faucet key", "path", keyPath, "address", faucet.PublicKey())
	return nil
}

func fileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !os.IsNotExist(err)
}

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

func readGenesis(filename string) (GenesisDoc, error) {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "read genesis: %s", err)
	}
	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "parse genesis: %s", err)
	}
	return doc, nil
}

func writeJSON(filename string, doc interface{}) error {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "serialize %s: %s", filename, err)
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return errors.Wrapf(errors.ErrInput, "create directory: %s", err)
	}
	if err := ioutil.WriteFile(filename, out, 0600); err != nil {
		return errors.Wrap(errors.ErrInput, fmt.Sprintf("write %s: %s", filename, err))
	}
	return nil
}
