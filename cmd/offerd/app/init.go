package app

import (
	"encoding/json"

	"github.com/gagliardetto/solana-go"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/x/escrow"
	"github.com/vaultswap/ledger/x/system"
	"github.com/vaultswap/ledger/x/token"
)

// FaucetLamports is the balance of the faucet account created by
// GenInitOptions.
const FaucetLamports uint64 = 1000000000000000

// GenesisState is the application state section of the genesis file.
type GenesisState struct {
	Conf     GenesisConf             `json:"conf"`
	Accounts []system.GenesisAccount `json:"accounts"`
	Mints    []token.GenesisMint     `json:"mints"`
}

// GenesisConf holds the configuration of every program.
type GenesisConf struct {
	System system.Configuration `json:"system"`
	Token  token.Configuration  `json:"token"`
	Escrow escrow.Configuration `json:"escrow"`
}

// DefaultGenesis returns a genesis state with the default configuration of
// all programs and a single funded faucet account, that is also the fee
// collector.
func DefaultGenesis(faucet solana.PublicKey) GenesisState {
	return GenesisState{
		Conf: GenesisConf{
			System: system.DefaultConfiguration(faucet),
			Token:  token.DefaultConfiguration(),
			Escrow: escrow.DefaultConfiguration(),
		},
		Accounts: []system.GenesisAccount{
			{Address: faucet, Lamports: FaucetLamports},
		},
		Mints: []token.GenesisMint{},
	}
}

// GenInitOptions serializes the default genesis state funding given
// faucet.
func GenInitOptions(faucet solana.PublicKey) (json.RawMessage, error) {
	raw, err := json.MarshalIndent(DefaultGenesis(faucet), "", "  ")
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "genesis: %s", err)
	}
	return raw, nil
}
