package system

import (
	"github.com/gagliardetto/solana-go"
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/gconf"
)

const optKey = "accounts"

// GenesisAccount is used to parse the json from genesis file.
// Address is base58 encoded.
type GenesisAccount struct {
	Address  solana.PublicKey `json:"address"`
	Lamports uint64           `json:"lamports"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ ledger.Initializer = Initializer{}

// FromGenesis will store the configuration and the initial balances.
func (Initializer) FromGenesis(opts ledger.Options, db ledger.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, confPkg, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrapf(errors.ErrInput, "read %s: %s", optKey, err)
	}
	ctrl := NewController(NewBucket())
	for i, acct := range accts {
		if err := ledger.ValidateAddress("Address", acct.Address); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if err := ctrl.Credit(db, acct.Address, acct.Lamports); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
