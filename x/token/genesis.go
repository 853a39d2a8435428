package token

import (
	"github.com/gagliardetto/solana-go"
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/gconf"
	"github.com/vaultswap/ledger/x/system"
)

const optKey = "mints"

// GenesisMint is used to parse the json from genesis file. Holders receive
// their balance in an associated token account.
type GenesisMint struct {
	Address       solana.PublicKey `json:"address"`
	MintAuthority solana.PublicKey `json:"mint_authority"`
	Decimals      uint8            `json:"decimals"`
	Holders       []GenesisHolder  `json:"holders"`
}

// GenesisHolder is an initial token balance.
type GenesisHolder struct {
	Owner  solana.PublicKey `json:"owner"`
	Amount uint64           `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file. The system configuration must be initialized first, as
// rent deposits of genesis accounts are credited from it.
type Initializer struct{}

var _ ledger.Initializer = Initializer{}

// FromGenesis will store the configuration, the mints and the initial
// balances.
func (Initializer) FromGenesis(opts ledger.Options, db ledger.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, confPkg, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	var mints []GenesisMint
	if err := opts.ReadOptions(optKey, &mints); err != nil {
		return errors.Wrapf(errors.ErrInput, "read %s: %s", optKey, err)
	}

	sys := system.NewController(system.NewBucket())
	mintBucket := NewMintBucket()
	accounts := NewAccountBucket()
	for i, gm := range mints {
		if err := ledger.ValidateAddress("Address", gm.Address); err != nil {
			return errors.Wrapf(err, "mint %d", i)
		}
		mint := Mint{MintAuthority: gm.MintAuthority, Decimals: gm.Decimals}
		if err := credit(db, sys, gm.Address, MintSize); err != nil {
			return errors.Wrapf(err, "mint %d", i)
		}
		for j, h := range gm.Holders {
			addr, err := conf.AssociatedAddress(h.Owner, gm.Address)
			if err != nil {
				return errors.Wrapf(err, "mint %d holder %d", i, j)
			}
			acct, err := accounts.GetAccount(db, addr)
			switch {
			case errors.ErrNotFound.Is(err):
				acct = &Account{Mint: gm.Address, Owner: h.Owner}
				if err := credit(db, sys, addr, AccountSize); err != nil {
					return errors.Wrapf(err, "mint %d holder %d", i, j)
				}
			case err != nil:
				return err
			}
			acct.Amount += h.Amount
			mint.Supply += h.Amount
			if acct.Amount < h.Amount || mint.Supply < h.Amount {
				return errors.Wrapf(errors.ErrOverflow, "mint %d holder %d", i, j)
			}
			if err := accounts.Put(db, addr[:], acct); err != nil {
				return errors.Wrapf(err, "mint %d holder %d", i, j)
			}
		}
		if err := mintBucket.Put(db, gm.Address[:], &mint); err != nil {
			return errors.Wrapf(err, "mint %d", i)
		}
	}
	return nil
}

// credit funds the rent exemption deposit of a genesis account.
func credit(db ledger.KVStore, sys system.Controller, addr solana.PublicKey, space uint64) error {
	rent, err := sys.MinimumBalance(db, space)
	if err != nil {
		return err
	}
	return sys.Credit(db, addr, rent)
}
