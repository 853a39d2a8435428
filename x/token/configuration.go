package token

import (
	"github.com/gagliardetto/solana-go"
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/gconf"
)

const confPkg = "token"

// Configuration holds the program ids used to derive associated token
// account addresses.
type Configuration struct {
	TokenProgram           solana.PublicKey `json:"token_program"`
	AssociatedTokenProgram solana.PublicKey `json:"associated_token_program"`
}

// DefaultConfiguration returns the program ids of the public network.
func DefaultConfiguration() Configuration {
	return Configuration{
		TokenProgram:           solana.TokenProgramID,
		AssociatedTokenProgram: solana.SPLAssociatedTokenAccountProgramID,
	}
}

func (c *Configuration) Marshal() ([]byte, error) {
	return ledger.MarshalBorsh(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return ledger.UnmarshalBorsh(raw, c)
}

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.Append(errs, ledger.ValidateAddress("TokenProgram", c.TokenProgram))
	errs = errors.Append(errs, ledger.ValidateAddress("AssociatedTokenProgram", c.AssociatedTokenProgram))
	return errs
}

// AssociatedAddress returns the associated token account address of the
// owner for given mint.
func (c Configuration) AssociatedAddress(owner, mint solana.PublicKey) (solana.PublicKey, error) {
	return ledger.AssociatedTokenAddress(owner, mint, c.TokenProgram, c.AssociatedTokenProgram)
}

// LoadConfiguration reads the token configuration from the state.
func LoadConfiguration(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load token configuration")
	}
	return &conf, nil
}

// SaveConfiguration validates and stores the token configuration.
func SaveConfiguration(db gconf.Store, conf Configuration) error {
	return gconf.Save(db, confPkg, &conf)
}
