package escrow

import (
	"github.com/gagliardetto/solana-go"
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/gconf"
)

const confPkg = "escrow"

// DefaultProgramID is the program id offer addresses are derived under
// unless configured otherwise.
var DefaultProgramID = solana.MustPublicKeyFromBase58("GgU4UPqMP5J9NYQGQ9xctxsvmDiDoPXwyw4pN7syRFqf")

// Configuration of the escrow extension.
type Configuration struct {
	// ProgramID owns all offer addresses.
	ProgramID solana.PublicKey `json:"program_id"`
}

// DefaultConfiguration returns the configuration using DefaultProgramID.
func DefaultConfiguration() Configuration {
	return Configuration{ProgramID: DefaultProgramID}
}

func (c *Configuration) Marshal() ([]byte, error) {
	return ledger.MarshalBorsh(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return ledger.UnmarshalBorsh(raw, c)
}

func (c *Configuration) Validate() error {
	return ledger.ValidateAddress("ProgramID", c.ProgramID)
}

// LoadConfiguration reads the escrow configuration from the state.
func LoadConfiguration(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load escrow configuration")
	}
	return &conf, nil
}

// SaveConfiguration validates and stores the escrow configuration.
func SaveConfiguration(db gconf.Store, conf Configuration) error {
	return gconf.Save(db, confPkg, &conf)
}
