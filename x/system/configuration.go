package system

import (
	"math"

	"github.com/gagliardetto/solana-go"
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/gconf"
)

const confPkg = "system"

// Configuration holds the rent and fee parameters.
type Configuration struct {
	// AccountStorageOverhead is the number of bytes added to the state
	// size of every account when computing its rent.
	AccountStorageOverhead uint64 `json:"account_storage_overhead"`
	// LamportsPerByteYear is the rent price of a byte for a year.
	LamportsPerByteYear uint64 `json:"lamports_per_byte_year"`
	// ExemptionThresholdYears is the number of years of rent an account
	// must hold to be exempt from rent collection.
	ExemptionThresholdYears uint64 `json:"exemption_threshold_years"`
	// LamportsPerSignature is the transaction fee charged per signature.
	LamportsPerSignature uint64 `json:"lamports_per_signature"`
	// FeeCollector receives all transaction fees.
	FeeCollector solana.PublicKey `json:"fee_collector"`
}

// DefaultConfiguration returns the configuration of the public network,
// with fees sent to given collector.
func DefaultConfiguration(collector solana.PublicKey) Configuration {
	return Configuration{
		AccountStorageOverhead:  128,
		LamportsPerByteYear:     3480,
		ExemptionThresholdYears: 2,
		LamportsPerSignature:    5000,
		FeeCollector:            collector,
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
	if c.LamportsPerByteYear == 0 {
		errs = errors.AppendField(errs, "LamportsPerByteYear", errors.ErrEmpty)
	}
	if c.ExemptionThresholdYears == 0 {
		errs = errors.AppendField(errs, "ExemptionThresholdYears", errors.ErrEmpty)
	}
	errs = errors.Append(errs, ledger.ValidateAddress("FeeCollector", c.FeeCollector))
	return errs
}

// MinimumBalance returns the rent exemption deposit of an account holding
// given number of bytes.
func (c Configuration) MinimumBalance(space uint64) (uint64, error) {
	size := c.AccountStorageOverhead + space
	if size < space {
		return 0, errors.Wrap(errors.ErrOverflow, "account size")
	}
	perYear := size * c.LamportsPerByteYear
	if c.LamportsPerByteYear != 0 && perYear/c.LamportsPerByteYear != size {
		return 0, errors.Wrap(errors.ErrOverflow, "yearly rent")
	}
	total := perYear * c.ExemptionThresholdYears
	if c.ExemptionThresholdYears != 0 && total/c.ExemptionThresholdYears != perYear {
		return 0, errors.Wrap(errors.ErrOverflow, "rent exemption")
	}
	return total, nil
}

// Fee returns the fee of a transaction carrying given number of
// signatures. The result always fits the gas payment of a check result.
func (c Configuration) Fee(signatures int) (uint64, error) {
	n := uint64(signatures)
	fee := c.LamportsPerSignature * n
	if n != 0 && (fee/n != c.LamportsPerSignature || fee > math.MaxInt64) {
		return 0, errors.Wrapf(errors.ErrOverflow, "fee of %d signatures", signatures)
	}
	return fee, nil
}

// LoadConfiguration reads the system configuration from the state.
func LoadConfiguration(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load system configuration")
	}
	return &conf, nil
}

// SaveConfiguration validates and stores the system configuration.
func SaveConfiguration(db gconf.Store, conf Configuration) error {
	return gconf.Save(db, confPkg, &conf)
}
