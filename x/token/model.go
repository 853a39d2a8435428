package token

import (
	"github.com/gagliardetto/solana-go"
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/orm"
)

const (
	// MintSize is the state size of a mint, used to compute its rent.
	MintSize = 82
	// AccountSize is the state size of a token account, used to compute
	// its rent.
	AccountSize = 165

	// MaxDecimals is the highest precision a mint can declare.
	MaxDecimals = 18
)

// Mint describes a token.
type Mint struct {
	// MintAuthority is the only address allowed to issue new units.
	MintAuthority solana.PublicKey
	// Supply is the total number of units issued.
	Supply uint64
	// Decimals is the number of base 10 digits to the right of the
	// decimal place.
	Decimals uint8
}

var _ orm.Model = (*Mint)(nil)

func (m *Mint) Marshal() ([]byte, error) {
	return ledger.MarshalAccount("Mint", m)
}

func (m *Mint) Unmarshal(raw []byte) error {
	return ledger.UnmarshalAccount("Mint", raw, m)
}

func (m *Mint) Validate() error {
	var errs error
	errs = errors.Append(errs, ledger.ValidateAddress("MintAuthority", m.MintAuthority))
	if m.Decimals > MaxDecimals {
		errs = errors.AppendField(errs, "Decimals", errors.Wrapf(errors.ErrInput, "at most %d", MaxDecimals))
	}
	return errs
}

// Account holds units of a single mint on behalf of its owner.
type Account struct {
	Mint   solana.PublicKey
	Owner  solana.PublicKey
	Amount uint64
}

var _ orm.Model = (*Account)(nil)

func (a *Account) Marshal() ([]byte, error) {
	return ledger.MarshalAccount("TokenAccount", a)
}

func (a *Account) Unmarshal(raw []byte) error {
	return ledger.UnmarshalAccount("TokenAccount", raw, a)
}

func (a *Account) Validate() error {
	var errs error
	errs = errors.Append(errs, ledger.ValidateAddress("Mint", a.Mint))
	errs = errors.Append(errs, ledger.ValidateAddress("Owner", a.Owner))
	return errs
}

// MintBucket stores mints by their address.
type MintBucket struct {
	orm.ModelBucket
}

// NewMintBucket returns a bucket for mints.
func NewMintBucket() MintBucket {
	return MintBucket{
		ModelBucket: orm.NewModelBucket("mints"),
	}
}

// GetMint returns the mint stored under given address. ErrNotFound is
// returned if it does not exist.
func (b MintBucket) GetMint(db ledger.ReadOnlyKVStore, addr solana.PublicKey) (*Mint, error) {
	var m Mint
	if err := b.One(db, addr[:], &m); err != nil {
		return nil, errors.Wrapf(err, "mint %s", addr)
	}
	return &m, nil
}

// AccountBucket stores token accounts by their address.
type AccountBucket struct {
	orm.ModelBucket
}

// NewAccountBucket returns a bucket for token accounts.
func NewAccountBucket() AccountBucket {
	return AccountBucket{
		ModelBucket: orm.NewModelBucket("tokens"),
	}
}

// GetAccount returns the token account stored under given address.
// ErrNotFound is returned if it does not exist.
func (b AccountBucket) GetAccount(db ledger.ReadOnlyKVStore, addr solana.PublicKey) (*Account, error) {
	var a Account
	if err := b.One(db, addr[:], &a); err != nil {
		return nil, errors.Wrapf(err, "token account %s", addr)
	}
	return &a, nil
}
