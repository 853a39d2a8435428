package system

import (
	"github.com/gagliardetto/solana-go"
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/orm"
)

// BucketName is where we store the accounts.
const BucketName = "lamports"

// Account holds the native balance of an address.
type Account struct {
	Lamports uint64
}

var _ orm.Model = (*Account)(nil)

// Marshal serializes the account.
func (a *Account) Marshal() ([]byte, error) {
	return ledger.MarshalAccount("Account", a)
}

// Unmarshal deserializes the account.
func (a *Account) Unmarshal(raw []byte) error {
	return ledger.UnmarshalAccount("Account", raw, a)
}

// Validate is a noop, any balance is valid.
func (a *Account) Validate() error {
	return nil
}

// Bucket stores accounts by address. Accounts without lamports are not
// stored.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket creates the accounts bucket.
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName),
	}
}

// GetOrEmpty returns the account stored under given address or an empty
// account if it does not exist.
func (b Bucket) GetOrEmpty(db ledger.ReadOnlyKVStore, addr solana.PublicKey) (*Account, error) {
	var acct Account
	if err := b.One(db, addr[:], &acct); err != nil {
		if errors.ErrNotFound.Is(err) {
			return &Account{}, nil
		}
		return nil, err
	}
	return &acct, nil
}

// Save stores the account under given address. An account with no lamports
// is removed.
func (b Bucket) Save(db ledger.KVStore, addr solana.PublicKey, acct *Account) error {
	if acct.Lamports == 0 {
		err := b.Delete(db, addr[:])
		if errors.ErrNotFound.Is(err) {
			return nil
		}
		return err
	}
	return b.Put(db, addr[:], acct)
}
