package sigs

import (
	"github.com/gagliardetto/solana-go"
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/orm"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

// maxSequenceValue is the greatest nonce value supported by the clients.
const maxSequenceValue = (1 << 53) - 1

// UserData keeps the replay protection state of a single public key.
type UserData struct {
	PubKey   solana.PublicKey
	Sequence int64
}

var _ orm.Model = (*UserData)(nil)

// Marshal serializes the user data.
func (u *UserData) Marshal() ([]byte, error) {
	return ledger.MarshalAccount("UserData", u)
}

// Unmarshal deserializes the user data.
func (u *UserData) Unmarshal(raw []byte) error {
	return ledger.UnmarshalAccount("UserData", raw, u)
}

// Validate checks the sequence range.
func (u *UserData) Validate() error {
	var errs error
	if seq := u.Sequence; seq < 0 || seq > maxSequenceValue {
		errs = errors.AppendField(errs, "Sequence", ErrInvalidSequence)
	}
	errs = errors.Append(errs, ledger.ValidateAddress("PubKey", u.PubKey))
	return errs
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
// Before incrementing the sequence, this function is testing for a value
// overflow.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}
	next := u.Sequence + 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// Bucket stores UserData by public key.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket creates the proper bucket for this extension
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName),
	}
}

// GetOrCreate initializes a UserData if none exist for that key
func (b Bucket) GetOrCreate(db ledger.ReadOnlyKVStore, pubkey solana.PublicKey) (*UserData, error) {
	var user UserData
	switch err := b.One(db, pubkey[:], &user); {
	case err == nil:
		return &user, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{PubKey: pubkey}, nil
	default:
		return nil, err
	}
}

// Save persists the user data under its public key.
func (b Bucket) Save(db ledger.KVStore, user *UserData) error {
	return b.Put(db, user.PubKey[:], user)
}

// NextNonce returns the next numeric nonce value that should be used during a
// transaction signing.
func NextNonce(db ledger.ReadOnlyKVStore, signer solana.PublicKey) (int64, error) {
	user, err := NewBucket().GetOrCreate(db, signer)
	if err != nil {
		return 0, errors.Wrap(err, "bucket get")
	}
	return user.Sequence, nil
}
