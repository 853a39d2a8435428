package system

import (
	"github.com/gagliardetto/solana-go"
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
)

// Controller is the functionality needed by other extensions to manage
// native balances. Anything that may be called from another extension
// is here.
type Controller interface {
	// Balance returns the lamports held by given address.
	Balance(db ledger.ReadOnlyKVStore, addr solana.PublicKey) (uint64, error)
	// Transfer moves lamports between two addresses. ErrInsufficientFunds
	// is returned if the source balance is too low.
	Transfer(db ledger.KVStore, from, to solana.PublicKey, lamports uint64) error
	// Credit adds lamports to given address.
	Credit(db ledger.KVStore, to solana.PublicKey, lamports uint64) error
	// MinimumBalance returns the rent exemption deposit of an account of
	// given size.
	MinimumBalance(db ledger.ReadOnlyKVStore, space uint64) (uint64, error)
	// CreateAccount moves the rent exemption deposit of an account of
	// given size from the payer to the new account. The new account must
	// not hold any lamports yet. The deposit is returned.
	CreateAccount(db ledger.KVStore, payer, account solana.PublicKey, space uint64) (uint64, error)
	// CloseAccount moves all lamports of the account to the destination.
	// The reclaimed amount is returned.
	CloseAccount(db ledger.KVStore, account, dest solana.PublicKey) (uint64, error)
}

// BaseController implements Controller on the accounts bucket.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on given bucket.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

func (c BaseController) Balance(db ledger.ReadOnlyKVStore, addr solana.PublicKey) (uint64, error) {
	acct, err := c.bucket.GetOrEmpty(db, addr)
	if err != nil {
		return 0, err
	}
	return acct.Lamports, nil
}

func (c BaseController) Transfer(db ledger.KVStore, from, to solana.PublicKey, lamports uint64) error {
	if lamports == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "zero lamports")
	}
	sender, err := c.bucket.GetOrEmpty(db, from)
	if err != nil {
		return errors.Wrap(err, "sender")
	}
	if sender.Lamports < lamports {
		return errors.Wrapf(errors.ErrInsufficientFunds, "%s has %d lamports, %d required", from, sender.Lamports, lamports)
	}
	if from.Equals(to) {
		return nil
	}
	sender.Lamports -= lamports
	if err := c.bucket.Save(db, from, sender); err != nil {
		return errors.Wrap(err, "save sender")
	}
	return c.Credit(db, to, lamports)
}

func (c BaseController) Credit(db ledger.KVStore, to solana.PublicKey, lamports uint64) error {
	recipient, err := c.bucket.GetOrEmpty(db, to)
	if err != nil {
		return errors.Wrap(err, "recipient")
	}
	next := recipient.Lamports + lamports
	if next < recipient.Lamports {
		return errors.Wrapf(errors.ErrOverflow, "%s balance", to)
	}
	recipient.Lamports = next
	if err := c.bucket.Save(db, to, recipient); err != nil {
		return errors.Wrap(err, "save recipient")
	}
	return nil
}

func (c BaseController) MinimumBalance(db ledger.ReadOnlyKVStore, space uint64) (uint64, error) {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return 0, err
	}
	return conf.MinimumBalance(space)
}

func (c BaseController) CreateAccount(db ledger.KVStore, payer, account solana.PublicKey, space uint64) (uint64, error) {
	switch balance, err := c.Balance(db, account); {
	case err != nil:
		return 0, err
	case balance != 0:
		return 0, errors.Wrapf(ErrAccountInUse, "%s", account)
	}
	rent, err := c.MinimumBalance(db, space)
	if err != nil {
		return 0, err
	}
	if err := c.Transfer(db, payer, account, rent); err != nil {
		return 0, errors.Wrap(err, "rent deposit")
	}
	return rent, nil
}

func (c BaseController) CloseAccount(db ledger.KVStore, account, dest solana.PublicKey) (uint64, error) {
	balance, err := c.Balance(db, account)
	if err != nil {
		return 0, err
	}
	if balance == 0 {
		return 0, nil
	}
	if err := c.Transfer(db, account, dest, balance); err != nil {
		return 0, err
	}
	return balance, nil
}
