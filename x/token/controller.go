package token

import (
	"github.com/gagliardetto/solana-go"
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/x/system"
)

// Controller is the functionality needed by other extensions to manage
// tokens. Authority arguments are not verified against the signers. The
// caller is responsible for proving that the authority approved the
// operation.
type Controller interface {
	// Mint returns the mint stored under given address.
	Mint(db ledger.ReadOnlyKVStore, addr solana.PublicKey) (*Mint, error)
	// Account returns the token account stored under given address.
	Account(db ledger.ReadOnlyKVStore, addr solana.PublicKey) (*Account, error)
	// Balance returns the amount held by the token account, or zero if
	// the account does not exist.
	Balance(db ledger.ReadOnlyKVStore, addr solana.PublicKey) (uint64, error)
	// AssociatedAddress returns the associated token account address of
	// the owner for given mint.
	AssociatedAddress(db ledger.ReadOnlyKVStore, owner, mint solana.PublicKey) (solana.PublicKey, error)

	// CreateMint creates a new mint. Rent is paid by the payer.
	CreateMint(db ledger.KVStore, payer, mint, authority solana.PublicKey, decimals uint8) error
	// MintTo issues new units into a token account of that mint.
	MintTo(db ledger.KVStore, mint, dest, authority solana.PublicKey, amount uint64) error
	// CreateAssociatedAccount ensures the associated token account of the
	// owner for given mint exists and returns its address. Rent is paid by
	// the payer only if the account is created.
	CreateAssociatedAccount(db ledger.KVStore, payer, owner, mint solana.PublicKey) (solana.PublicKey, error)
	// Transfer moves units between two token accounts of the same mint.
	// Authority must be the owner of the source account.
	Transfer(db ledger.KVStore, from, to, authority solana.PublicKey, amount uint64) error
	// CloseAccount removes an empty token account and moves its rent
	// deposit to the destination. Authority must be the owner of the
	// account. The reclaimed lamports are returned.
	CloseAccount(db ledger.KVStore, account, dest, authority solana.PublicKey) (uint64, error)
}

// BaseController implements Controller on top of the native account
// controller paying for rent.
type BaseController struct {
	mints    MintBucket
	accounts AccountBucket
	system   system.Controller
}

var _ Controller = BaseController{}

// NewController returns a token controller.
func NewController(sys system.Controller) BaseController {
	return BaseController{
		mints:    NewMintBucket(),
		accounts: NewAccountBucket(),
		system:   sys,
	}
}

func (c BaseController) Mint(db ledger.ReadOnlyKVStore, addr solana.PublicKey) (*Mint, error) {
	return c.mints.GetMint(db, addr)
}

func (c BaseController) Account(db ledger.ReadOnlyKVStore, addr solana.PublicKey) (*Account, error) {
	return c.accounts.GetAccount(db, addr)
}

func (c BaseController) Balance(db ledger.ReadOnlyKVStore, addr solana.PublicKey) (uint64, error) {
	acct, err := c.accounts.GetAccount(db, addr)
	switch {
	case err == nil:
		return acct.Amount, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

func (c BaseController) AssociatedAddress(db ledger.ReadOnlyKVStore, owner, mint solana.PublicKey) (solana.PublicKey, error) {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return conf.AssociatedAddress(owner, mint)
}

func (c BaseController) CreateMint(db ledger.KVStore, payer, mint, authority solana.PublicKey, decimals uint8) error {
	if err := c.mints.Has(db, mint[:]); err == nil {
		return errors.Wrapf(errors.ErrDuplicate, "mint %s", mint)
	} else if !errors.ErrNotFound.Is(err) {
		return err
	}
	m := Mint{MintAuthority: authority, Decimals: decimals}
	if err := m.Validate(); err != nil {
		return err
	}
	if _, err := c.system.CreateAccount(db, payer, mint, MintSize); err != nil {
		return errors.Wrap(err, "mint account")
	}
	return c.mints.Put(db, mint[:], &m)
}

func (c BaseController) MintTo(db ledger.KVStore, mint, dest, authority solana.PublicKey, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "zero amount")
	}
	m, err := c.mints.GetMint(db, mint)
	if err != nil {
		return err
	}
	if !m.MintAuthority.Equals(authority) {
		return errors.Wrapf(ErrMintAuthority, "%s cannot mint %s", authority, mint)
	}
	acct, err := c.accounts.GetAccount(db, dest)
	if err != nil {
		return err
	}
	if !acct.Mint.Equals(mint) {
		return errors.Wrapf(ErrMintMismatch, "%s holds %s", dest, acct.Mint)
	}
	supply := m.Supply + amount
	balance := acct.Amount + amount
	if supply < m.Supply || balance < acct.Amount {
		return errors.Wrap(errors.ErrOverflow, "mint amount")
	}
	m.Supply = supply
	acct.Amount = balance
	if err := c.mints.Put(db, mint[:], m); err != nil {
		return err
	}
	return c.accounts.Put(db, dest[:], acct)
}

func (c BaseController) CreateAssociatedAccount(db ledger.KVStore, payer, owner, mint solana.PublicKey) (solana.PublicKey, error) {
	if _, err := c.mints.GetMint(db, mint); err != nil {
		return solana.PublicKey{}, err
	}
	addr, err := c.AssociatedAddress(db, owner, mint)
	if err != nil {
		return solana.PublicKey{}, err
	}
	switch err := c.accounts.Has(db, addr[:]); {
	case err == nil:
		return addr, nil
	case !errors.ErrNotFound.Is(err):
		return solana.PublicKey{}, err
	}
	if _, err := c.system.CreateAccount(db, payer, addr, AccountSize); err != nil {
		return solana.PublicKey{}, errors.Wrap(err, "token account")
	}
	acct := Account{Mint: mint, Owner: owner}
	if err := c.accounts.Put(db, addr[:], &acct); err != nil {
		return solana.PublicKey{}, err
	}
	return addr, nil
}

func (c BaseController) Transfer(db ledger.KVStore, from, to, authority solana.PublicKey, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "zero amount")
	}
	src, err := c.accounts.GetAccount(db, from)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	dst, err := c.accounts.GetAccount(db, to)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if !src.Mint.Equals(dst.Mint) {
		return errors.Wrapf(ErrMintMismatch, "cannot move %s into a %s account", src.Mint, dst.Mint)
	}
	if !src.Owner.Equals(authority) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s does not own %s", authority, from)
	}
	if src.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientFunds, "%s holds %d, %d required", from, src.Amount, amount)
	}
	if from.Equals(to) {
		return nil
	}
	if dst.Amount+amount < dst.Amount {
		return errors.Wrap(errors.ErrOverflow, "destination balance")
	}
	src.Amount -= amount
	dst.Amount += amount
	if err := c.accounts.Put(db, from[:], src); err != nil {
		return err
	}
	return c.accounts.Put(db, to[:], dst)
}

func (c BaseController) CloseAccount(db ledger.KVStore, account, dest, authority solana.PublicKey) (uint64, error) {
	acct, err := c.accounts.GetAccount(db, account)
	if err != nil {
		return 0, err
	}
	if !acct.Owner.Equals(authority) {
		return 0, errors.Wrapf(errors.ErrUnauthorized, "%s does not own %s", authority, account)
	}
	if acct.Amount != 0 {
		return 0, errors.Wrapf(ErrNonZeroBalance, "%s holds %d", account, acct.Amount)
	}
	if err := c.accounts.Delete(db, account[:]); err != nil {
		return 0, err
	}
	return c.system.CloseAccount(db, account, dest)
}
