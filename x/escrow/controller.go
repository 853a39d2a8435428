package escrow

import (
	"github.com/gagliardetto/solana-go"
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/x/system"
	"github.com/vaultswap/ledger/x/token"
)

// Controller executes the offer state transitions. Signatures are not
// checked here, the caller must ensure the maker or the taker signed.
// A failing call can leave partial writes behind, so it must run on a store
// that is discarded on error.
type Controller struct {
	bucket Bucket
	system system.Controller
	tokens token.Controller
}

// NewController returns a controller moving lamports and tokens with given
// controllers.
func NewController(bucket Bucket, sys system.Controller, tokens token.Controller) *Controller {
	return &Controller{
		bucket: bucket,
		system: sys,
		tokens: tokens,
	}
}

// Offer returns the offer stored under given address.
func (c *Controller) Offer(db ledger.ReadOnlyKVStore, addr solana.PublicKey) (*Offer, error) {
	return c.bucket.GetOffer(db, addr)
}

// Vault returns the vault address of an offer.
func (c *Controller) Vault(db ledger.ReadOnlyKVStore, offerAddr solana.PublicKey, o *Offer) (solana.PublicKey, error) {
	return c.tokens.AssociatedAddress(db, offerAddr, o.OfferedMint)
}

// MakeOffer creates the offer record and its vault and funds the vault from
// the maker. Both rent deposits are paid by the maker. The address of the
// new offer is returned.
func (c *Controller) MakeOffer(db ledger.KVStore, msg *MakeOfferMsg) (solana.PublicKey, *Offer, error) {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}
	addr, bump, err := OfferAddress(conf.ProgramID, msg.Maker, msg.OfferID)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}
	if err := checkDeclared("Offer", msg.Offer, addr); err != nil {
		return solana.PublicKey{}, nil, err
	}
	if err := c.ensureFree(db, addr); err != nil {
		return solana.PublicKey{}, nil, err
	}

	offer := &Offer{
		ID:           msg.OfferID,
		Maker:        msg.Maker,
		OfferedMint:  msg.OfferedMint,
		WantedMint:   msg.WantedMint,
		WantedAmount: msg.WantedAmount,
		Bump:         bump,
	}
	vault, err := c.Vault(db, addr, offer)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}
	if err := checkDeclared("Vault", msg.Vault, vault); err != nil {
		return solana.PublicKey{}, nil, err
	}
	if err := c.ensureFree(db, vault); err != nil {
		return solana.PublicKey{}, nil, err
	}

	if _, err := c.tokens.Mint(db, msg.WantedMint); err != nil {
		if errors.ErrNotFound.Is(err) {
			return solana.PublicKey{}, nil, errors.Field("WantedMint", ErrAccountMismatch, "%s is not a mint", msg.WantedMint)
		}
		return solana.PublicKey{}, nil, err
	}
	source, err := c.source(db, msg)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}

	if _, err := c.system.CreateAccount(db, msg.Maker, addr, OfferSize); err != nil {
		return solana.PublicKey{}, nil, errors.Wrap(err, "offer account")
	}
	if err := c.bucket.Put(db, addr[:], offer); err != nil {
		return solana.PublicKey{}, nil, errors.Wrap(err, "cannot store offer")
	}
	if _, err := c.tokens.CreateAssociatedAccount(db, msg.Maker, addr, msg.OfferedMint); err != nil {
		return solana.PublicKey{}, nil, errors.Wrap(err, "vault")
	}
	if err := c.tokens.Transfer(db, source, vault, msg.Maker, msg.OfferedAmount); err != nil {
		return solana.PublicKey{}, nil, errors.Wrap(err, "fund vault")
	}
	return addr, offer, nil
}

// ensureFree fails with ErrDuplicateOffer if anything occupies given
// address.
func (c *Controller) ensureFree(db ledger.ReadOnlyKVStore, addr solana.PublicKey) error {
	switch err := c.bucket.Has(db, addr[:]); {
	case err == nil:
		return errors.Wrapf(ErrDuplicateOffer, "%s", addr)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	lamports, err := c.system.Balance(db, addr)
	if err != nil {
		return err
	}
	if lamports != 0 {
		return errors.Wrapf(ErrDuplicateOffer, "%s is in use", addr)
	}
	return nil
}

// source returns the token account funding a new offer, after making sure
// it can cover the offered amount.
func (c *Controller) source(db ledger.ReadOnlyKVStore, msg *MakeOfferMsg) (solana.PublicKey, error) {
	source := msg.Source
	if source.IsZero() {
		ata, err := c.tokens.AssociatedAddress(db, msg.Maker, msg.OfferedMint)
		if err != nil {
			return solana.PublicKey{}, err
		}
		source = ata
	}
	acct, err := c.tokens.Account(db, source)
	switch {
	case errors.ErrNotFound.Is(err):
		return solana.PublicKey{}, errors.Wrapf(errors.ErrInsufficientFunds, "no %s token account", msg.OfferedMint)
	case err != nil:
		return solana.PublicKey{}, err
	}
	if !acct.Mint.Equals(msg.OfferedMint) {
		return solana.PublicKey{}, errors.Field("Source", ErrAccountMismatch, "holds %s, not %s", acct.Mint, msg.OfferedMint)
	}
	if !acct.Owner.Equals(msg.Maker) {
		return solana.PublicKey{}, errors.Field("Source", errors.ErrUnauthorized, "owned by %s", acct.Owner)
	}
	if acct.Amount < msg.OfferedAmount {
		return solana.PublicKey{}, errors.Wrapf(errors.ErrInsufficientFunds, "source holds %d, %d offered", acct.Amount, msg.OfferedAmount)
	}
	return source, nil
}

// TakeOffer swaps the wanted tokens of the taker for the vault content and
// removes the offer. Missing associated token accounts of the maker and the
// taker are created and paid for by the taker.
func (c *Controller) TakeOffer(db ledger.KVStore, msg *TakeOfferMsg) (*Offer, error) {
	offer, vault, err := c.load(db, msg.Offer)
	if err != nil {
		return nil, err
	}
	var errs error
	errs = errors.Append(errs, checkDeclared("Maker", msg.Maker, offer.Maker))
	errs = errors.Append(errs, checkDeclared("OfferedMint", msg.OfferedMint, offer.OfferedMint))
	errs = errors.Append(errs, checkDeclared("WantedMint", msg.WantedMint, offer.WantedMint))
	errs = errors.Append(errs, checkDeclared("Vault", msg.Vault, vault))
	if errs != nil {
		return nil, errs
	}

	payment, err := c.tokens.AssociatedAddress(db, msg.Taker, offer.WantedMint)
	if err != nil {
		return nil, err
	}
	balance, err := c.tokens.Balance(db, payment)
	if err != nil {
		return nil, err
	}
	if balance < offer.WantedAmount {
		return nil, errors.Wrapf(errors.ErrInsufficientFunds, "taker holds %d, %d wanted", balance, offer.WantedAmount)
	}

	makerDest, err := c.tokens.CreateAssociatedAccount(db, msg.Taker, offer.Maker, offer.WantedMint)
	if err != nil {
		return nil, errors.Wrap(err, "maker token account")
	}
	if err := c.tokens.Transfer(db, payment, makerDest, msg.Taker, offer.WantedAmount); err != nil {
		return nil, errors.Wrap(err, "pay maker")
	}
	takerDest, err := c.tokens.CreateAssociatedAccount(db, msg.Taker, msg.Taker, offer.OfferedMint)
	if err != nil {
		return nil, errors.Wrap(err, "taker token account")
	}
	if err := c.release(db, msg.Offer, offer, vault, takerDest); err != nil {
		return nil, err
	}
	return offer, nil
}

// CloseOffer returns the vault content to the maker and removes the offer.
// The address of the closed offer is returned.
func (c *Controller) CloseOffer(db ledger.KVStore, msg *CloseOfferMsg) (solana.PublicKey, *Offer, error) {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}
	addr, _, err := OfferAddress(conf.ProgramID, msg.Maker, msg.OfferID)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}
	if !msg.Offer.IsZero() && !msg.Offer.Equals(addr) {
		// The declared offer decides between an unknown offer, an offer
		// of someone else and an inconsistent declaration.
		declared, err := c.bucket.GetOffer(db, msg.Offer)
		if err != nil {
			return solana.PublicKey{}, nil, err
		}
		if !declared.Maker.Equals(msg.Maker) {
			return solana.PublicKey{}, nil, errors.Wrapf(errors.ErrUnauthorized, "offer made by %s", declared.Maker)
		}
		return solana.PublicKey{}, nil, checkDeclared("Offer", msg.Offer, addr)
	}

	offer, vault, err := c.load(db, addr)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}
	if !offer.Maker.Equals(msg.Maker) {
		return solana.PublicKey{}, nil, errors.Wrapf(errors.ErrUnauthorized, "offer made by %s", offer.Maker)
	}
	var errs error
	errs = errors.Append(errs, checkDeclared("OfferedMint", msg.OfferedMint, offer.OfferedMint))
	errs = errors.Append(errs, checkDeclared("Vault", msg.Vault, vault))
	if errs != nil {
		return solana.PublicKey{}, nil, errs
	}

	dest := msg.Destination
	if dest.IsZero() {
		dest, err = c.tokens.CreateAssociatedAccount(db, msg.Maker, msg.Maker, offer.OfferedMint)
		if err != nil {
			return solana.PublicKey{}, nil, errors.Wrap(err, "maker token account")
		}
	} else {
		acct, err := c.tokens.Account(db, dest)
		if err != nil {
			return solana.PublicKey{}, nil, errors.Field("Destination", ErrAccountMismatch, "%s", err)
		}
		if !acct.Mint.Equals(offer.OfferedMint) || !acct.Owner.Equals(offer.Maker) {
			return solana.PublicKey{}, nil, errors.Field("Destination", ErrAccountMismatch, "not a %s account of the maker", offer.OfferedMint)
		}
	}
	if err := c.release(db, addr, offer, vault, dest); err != nil {
		return solana.PublicKey{}, nil, err
	}
	return addr, offer, nil
}

// load returns a stored offer and its vault address, after proving that
// the offer is the authority of the vault.
func (c *Controller) load(db ledger.ReadOnlyKVStore, addr solana.PublicKey) (*Offer, solana.PublicKey, error) {
	offer, err := c.bucket.GetOffer(db, addr)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	if err := verifyOfferAddress(conf.ProgramID, addr, offer); err != nil {
		return nil, solana.PublicKey{}, err
	}
	vault, err := c.Vault(db, addr, offer)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	return offer, vault, nil
}

// release moves the whole vault content to dest, closes the vault and
// deletes the offer. Both rent deposits go to the maker.
func (c *Controller) release(db ledger.KVStore, addr solana.PublicKey, offer *Offer, vault, dest solana.PublicKey) error {
	amount, err := c.tokens.Balance(db, vault)
	if err != nil {
		return err
	}
	if amount > 0 {
		if err := c.tokens.Transfer(db, vault, dest, addr, amount); err != nil {
			return errors.Wrap(err, "empty vault")
		}
	}
	if _, err := c.tokens.CloseAccount(db, vault, offer.Maker, addr); err != nil {
		return errors.Wrap(err, "close vault")
	}
	if err := c.bucket.Delete(db, addr[:]); err != nil {
		return errors.Wrap(err, "delete offer")
	}
	if _, err := c.system.CloseAccount(db, addr, offer.Maker); err != nil {
		return errors.Wrap(err, "close offer account")
	}
	return nil
}
