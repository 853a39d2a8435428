package escrow

import (
	"github.com/gagliardetto/solana-go"
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/orm"
)

// OfferSize is the state size of an offer record, including the
// discriminator. It is used to compute the rent deposit.
const OfferSize = ledger.DiscriminatorSize + 8 + 3*32 + 8 + 1

// Offer is one outstanding swap. It is stored under its derived address
// and owns the vault holding the offered tokens.
type Offer struct {
	// ID is chosen by the maker and is part of the offer address.
	ID           uint64
	Maker        solana.PublicKey
	OfferedMint  solana.PublicKey
	WantedMint   solana.PublicKey
	WantedAmount uint64
	// Bump is the seed completing the address derivation.
	Bump uint8
}

var _ orm.Model = (*Offer)(nil)

func (o *Offer) Marshal() ([]byte, error) {
	return ledger.MarshalAccount("Offer", o)
}

func (o *Offer) Unmarshal(raw []byte) error {
	return ledger.UnmarshalAccount("Offer", raw, o)
}

func (o *Offer) Validate() error {
	var errs error
	errs = errors.Append(errs, ledger.ValidateAddress("Maker", o.Maker))
	errs = errors.Append(errs, ledger.ValidateAddress("OfferedMint", o.OfferedMint))
	errs = errors.Append(errs, ledger.ValidateAddress("WantedMint", o.WantedMint))
	if o.WantedAmount == 0 {
		errs = errors.AppendField(errs, "WantedAmount", errors.ErrInvalidAmount)
	}
	return errs
}

// Bucket stores offers by their address.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket returns a bucket for offers.
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket("offers"),
	}
}

// GetOffer returns the offer stored under given address.
// ErrOfferNotFound is returned if there is none.
func (b Bucket) GetOffer(db ledger.ReadOnlyKVStore, addr solana.PublicKey) (*Offer, error) {
	var o Offer
	switch err := b.One(db, addr[:], &o); {
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrOfferNotFound, "%s", addr)
	case err != nil:
		return nil, err
	}
	return &o, nil
}
