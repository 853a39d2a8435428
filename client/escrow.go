package client

import (
	"github.com/gagliardetto/solana-go"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/x/escrow"
)

// OfferAddress derives the address of the offer a maker creates with given
// id.
func (c *Client) OfferAddress(maker solana.PublicKey, offerID uint64) (solana.PublicKey, error) {
	addr, _, err := escrow.OfferAddress(c.escrow.ProgramID, maker, offerID)
	return addr, err
}

// Offer returns the offer stored under given address. ErrOfferNotFound is
// returned if no such offer is open.
func (c *Client) Offer(addr solana.PublicKey) (*escrow.Offer, error) {
	var o escrow.Offer
	err := c.queryOne("/offers", addr[:], &o)
	if errors.ErrNotFound.Is(err) {
		return nil, errors.Wrapf(escrow.ErrOfferNotFound, "offer %s", addr)
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// MakeOffer locks offeredAmount of offeredMint owned by the maker and asks
// for wantedAmount of wantedMint in exchange. It returns the offer address.
func (c *Client) MakeOffer(maker solana.PrivateKey, offerID uint64, offeredMint, wantedMint solana.PublicKey, offeredAmount, wantedAmount uint64) (solana.PublicKey, error) {
	res, err := c.Submit([]solana.PrivateKey{maker}, &escrow.MakeOfferMsg{
		Maker:         maker.PublicKey(),
		OfferID:       offerID,
		OfferedMint:   offeredMint,
		WantedMint:    wantedMint,
		OfferedAmount: offeredAmount,
		WantedAmount:  wantedAmount,
	})
	if err != nil {
		return solana.PublicKey{}, err
	}
	return solana.PublicKeyFromBytes(res.Data), nil
}

// TakeOffer accepts the offer stored under given address. The taker pays
// the wanted amount and receives the vault content.
func (c *Client) TakeOffer(taker solana.PrivateKey, offer solana.PublicKey) error {
	_, err := c.Submit([]solana.PrivateKey{taker}, &escrow.TakeOfferMsg{
		Taker: taker.PublicKey(),
		Offer: offer,
	})
	return err
}

// CloseOffer cancels the offer the maker created with given id and returns
// the vault content to the maker.
func (c *Client) CloseOffer(maker solana.PrivateKey, offerID uint64) error {
	_, err := c.Submit([]solana.PrivateKey{maker}, &escrow.CloseOfferMsg{
		Maker:   maker.PublicKey(),
		OfferID: offerID,
	})
	return err
}

// IsResolvedElsewhere returns true if the failure means the offer was
// already taken or closed by another transaction.
func IsResolvedElsewhere(err error) bool {
	return escrow.ErrOfferNotFound.Is(err)
}
