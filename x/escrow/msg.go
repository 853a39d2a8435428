package escrow

import (
	"github.com/gagliardetto/solana-go"
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
)

const (
	pathMakeOfferMsg  = "escrow/make_offer"
	pathTakeOfferMsg  = "escrow/take_offer"
	pathCloseOfferMsg = "escrow/close_offer"
)

// MakeOfferMsg locks OfferedAmount of OfferedMint in a new vault, asking
// for WantedAmount of WantedMint in exchange. It must be signed by the
// maker.
//
// Offer, Vault and Source are optional. When set, they must match the
// accounts the offer resolves to. Source defaults to the associated token
// account of the maker.
type MakeOfferMsg struct {
	Maker         solana.PublicKey
	OfferID       uint64
	OfferedMint   solana.PublicKey
	WantedMint    solana.PublicKey
	OfferedAmount uint64
	WantedAmount  uint64

	Offer  solana.PublicKey
	Vault  solana.PublicKey
	Source solana.PublicKey
}

var _ ledger.Msg = (*MakeOfferMsg)(nil)

func (MakeOfferMsg) Path() string {
	return pathMakeOfferMsg
}

func (m *MakeOfferMsg) Marshal() ([]byte, error) {
	return ledger.MarshalBorsh(m)
}

func (m *MakeOfferMsg) Unmarshal(raw []byte) error {
	return ledger.UnmarshalBorsh(raw, m)
}

func (m *MakeOfferMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, ledger.ValidateAddress("Maker", m.Maker))
	errs = errors.Append(errs, ledger.ValidateAddress("OfferedMint", m.OfferedMint))
	errs = errors.Append(errs, ledger.ValidateAddress("WantedMint", m.WantedMint))
	if m.OfferedAmount == 0 {
		errs = errors.AppendField(errs, "OfferedAmount", errors.ErrInvalidAmount)
	}
	if m.WantedAmount == 0 {
		errs = errors.AppendField(errs, "WantedAmount", errors.ErrInvalidAmount)
	}
	return errs
}

// TakeOfferMsg accepts the offer stored under Offer. It must be signed by
// the taker, who pays the wanted tokens from its associated token account
// and receives the vault content in its associated token account of the
// offered mint.
//
// Maker, OfferedMint, WantedMint and Vault are optional. When set, they must
// match the stored offer.
type TakeOfferMsg struct {
	Taker solana.PublicKey
	Offer solana.PublicKey

	Maker       solana.PublicKey
	OfferedMint solana.PublicKey
	WantedMint  solana.PublicKey
	Vault       solana.PublicKey
}

var _ ledger.Msg = (*TakeOfferMsg)(nil)

func (TakeOfferMsg) Path() string {
	return pathTakeOfferMsg
}

func (m *TakeOfferMsg) Marshal() ([]byte, error) {
	return ledger.MarshalBorsh(m)
}

func (m *TakeOfferMsg) Unmarshal(raw []byte) error {
	return ledger.UnmarshalBorsh(raw, m)
}

func (m *TakeOfferMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, ledger.ValidateAddress("Taker", m.Taker))
	errs = errors.Append(errs, ledger.ValidateAddress("Offer", m.Offer))
	return errs
}

// CloseOfferMsg cancels an offer and returns the vault content to the
// maker. It must be signed by the maker. The offer address is derived from
// the maker and OfferID.
//
// Offer, OfferedMint, Vault and Destination are optional. When set, they
// must match the stored offer. Destination defaults to the associated token
// account of the maker.
type CloseOfferMsg struct {
	Maker   solana.PublicKey
	OfferID uint64

	Offer       solana.PublicKey
	OfferedMint solana.PublicKey
	Vault       solana.PublicKey
	Destination solana.PublicKey
}

var _ ledger.Msg = (*CloseOfferMsg)(nil)

func (CloseOfferMsg) Path() string {
	return pathCloseOfferMsg
}

func (m *CloseOfferMsg) Marshal() ([]byte, error) {
	return ledger.MarshalBorsh(m)
}

func (m *CloseOfferMsg) Unmarshal(raw []byte) error {
	return ledger.UnmarshalBorsh(raw, m)
}

func (m *CloseOfferMsg) Validate() error {
	return ledger.ValidateAddress("Maker", m.Maker)
}
