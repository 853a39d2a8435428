package token

import (
	"github.com/gagliardetto/solana-go"
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
)

const (
	pathCreateMintMsg              = "token/create_mint"
	pathMintToMsg                  = "token/mint_to"
	pathCreateAssociatedAccountMsg = "token/create_associated_account"
	pathTransferMsg                = "token/transfer"
	pathCloseAccountMsg            = "token/close_account"
)

// CreateMintMsg creates a new mint. Both the payer and the mint key must
// sign, so that no one can occupy an address it does not control.
type CreateMintMsg struct {
	Payer         solana.PublicKey
	Mint          solana.PublicKey
	MintAuthority solana.PublicKey
	Decimals      uint8
}

var _ ledger.Msg = (*CreateMintMsg)(nil)

func (CreateMintMsg) Path() string {
	return pathCreateMintMsg
}

func (m *CreateMintMsg) Marshal() ([]byte, error) {
	return ledger.MarshalBorsh(m)
}

func (m *CreateMintMsg) Unmarshal(raw []byte) error {
	return ledger.UnmarshalBorsh(raw, m)
}

func (m *CreateMintMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, ledger.ValidateAddress("Payer", m.Payer))
	errs = errors.Append(errs, ledger.ValidateAddress("Mint", m.Mint))
	errs = errors.Append(errs, ledger.ValidateAddress("MintAuthority", m.MintAuthority))
	if m.Decimals > MaxDecimals {
		errs = errors.AppendField(errs, "Decimals", errors.Wrapf(errors.ErrInput, "at most %d", MaxDecimals))
	}
	return errs
}

// MintToMsg issues new units into a token account. It must be signed by
// the mint authority.
type MintToMsg struct {
	Mint        solana.PublicKey
	Destination solana.PublicKey
	Authority   solana.PublicKey
	Amount      uint64
}

var _ ledger.Msg = (*MintToMsg)(nil)

func (MintToMsg) Path() string {
	return pathMintToMsg
}

func (m *MintToMsg) Marshal() ([]byte, error) {
	return ledger.MarshalBorsh(m)
}

func (m *MintToMsg) Unmarshal(raw []byte) error {
	return ledger.UnmarshalBorsh(raw, m)
}

func (m *MintToMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, ledger.ValidateAddress("Mint", m.Mint))
	errs = errors.Append(errs, ledger.ValidateAddress("Destination", m.Destination))
	errs = errors.Append(errs, ledger.ValidateAddress("Authority", m.Authority))
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrInvalidAmount)
	}
	return errs
}

// CreateAssociatedAccountMsg ensures the associated token account of the
// owner exists. Anyone can pay for it.
type CreateAssociatedAccountMsg struct {
	Payer solana.PublicKey
	Owner solana.PublicKey
	Mint  solana.PublicKey
}

var _ ledger.Msg = (*CreateAssociatedAccountMsg)(nil)

func (CreateAssociatedAccountMsg) Path() string {
	return pathCreateAssociatedAccountMsg
}

func (m *CreateAssociatedAccountMsg) Marshal() ([]byte, error) {
	return ledger.MarshalBorsh(m)
}

func (m *CreateAssociatedAccountMsg) Unmarshal(raw []byte) error {
	return ledger.UnmarshalBorsh(raw, m)
}

func (m *CreateAssociatedAccountMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, ledger.ValidateAddress("Payer", m.Payer))
	errs = errors.Append(errs, ledger.ValidateAddress("Owner", m.Owner))
	errs = errors.Append(errs, ledger.ValidateAddress("Mint", m.Mint))
	return errs
}

// TransferMsg moves units between token accounts. It must be signed by the
// owner of the source account.
type TransferMsg struct {
	Source      solana.PublicKey
	Destination solana.PublicKey
	Authority   solana.PublicKey
	Amount      uint64
}

var _ ledger.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string {
	return pathTransferMsg
}

func (m *TransferMsg) Marshal() ([]byte, error) {
	return ledger.MarshalBorsh(m)
}

func (m *TransferMsg) Unmarshal(raw []byte) error {
	return ledger.UnmarshalBorsh(raw, m)
}

func (m *TransferMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, ledger.ValidateAddress("Source", m.Source))
	errs = errors.Append(errs, ledger.ValidateAddress("Destination", m.Destination))
	errs = errors.Append(errs, ledger.ValidateAddress("Authority", m.Authority))
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrInvalidAmount)
	}
	return errs
}

// CloseAccountMsg removes an empty token account. It must be signed by the
// owner of the account.
type CloseAccountMsg struct {
	Account     solana.PublicKey
	Destination solana.PublicKey
	Authority   solana.PublicKey
}

var _ ledger.Msg = (*CloseAccountMsg)(nil)

func (CloseAccountMsg) Path() string {
	return pathCloseAccountMsg
}

func (m *CloseAccountMsg) Marshal() ([]byte, error) {
	return ledger.MarshalBorsh(m)
}

func (m *CloseAccountMsg) Unmarshal(raw []byte) error {
	return ledger.UnmarshalBorsh(raw, m)
}

func (m *CloseAccountMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, ledger.ValidateAddress("Account", m.Account))
	errs = errors.Append(errs, ledger.ValidateAddress("Destination", m.Destination))
	errs = errors.Append(errs, ledger.ValidateAddress("Authority", m.Authority))
	return errs
}
