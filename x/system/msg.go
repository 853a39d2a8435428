package system

import (
	"github.com/gagliardetto/solana-go"
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
)

const pathTransferMsg = "system/transfer"

// TransferMsg moves lamports between two addresses. It must be signed by
// the source.
type TransferMsg struct {
	From     solana.PublicKey
	To       solana.PublicKey
	Lamports uint64
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
	errs = errors.Append(errs, ledger.ValidateAddress("From", m.From))
	errs = errors.Append(errs, ledger.ValidateAddress("To", m.To))
	if m.Lamports == 0 {
		errs = errors.AppendField(errs, "Lamports", errors.ErrInvalidAmount)
	}
	return errs
}
