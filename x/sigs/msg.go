package sigs

import (
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
)

const (
	pathBumpSequenceMsg = "sigs/bump_sequence"

	maxSequenceIncrement = 1000
	minSequenceIncrement = 1
)

// BumpSequenceMsg increments the sequence of the main signer. Increment is
// the total increment, including the one applied by the signature check.
type BumpSequenceMsg struct {
	Increment uint32
}

var _ ledger.Msg = (*BumpSequenceMsg)(nil)

func (BumpSequenceMsg) Path() string {
	return pathBumpSequenceMsg
}

func (msg *BumpSequenceMsg) Marshal() ([]byte, error) {
	return ledger.MarshalBorsh(msg)
}

func (msg *BumpSequenceMsg) Unmarshal(raw []byte) error {
	return ledger.UnmarshalBorsh(raw, msg)
}

func (msg *BumpSequenceMsg) Validate() error {
	if msg.Increment < minSequenceIncrement {
		return errors.Wrapf(errors.ErrMsg, "increment must be at least %d", minSequenceIncrement)
	}
	if msg.Increment > maxSequenceIncrement {
		return errors.Wrapf(errors.ErrMsg, "increment must not be greater than %d", maxSequenceIncrement)
	}
	return nil
}
