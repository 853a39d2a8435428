package sigs

import (
	"github.com/gagliardetto/solana-go"
	"github.com/vaultswap/ledger/errors"
)

// StdSignature is a signature of a transaction, together with the public key
// that produced it and the sequence it was produced for.
type StdSignature struct {
	PubKey    solana.PublicKey
	Signature solana.Signature
	Sequence  int64
}

// SignedTx represents a transaction that contains signatures,
// which can be verified by the sigs.Decorator
type SignedTx interface {
	// GetSignBytes returns the canonical byte representation of the
	// transaction without the signatures.
	//
	// Helpful to store original, unparsed bytes here, just in case.
	GetSignBytes() ([]byte, error)

	// GetSignatures returns the signature of signers who signed the Msg.
	GetSignatures() []*StdSignature
}

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if s.PubKey.IsZero() {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if s.Signature == (solana.Signature{}) {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}
