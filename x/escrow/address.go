package escrow

import (
	"github.com/gagliardetto/solana-go"
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
)

// offerSeed is the namespace of all offer addresses.
var offerSeed = []byte("offer")

func offerSeeds(maker solana.PublicKey, offerID uint64) [][]byte {
	return [][]byte{offerSeed, maker[:], ledger.U64Seed(offerID)}
}

// OfferAddress returns the address of the offer with given id made by given
// maker, together with the bump seed used to derive it.
func OfferAddress(program, maker solana.PublicKey, offerID uint64) (solana.PublicKey, uint8, error) {
	return ledger.ProgramAddress(offerSeeds(maker, offerID), program)
}

// verifyOfferAddress recomputes the address of a stored offer from its
// fields and returns an error unless it equals addr. Only the offer stored
// under that exact address may sign for its vault.
func verifyOfferAddress(program, addr solana.PublicKey, o *Offer) error {
	seeds := append(offerSeeds(o.Maker, o.ID), []byte{o.Bump})
	derived, err := solana.CreateProgramAddress(seeds, program)
	if err != nil {
		return errors.Wrapf(ErrAccountMismatch, "cannot derive offer address: %s", err)
	}
	if !derived.Equals(addr) {
		return errors.Field("Offer", ErrAccountMismatch, "%s is not derived from the stored offer", addr)
	}
	return nil
}

// checkDeclared returns an AccountMismatch field error if an account was
// declared and differs from the expected one. A zero address is not a
// declaration.
func checkDeclared(field string, declared, want solana.PublicKey) error {
	if declared.IsZero() || declared.Equals(want) {
		return nil
	}
	return errors.Field(field, ErrAccountMismatch, "declared %s, expected %s", declared, want)
}
