package ledger

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
	"github.com/vaultswap/ledger/errors"
)

// ProgramAddress finds a program derived address for given seeds. Bump seeds
// are tried from 255 down and the first address that is not a valid ed25519
// point is returned together with the bump used. Such an address has no
// private key and can be signed for only by the program owning the seeds.
func ProgramAddress(seeds [][]byte, program solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(seeds, program)
	if err != nil {
		return solana.PublicKey{}, 0, errors.Wrapf(errors.ErrInput, "cannot derive program address: %s", err)
	}
	return addr, bump, nil
}

// AssociatedTokenAddress returns the canonical token account address holding
// tokens of given mint on behalf of the owner. The owner can be a program
// derived address.
func AssociatedTokenAddress(owner, mint, tokenProgram, ataProgram solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{owner[:], tokenProgram[:], mint[:]}
	addr, _, err := ProgramAddress(seeds, ataProgram)
	return addr, err
}

// U64Seed returns the little endian representation of given value, as used
// when a number is part of derivation seeds.
func U64Seed(v uint64) []byte {
	raw := make([]byte, 8)
	binary.LittleEndian.PutUint64(raw, v)
	return raw
}

// ParseAddress decodes a base58 encoded address.
func ParseAddress(s string) (solana.PublicKey, error) {
	addr, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, errors.Wrapf(errors.ErrInput, "address %q: %s", s, err)
	}
	return addr, nil
}

// ValidateAddress returns a field error if given address is not set.
func ValidateAddress(field string, addr solana.PublicKey) error {
	if addr.IsZero() {
		return errors.Field(field, errors.ErrEmpty, "address required")
	}
	return nil
}
