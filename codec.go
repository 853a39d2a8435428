package ledger

import (
	"bytes"
	"crypto/sha256"

	bin "github.com/gagliardetto/binary"
	"github.com/vaultswap/ledger/errors"
)

// DiscriminatorSize is the length of the prefix that identifies the type of
// an account stored in the state.
const DiscriminatorSize = 8

// MarshalBorsh serializes given value using borsh encoding. Values are
// encoded field by field, in the order of declaration, using fixed width
// little endian integers.
func MarshalBorsh(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := bin.NewBorshEncoder(&buf).Encode(v); err != nil {
		return nil, errors.Wrapf(errors.ErrType, "borsh encode %T: %s", v, err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBorsh deserializes borsh encoded data into given destination.
// Trailing bytes are not allowed.
func UnmarshalBorsh(data []byte, v interface{}) error {
	dec := bin.NewBorshDecoder(data)
	if err := dec.Decode(v); err != nil {
		return errors.Wrapf(errors.ErrInput, "borsh decode %T: %s", v, err)
	}
	if n := dec.Remaining(); n != 0 {
		return errors.Wrapf(errors.ErrInput, "borsh decode %T: %d trailing bytes", v, n)
	}
	return nil
}

// Discriminator returns the type prefix of an account with given name.
func Discriminator(name string) [DiscriminatorSize]byte {
	var d [DiscriminatorSize]byte
	h := sha256.Sum256([]byte("account:" + name))
	copy(d[:], h[:DiscriminatorSize])
	return d
}

// MarshalAccount serializes an account state. Serialized value is prefixed
// with the discriminator of the account name.
func MarshalAccount(name string, v interface{}) ([]byte, error) {
	raw, err := MarshalBorsh(v)
	if err != nil {
		return nil, err
	}
	d := Discriminator(name)
	return append(d[:], raw...), nil
}

// UnmarshalAccount is the inverse of MarshalAccount. It fails if the
// discriminator does not match the account name.
func UnmarshalAccount(name string, data []byte, v interface{}) error {
	if len(data) < DiscriminatorSize {
		return errors.Wrapf(errors.ErrInput, "%s account data too short", name)
	}
	d := Discriminator(name)
	if !bytes.Equal(d[:], data[:DiscriminatorSize]) {
		return errors.Wrapf(errors.ErrType, "not a %s account", name)
	}
	return UnmarshalBorsh(data[DiscriminatorSize:], v)
}
