package ledgertest

import (
	"testing"

	"github.com/gagliardetto/solana-go"
)

// NewKey returns a new random ed25519 private key.
func NewKey(t testing.TB) solana.PrivateKey {
	t.Helper()
	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		t.Fatalf("cannot generate key: %s", err)
	}
	return key
}

// RandomAddr returns the public key of a new random private key.
func RandomAddr(t testing.TB) solana.PublicKey {
	t.Helper()
	return NewKey(t).PublicKey()
}

// ParseAddress decodes a base58 address or fails the test.
func ParseAddress(t testing.TB, encoded string) solana.PublicKey {
	t.Helper()
	addr, err := solana.PublicKeyFromBase58(encoded)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encoded, err)
	}
	return addr
}
