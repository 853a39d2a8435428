package x

import (
	"github.com/gagliardetto/solana-go"
	"github.com/vaultswap/ledger"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding x/sigs for all extensions.
type Authenticator interface {
	// GetSigners reveals all public keys that signed the transaction.
	GetSigners(ledger.Context) []solana.PublicKey
	// HasAddress checks if given address signed the transaction.
	HasAddress(ledger.Context, solana.PublicKey) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetSigners combines all signers from all Authenticators
func (m MultiAuth) GetSigners(ctx ledger.Context) []solana.PublicKey {
	var res []solana.PublicKey
	for _, impl := range m.impls {
		add := impl.GetSigners(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx ledger.Context, addr solana.PublicKey) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first signer if any, otherwise a zero key. The
// main signer pays the transaction fee.
func MainSigner(ctx ledger.Context, auth Authenticator) solana.PublicKey {
	signers := auth.GetSigners(ctx)
	if len(signers) == 0 {
		return solana.PublicKey{}
	}
	return signers[0]
}

// HasAllAddresses returns true if all elements in required are
// also in context.
func HasAllAddresses(ctx ledger.Context, auth Authenticator, required []solana.PublicKey) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

// HasNAddresses returns true if at least n elements in requested are
// also in context.
func HasNAddresses(ctx ledger.Context, auth Authenticator, required []solana.PublicKey, n int) bool {
	// Special case: is this an error???
	if n <= 0 {
		return true
	}

	for _, r := range required {
		if auth.HasAddress(ctx, r) {
			n--
			if n == 0 {
				return true
			}
		}
	}
	return false
}
