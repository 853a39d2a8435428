package ledgertest

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/vaultswap/ledger"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced signers.
// You can use either Signer or Signers (or both) attributes to reference
// public keys. Each time all signers (regardless which attribute) are
// considered.
type Auth struct {
	// Signer represents an authentication of a single signer. This is a
	// convinience attribute when creating an authentication method for a
	// single signer.
	Signer solana.PublicKey

	// Signers represents an authentication of multiple signers.
	Signers []solana.PublicKey
}

func (a *Auth) GetSigners(ledger.Context) []solana.PublicKey {
	if !a.Signer.IsZero() {
		signers := make([]solana.PublicKey, 0, len(a.Signers)+1)
		return append(append(signers, a.Signers...), a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx ledger.Context, addr solana.PublicKey) bool {
	for _, s := range a.GetSigners(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve signers.
type CtxAuth struct {
	// Key used to set and retrieve signers from the context. For
	// convinience only string type keys are allowed.
	Key string
}

type ctxAuthKey string

func (a *CtxAuth) SetSigners(ctx ledger.Context, signers ...solana.PublicKey) ledger.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), signers)
}

func (a *CtxAuth) GetSigners(ctx ledger.Context) []solana.PublicKey {
	val := ctx.Value(ctxAuthKey(a.Key))
	if val == nil {
		return nil
	}
	signers, ok := val.([]solana.PublicKey)
	if !ok {
		panic(fmt.Sprintf("instead of []solana.PublicKey got %T", val))
	}
	return signers
}

func (a *CtxAuth) HasAddress(ctx ledger.Context, addr solana.PublicKey) bool {
	for _, s := range a.GetSigners(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
