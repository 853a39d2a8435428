package ledgertest

import (
	"context"
	"reflect"
	"testing"

	"github.com/gagliardetto/solana-go"
)

func TestAuthNoSigners(t *testing.T) {
	var a Auth

	if got := a.GetSigners(nil); got != nil {
		t.Fatalf("unexpected signers: %+v", got)
	}

	if a.HasAddress(nil, RandomAddr(t)) {
		t.Fatal("random address must not be present")
	}
}

func TestAuthUsingSignerAndSigners(t *testing.T) {
	keys := []solana.PublicKey{
		RandomAddr(t),
		RandomAddr(t),
		RandomAddr(t),
	}

	a := Auth{
		Signer:  keys[2],
		Signers: keys[:2],
	}

	if got := a.GetSigners(nil); !reflect.DeepEqual(got, keys) {
		for i, k := range got {
			t.Logf("signer %d: %s", i, k)
		}
		t.Fatalf("unexpected signers")
	}

	for i, k := range keys {
		if !a.HasAddress(nil, k) {
			t.Errorf("signer %d (%s) should be present", i, k)
		}
	}

	if a.HasAddress(nil, RandomAddr(t)) {
		t.Fatal("random address must not be present")
	}
}

func TestAuthUsingSigner(t *testing.T) {
	a := Auth{Signer: RandomAddr(t)}

	if got := a.GetSigners(nil); len(got) != 1 || !got[0].Equals(a.Signer) {
		t.Fatalf("unexpected signers: %+v", got)
	}

	if !a.HasAddress(nil, a.Signer) {
		t.Error("signer should be present")
	}

	if a.HasAddress(nil, RandomAddr(t)) {
		t.Fatal("random address must not be present")
	}
}

func TestCtxAuth(t *testing.T) {
	signers := []solana.PublicKey{
		RandomAddr(t),
		RandomAddr(t),
	}
	ctx := context.Background()

	a := CtxAuth{Key: "auth"}
	ctx = a.SetSigners(ctx, signers...)

	if got := a.GetSigners(ctx); !reflect.DeepEqual(got, signers) {
		for i, k := range got {
			t.Logf("signer %d: %s", i, k)
		}
		t.Fatal("unexpected signers")
	}

	for i, k := range signers {
		if !a.HasAddress(ctx, k) {
			t.Errorf("signer %d (%s) should be present", i, k)
		}
	}

	if a.HasAddress(ctx, RandomAddr(t)) {
		t.Fatal("random address must not be present")
	}

	other := CtxAuth{Key: "other"}
	if got := other.GetSigners(ctx); got != nil {
		t.Fatalf("different key must see nothing, got %+v", got)
	}
}

func TestCtxAuthEmptyContext(t *testing.T) {
	ctx := context.Background()
	a := CtxAuth{Key: "auth"}
	if got := a.GetSigners(ctx); got != nil {
		t.Fatalf("want nil, got %+v", got)
	}
	if a.HasAddress(ctx, RandomAddr(t)) {
		t.Fatal("random address must not be present")
	}
}
