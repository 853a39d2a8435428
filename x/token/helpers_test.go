package token

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/ledgertest"
	"github.com/vaultswap/ledger/store"
	"github.com/vaultswap/ledger/x/system"
)

const (
	mintRent    = 1461600
	accountRent = 2039280
)

type fixture struct {
	db        ledger.CacheableKVStore
	sys       system.BaseController
	ctrl      BaseController
	payer     solana.PublicKey
	mint      solana.PublicKey
	authority solana.PublicKey
}

// newFixture returns a store with both configurations saved, a payer
// holding 1 SOL and an existing mint.
func newFixture(t testing.TB) *fixture {
	t.Helper()
	f := &fixture{
		db:        store.MemStore(),
		payer:     ledgertest.RandomAddr(t),
		mint:      ledgertest.RandomAddr(t),
		authority: ledgertest.RandomAddr(t),
	}
	require.NoError(t, system.SaveConfiguration(f.db, system.DefaultConfiguration(ledgertest.RandomAddr(t))))
	require.NoError(t, SaveConfiguration(f.db, DefaultConfiguration()))
	f.sys = system.NewController(system.NewBucket())
	f.ctrl = NewController(f.sys)
	require.NoError(t, f.sys.Credit(f.db, f.payer, 1000000000))
	require.NoError(t, f.ctrl.CreateMint(f.db, f.payer, f.mint, f.authority, 6))
	return f
}

// holder creates the associated token account of a new owner holding
// given amount.
func (f *fixture) holder(t testing.TB, amount uint64) (owner, account solana.PublicKey) {
	t.Helper()
	owner = ledgertest.RandomAddr(t)
	account, err := f.ctrl.CreateAssociatedAccount(f.db, f.payer, owner, f.mint)
	require.NoError(t, err)
	if amount > 0 {
		require.NoError(t, f.ctrl.MintTo(f.db, f.mint, account, f.authority, amount))
	}
	return owner, account
}
