package escrow

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/ledgertest"
	"github.com/vaultswap/ledger/store"
	"github.com/vaultswap/ledger/x/system"
	"github.com/vaultswap/ledger/x/token"
)

const (
	sol         = 1000000000
	offerRent   = 1733040
	accountRent = 2039280
)

type router map[string]ledger.Handler

func (r router) Handle(path string, h ledger.Handler) {
	r[path] = h
}

// env is a ledger with two mints. The maker holds 100,000,000 units of
// mint A, the taker holds 100,000,000 units of mint B and both hold 1 SOL.
type env struct {
	db     ledger.CacheableKVStore
	sys    system.BaseController
	tokens token.BaseController
	ctrl   *Controller
	auth   *ledgertest.CtxAuth
	routes router

	faucet  solana.PublicKey
	mintA   solana.PublicKey
	mintB   solana.PublicKey
	maker   solana.PublicKey
	taker   solana.PublicKey
	makerA  solana.PublicKey
	takerB  solana.PublicKey
	program solana.PublicKey
}

func newEnv(t testing.TB) *env {
	t.Helper()
	e := &env{
		db:      store.MemStore(),
		auth:    &ledgertest.CtxAuth{Key: "escrow"},
		routes:  make(router),
		faucet:  ledgertest.RandomAddr(t),
		mintA:   ledgertest.RandomAddr(t),
		mintB:   ledgertest.RandomAddr(t),
		maker:   ledgertest.RandomAddr(t),
		taker:   ledgertest.RandomAddr(t),
		program: DefaultProgramID,
	}
	require.NoError(t, system.SaveConfiguration(e.db, system.DefaultConfiguration(ledgertest.RandomAddr(t))))
	require.NoError(t, token.SaveConfiguration(e.db, token.DefaultConfiguration()))
	require.NoError(t, SaveConfiguration(e.db, DefaultConfiguration()))

	e.sys = system.NewController(system.NewBucket())
	e.tokens = token.NewController(e.sys)
	e.ctrl = NewController(NewBucket(), e.sys, e.tokens)
	RegisterRoutes(e.routes, e.auth, e.ctrl)

	require.NoError(t, e.sys.Credit(e.db, e.faucet, 100*sol))
	require.NoError(t, e.sys.Credit(e.db, e.maker, sol))
	require.NoError(t, e.sys.Credit(e.db, e.taker, sol))
	require.NoError(t, e.tokens.CreateMint(e.db, e.faucet, e.mintA, e.faucet, 6))
	require.NoError(t, e.tokens.CreateMint(e.db, e.faucet, e.mintB, e.faucet, 6))
	e.makerA = e.fund(t, e.maker, e.mintA, 100000000)
	e.takerB = e.fund(t, e.taker, e.mintB, 100000000)
	return e
}

// fund mints tokens into the associated account of the owner. The faucet
// pays for the account.
func (e *env) fund(t testing.TB, owner, mint solana.PublicKey, amount uint64) solana.PublicKey {
	t.Helper()
	addr, err := e.tokens.CreateAssociatedAccount(e.db, e.faucet, owner, mint)
	require.NoError(t, err)
	require.NoError(t, e.tokens.MintTo(e.db, mint, addr, e.faucet, amount))
	return addr
}

// exec runs the message through Check and Deliver, signed by given
// signers. Check must reject a message with the same code as Deliver.
func (e *env) exec(t testing.TB, msg ledger.Msg, signers ...solana.PublicKey) (*ledger.DeliverResult, error) {
	t.Helper()
	h, ok := e.routes[msg.Path()]
	require.True(t, ok, "no handler for %s", msg.Path())

	ctx := e.auth.SetSigners(context.Background(), signers...)
	tx := &ledgertest.Tx{Msg: msg}

	_, checkErr := h.Check(ctx, e.db, tx)
	res, err := h.Deliver(ctx, e.db, tx)

	checkCode, _ := errors.ABCIInfo(checkErr, false)
	deliverCode, _ := errors.ABCIInfo(err, false)
	require.Equal(t, deliverCode, checkCode, "check: %v, deliver: %v", checkErr, err)
	return res, err
}

func (e *env) tokenBalance(t testing.TB, owner, mint solana.PublicKey) uint64 {
	t.Helper()
	addr, err := e.tokens.AssociatedAddress(e.db, owner, mint)
	require.NoError(t, err)
	b, err := e.tokens.Balance(e.db, addr)
	require.NoError(t, err)
	return b
}

func (e *env) lamports(t testing.TB, addr solana.PublicKey) uint64 {
	t.Helper()
	b, err := e.sys.Balance(e.db, addr)
	require.NoError(t, err)
	return b
}

func (e *env) offerAddress(t testing.TB, maker solana.PublicKey, id uint64) solana.PublicKey {
	t.Helper()
	addr, _, err := OfferAddress(e.program, maker, id)
	require.NoError(t, err)
	return addr
}

func (e *env) vaultAddress(t testing.TB, offer solana.PublicKey) solana.PublicKey {
	t.Helper()
	addr, err := e.tokens.AssociatedAddress(e.db, offer, e.mintA)
	require.NoError(t, err)
	return addr
}

// makeOffer offers 10,000,000 A for 100,000,000 B.
func (e *env) makeOffer(t testing.TB, id uint64) solana.PublicKey {
	t.Helper()
	msg := &MakeOfferMsg{
		Maker:         e.maker,
		OfferID:       id,
		OfferedMint:   e.mintA,
		WantedMint:    e.mintB,
		OfferedAmount: 10000000,
		WantedAmount:  100000000,
	}
	res, err := e.exec(t, msg, e.maker)
	require.NoError(t, err)
	var addr solana.PublicKey
	copy(addr[:], res.Data)
	return addr
}

func (e *env) mustOfferAddress(maker solana.PublicKey, id uint64) solana.PublicKey {
	addr, _, err := OfferAddress(e.program, maker, id)
	if err != nil {
		panic(err)
	}
	return addr
}

// offerCount returns the number of stored offers.
func (e *env) offerCount(t testing.TB) int {
	t.Helper()
	qr := ledger.NewQueryRouter()
	RegisterQuery(qr)
	res, err := qr.Handler("/offers").Query(e.db, ledger.PrefixQueryMod, nil)
	require.NoError(t, err)
	return len(res)
}
