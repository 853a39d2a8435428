package token

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/ledgertest"
)

func TestCreateMint(t *testing.T) {
	f := newFixture(t)

	m, err := f.ctrl.Mint(f.db, f.mint)
	require.NoError(t, err)
	assert.Equal(t, f.authority, m.MintAuthority)
	assert.Equal(t, uint8(6), m.Decimals)
	assert.Equal(t, uint64(0), m.Supply)

	rent, err := f.sys.Balance(f.db, f.mint)
	require.NoError(t, err)
	assert.Equal(t, uint64(mintRent), rent)

	err = f.ctrl.CreateMint(f.db, f.payer, f.mint, f.authority, 6)
	assert.True(t, errors.ErrDuplicate.Is(err), "%+v", err)

	err = f.ctrl.CreateMint(f.db, f.payer, ledgertest.RandomAddr(t), f.authority, MaxDecimals+1)
	assert.True(t, errors.ErrInput.Is(err), "%+v", err)
}

func TestCreateAssociatedAccount(t *testing.T) {
	f := newFixture(t)
	owner := ledgertest.RandomAddr(t)

	addr, err := f.ctrl.CreateAssociatedAccount(f.db, f.payer, owner, f.mint)
	require.NoError(t, err)

	want, _, err := solana.FindAssociatedTokenAddress(owner, f.mint)
	require.NoError(t, err)
	assert.Equal(t, want, addr)

	acct, err := f.ctrl.Account(f.db, addr)
	require.NoError(t, err)
	assert.Equal(t, owner, acct.Owner)
	assert.Equal(t, f.mint, acct.Mint)

	payerBefore, err := f.sys.Balance(f.db, f.payer)
	require.NoError(t, err)

	// Creating it again is a noop and costs nothing.
	again, err := f.ctrl.CreateAssociatedAccount(f.db, f.payer, owner, f.mint)
	require.NoError(t, err)
	assert.Equal(t, addr, again)
	payerAfter, err := f.sys.Balance(f.db, f.payer)
	require.NoError(t, err)
	assert.Equal(t, payerBefore, payerAfter)

	rent, err := f.sys.Balance(f.db, addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(accountRent), rent)

	_, err = f.ctrl.CreateAssociatedAccount(f.db, f.payer, owner, ledgertest.RandomAddr(t))
	assert.True(t, errors.ErrNotFound.Is(err), "%+v", err)
}

func TestMintTo(t *testing.T) {
	f := newFixture(t)
	_, account := f.holder(t, 0)

	cases := map[string]struct {
		mint      solana.PublicKey
		authority solana.PublicKey
		amount    uint64
		wantErr   *errors.Error
	}{
		"valid": {
			mint:      f.mint,
			authority: f.authority,
			amount:    500,
		},
		"wrong authority": {
			mint:      f.mint,
			authority: f.payer,
			amount:    500,
			wantErr:   ErrMintAuthority,
		},
		"zero amount": {
			mint:      f.mint,
			authority: f.authority,
			wantErr:   errors.ErrInvalidAmount,
		},
		"unknown mint": {
			mint:      ledgertest.RandomAddr(t),
			authority: f.authority,
			amount:    1,
			wantErr:   errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := f.db.CacheWrap()
			err := f.ctrl.MintTo(db, tc.mint, account, tc.authority, tc.amount)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}
			b, err := f.ctrl.Balance(db, account)
			require.NoError(t, err)
			assert.Equal(t, tc.amount, b)
			m, err := f.ctrl.Mint(db, tc.mint)
			require.NoError(t, err)
			assert.Equal(t, tc.amount, m.Supply)
		})
	}
}

func TestTransfer(t *testing.T) {
	f := newFixture(t)
	alice, aliceAcct := f.holder(t, 1000)
	_, bobAcct := f.holder(t, 0)

	other := ledgertest.RandomAddr(t)
	otherAuthority := ledgertest.RandomAddr(t)
	require.NoError(t, f.ctrl.CreateMint(f.db, f.payer, other, otherAuthority, 0))
	otherAcct, err := f.ctrl.CreateAssociatedAccount(f.db, f.payer, alice, other)
	require.NoError(t, err)

	cases := map[string]struct {
		to        solana.PublicKey
		authority solana.PublicKey
		amount    uint64
		wantErr   *errors.Error
		wantFrom  uint64
		wantTo    uint64
	}{
		"valid": {
			to:        bobAcct,
			authority: alice,
			amount:    400,
			wantFrom:  600,
			wantTo:    400,
		},
		"whole balance": {
			to:        bobAcct,
			authority: alice,
			amount:    1000,
			wantFrom:  0,
			wantTo:    1000,
		},
		"not the owner": {
			to:        bobAcct,
			authority: f.authority,
			amount:    1,
			wantErr:   errors.ErrUnauthorized,
			wantFrom:  1000,
		},
		"too much": {
			to:        bobAcct,
			authority: alice,
			amount:    1001,
			wantErr:   errors.ErrInsufficientFunds,
			wantFrom:  1000,
		},
		"different mint": {
			to:        otherAcct,
			authority: alice,
			amount:    1,
			wantErr:   ErrMintMismatch,
			wantFrom:  1000,
		},
		"missing destination": {
			to:        ledgertest.RandomAddr(t),
			authority: alice,
			amount:    1,
			wantErr:   errors.ErrNotFound,
			wantFrom:  1000,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := f.db.CacheWrap()
			err := f.ctrl.Transfer(db, aliceAcct, tc.to, tc.authority, tc.amount)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			b, err := f.ctrl.Balance(db, aliceAcct)
			require.NoError(t, err)
			assert.Equal(t, tc.wantFrom, b)
			b, err = f.ctrl.Balance(db, bobAcct)
			require.NoError(t, err)
			assert.Equal(t, tc.wantTo, b)
		})
	}
}

func TestCloseAccount(t *testing.T) {
	f := newFixture(t)
	owner, empty := f.holder(t, 0)
	rich, full := f.holder(t, 10)
	dest := ledgertest.RandomAddr(t)

	_, err := f.ctrl.CloseAccount(f.db, empty, dest, f.payer)
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)

	_, err = f.ctrl.CloseAccount(f.db, full, dest, rich)
	assert.True(t, ErrNonZeroBalance.Is(err), "%+v", err)

	reclaimed, err := f.ctrl.CloseAccount(f.db, empty, dest, owner)
	require.NoError(t, err)
	assert.Equal(t, uint64(accountRent), reclaimed)

	b, err := f.sys.Balance(f.db, dest)
	require.NoError(t, err)
	assert.Equal(t, uint64(accountRent), b)
	b, err = f.sys.Balance(f.db, empty)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), b)

	_, err = f.ctrl.Account(f.db, empty)
	assert.True(t, errors.ErrNotFound.Is(err), "%+v", err)

	// A closed associated account can be opened again.
	again, err := f.ctrl.CreateAssociatedAccount(f.db, f.payer, owner, f.mint)
	require.NoError(t, err)
	assert.Equal(t, empty, again)
}
