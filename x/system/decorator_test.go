package system

import (
	"context"
	"math"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/ledgertest"
	"github.com/vaultswap/ledger/store"
)

func TestFeeDecorator(t *testing.T) {
	payer := ledgertest.RandomAddr(t)
	second := ledgertest.RandomAddr(t)
	poor := ledgertest.RandomAddr(t)
	collector := ledgertest.RandomAddr(t)

	cases := map[string]struct {
		signers       []solana.PublicKey
		wantErr       *errors.Error
		wantPayer     uint64
		wantCollector uint64
		wantGas       int64
	}{
		"no signers, no fee": {
			wantPayer: 100000,
		},
		"one signature": {
			signers:       []solana.PublicKey{payer},
			wantPayer:     95000,
			wantCollector: 5000,
			wantGas:       5000,
		},
		"fee is per signature, paid by the main signer": {
			signers:       []solana.PublicKey{payer, second},
			wantPayer:     90000,
			wantCollector: 10000,
			wantGas:       10000,
		},
		"payer cannot cover the fee": {
			signers:   []solana.PublicKey{poor},
			wantErr:   errors.ErrInsufficientFunds,
			wantPayer: 100000,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			require.NoError(t, SaveConfiguration(db, DefaultConfiguration(collector)))
			ctrl := NewController(NewBucket())
			require.NoError(t, ctrl.Credit(db, payer, 100000))
			require.NoError(t, ctrl.Credit(db, poor, 10))

			auth := &ledgertest.Auth{Signers: tc.signers}
			d := NewFeeDecorator(auth, ctrl)

			var h ledgertest.Handler
			checkRes, err := d.Check(context.Background(), db.CacheWrap(), nil, &h)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.wantGas, checkRes.GasPayment)
			}

			_, err = d.Deliver(context.Background(), db, nil, &h)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}

			b, err := ctrl.Balance(db, payer)
			require.NoError(t, err)
			assert.Equal(t, tc.wantPayer, b)
			b, err = ctrl.Balance(db, collector)
			require.NoError(t, err)
			assert.Equal(t, tc.wantCollector, b)

			if tc.wantErr != nil {
				assert.Equal(t, 0, h.CallCount())
			}
		})
	}
}

func TestFeeOverflow(t *testing.T) {
	collector := ledgertest.RandomAddr(t)
	cases := map[string]struct {
		perSignature uint64
		signers      int
		wantFee      uint64
		wantErr      *errors.Error
	}{
		"default": {
			perSignature: 5000,
			signers:      3,
			wantFee:      15000,
		},
		"no signatures": {
			perSignature: math.MaxUint64,
			signers:      0,
			wantFee:      0,
		},
		"product overflows": {
			perSignature: math.MaxUint64/2 + 1,
			signers:      2,
			wantErr:      errors.ErrOverflow,
		},
		"does not fit the gas payment": {
			perSignature: math.MaxInt64 + 1,
			signers:      1,
			wantErr:      errors.ErrOverflow,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			conf := DefaultConfiguration(collector)
			conf.LamportsPerSignature = tc.perSignature
			fee, err := conf.Fee(tc.signers)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			assert.Equal(t, tc.wantFee, fee)
		})
	}

	db := store.MemStore()
	conf := DefaultConfiguration(collector)
	conf.LamportsPerSignature = math.MaxInt64 + 1
	require.NoError(t, SaveConfiguration(db, conf))
	payer := ledgertest.RandomAddr(t)
	ctrl := NewController(NewBucket())
	require.NoError(t, ctrl.Credit(db, payer, math.MaxUint64))

	var h ledgertest.Handler
	d := NewFeeDecorator(&ledgertest.Auth{Signers: []solana.PublicKey{payer}}, ctrl)
	_, err := d.Check(context.Background(), db, nil, &h)
	assert.True(t, errors.ErrOverflow.Is(err), "got %+v", err)
	assert.Equal(t, 0, h.CallCount())
}
