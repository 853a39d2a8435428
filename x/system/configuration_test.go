package system

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/ledgertest"
	"github.com/vaultswap/ledger/ledgertest/assert"
	"github.com/vaultswap/ledger/store"
)

func TestMinimumBalance(t *testing.T) {
	conf := DefaultConfiguration(ledgertest.RandomAddr(t))

	cases := map[string]struct {
		space   uint64
		want    uint64
		wantErr *errors.Error
	}{
		"token account": {space: 165, want: 2039280},
		"mint":          {space: 82, want: 1461600},
		"no data":       {space: 0, want: 890880},
		"overflow":      {space: 1 << 62, wantErr: errors.ErrOverflow},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := conf.MinimumBalance(tc.space)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestConfigurationValidate(t *testing.T) {
	valid := DefaultConfiguration(ledgertest.RandomAddr(t))
	assert.Nil(t, valid.Validate())

	noCollector := DefaultConfiguration(solana.PublicKey{})
	assert.FieldError(t, noCollector.Validate(), "FeeCollector", errors.ErrEmpty)

	noPrice := DefaultConfiguration(ledgertest.RandomAddr(t))
	noPrice.LamportsPerByteYear = 0
	assert.FieldError(t, noPrice.Validate(), "LamportsPerByteYear", errors.ErrEmpty)
}

func TestConfigurationPersistence(t *testing.T) {
	db := store.MemStore()
	_, err := LoadConfiguration(db)
	assert.IsErr(t, errors.ErrNotFound, err)

	conf := DefaultConfiguration(ledgertest.RandomAddr(t))
	assert.Nil(t, SaveConfiguration(db, conf))
	loaded, err := LoadConfiguration(db)
	assert.Nil(t, err)
	assert.Equal(t, &conf, loaded)
}
