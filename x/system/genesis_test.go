package system

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/ledgertest"
	"github.com/vaultswap/ledger/ledgertest/assert"
	"github.com/vaultswap/ledger/store"
)

func TestGenesis(t *testing.T) {
	collector := ledgertest.RandomAddr(t)
	alice := ledgertest.RandomAddr(t)

	conf := fmt.Sprintf(`"conf": {"system": {
		"account_storage_overhead": 128,
		"lamports_per_byte_year": 3480,
		"exemption_threshold_years": 2,
		"lamports_per_signature": 5000,
		"fee_collector": %q
	}}`, collector)

	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
	}{
		"valid": {
			genesis: fmt.Sprintf(`{%s, "accounts": [{"address": %q, "lamports": 1000000000}]}`, conf, alice),
		},
		"no accounts": {
			genesis: fmt.Sprintf(`{%s}`, conf),
		},
		"missing configuration": {
			genesis: fmt.Sprintf(`{"accounts": [{"address": %q, "lamports": 1}]}`, alice),
			wantErr: errors.ErrNotFound,
		},
		"malformed accounts": {
			genesis: fmt.Sprintf(`{%s, "accounts": {"address": 1}}`, conf),
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts ledger.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.genesis), &opts))

			db := store.MemStore()
			err := Initializer{}.FromGenesis(opts, db)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}

			loaded, err := LoadConfiguration(db)
			assert.Nil(t, err)
			assert.Equal(t, collector, loaded.FeeCollector)
		})
	}

	var opts ledger.Options
	genesis := fmt.Sprintf(`{%s, "accounts": [{"address": %q, "lamports": 1000000000}]}`, conf, alice)
	assert.Nil(t, json.Unmarshal([]byte(genesis), &opts))
	db := store.MemStore()
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))
	b, err := NewController(NewBucket()).Balance(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1000000000), b)
}
