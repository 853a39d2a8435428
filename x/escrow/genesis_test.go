package escrow

import (
	"encoding/json"
	"testing"

	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/ledgertest/assert"
	"github.com/vaultswap/ledger/store"
)

func TestGenesis(t *testing.T) {
	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
	}{
		"valid": {
			genesis: `{"conf": {"escrow": {"program_id": "GgU4UPqMP5J9NYQGQ9xctxsvmDiDoPXwyw4pN7syRFqf"}}}`,
		},
		"missing configuration": {
			genesis: `{"conf": {}}`,
			wantErr: errors.ErrNotFound,
		},
		"zero program id": {
			genesis: `{"conf": {"escrow": {"program_id": "11111111111111111111111111111111"}}}`,
			wantErr: errors.ErrEmpty,
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
			conf, err := LoadConfiguration(db)
			assert.Nil(t, err)
			assert.Equal(t, DefaultProgramID, conf.ProgramID)
		})
	}
}
