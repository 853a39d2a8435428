package gconf

import (
	"encoding/json"
	"testing"

	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/ledgertest/assert"
	"github.com/vaultswap/ledger/store"
)

type myConfig struct {
	Number uint64 `json:"number"`
	Text   string `json:"text"`
}

func (c *myConfig) Marshal() ([]byte, error) {
	return ledger.MarshalBorsh(c)
}

func (c *myConfig) Unmarshal(raw []byte) error {
	return ledger.UnmarshalBorsh(raw, c)
}

func (c *myConfig) Validate() error {
	if c.Number == 0 {
		return errors.Field("Number", errors.ErrEmpty, "required")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	cases := map[string]struct {
		Conf        *myConfig
		WantSaveErr *errors.Error
	}{
		"valid": {
			Conf: &myConfig{Number: 852151421, Text: "foobar"},
		},
		"empty text": {
			Conf: &myConfig{Number: 1},
		},
		"invalid configuration cannot be saved": {
			Conf:        &myConfig{Text: "no number"},
			WantSaveErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if err := Save(db, "mypkg", tc.Conf); !tc.WantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			if tc.WantSaveErr != nil {
				var got myConfig
				assert.IsErr(t, errors.ErrNotFound, Load(db, "mypkg", &got))
				return
			}

			var got myConfig
			assert.Nil(t, Load(db, "mypkg", &got))
			assert.Equal(t, tc.Conf, &got)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	db := store.MemStore()
	var got myConfig
	assert.IsErr(t, errors.ErrNotFound, Load(db, "nothing", &got))
}

func TestInitConfig(t *testing.T) {
	cases := map[string]struct {
		Genesis string
		WantErr *errors.Error
		Want    *myConfig
	}{
		"valid": {
			Genesis: `{"conf": {"mypkg": {"number": 7, "text": "seven"}}}`,
			Want:    &myConfig{Number: 7, Text: "seven"},
		},
		"missing package": {
			Genesis: `{"conf": {"otherpkg": {"number": 7}}}`,
			WantErr: errors.ErrNotFound,
		},
		"no conf section": {
			Genesis: `{}`,
			WantErr: errors.ErrNotFound,
		},
		"invalid configuration": {
			Genesis: `{"conf": {"mypkg": {"text": "zero"}}}`,
			WantErr: errors.ErrEmpty,
		},
		"malformed configuration": {
			Genesis: `{"conf": {"mypkg": {"number": "seven"}}}`,
			WantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts ledger.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.Genesis), &opts))

			db := store.MemStore()
			var conf myConfig
			if err := InitConfig(db, opts, "mypkg", &conf); !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.WantErr != nil {
				return
			}
			var got myConfig
			assert.Nil(t, Load(db, "mypkg", &got))
			assert.Equal(t, tc.Want, &got)
		})
	}
}
