package token

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/ledgertest"
	"github.com/vaultswap/ledger/store"
	"github.com/vaultswap/ledger/x/system"
)

func TestGenesis(t *testing.T) {
	mint := ledgertest.RandomAddr(t)
	authority := ledgertest.RandomAddr(t)
	alice := ledgertest.RandomAddr(t)

	genesis := fmt.Sprintf(`{
		"conf": {"token": {
			"token_program": %q,
			"associated_token_program": %q
		}},
		"mints": [{
			"address": %q,
			"mint_authority": %q,
			"decimals": 6,
			"holders": [{"owner": %q, "amount": 100}, {"owner": %q, "amount": 5}]
		}]
	}`, DefaultConfiguration().TokenProgram, DefaultConfiguration().AssociatedTokenProgram,
		mint, authority, alice, alice)

	var opts ledger.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	require.NoError(t, system.SaveConfiguration(db, system.DefaultConfiguration(ledgertest.RandomAddr(t))))
	require.NoError(t, Initializer{}.FromGenesis(opts, db))

	ctrl := NewController(system.NewController(system.NewBucket()))
	m, err := ctrl.Mint(db, mint)
	require.NoError(t, err)
	assert.Equal(t, uint64(105), m.Supply)
	assert.Equal(t, authority, m.MintAuthority)

	addr, err := ctrl.AssociatedAddress(db, alice, mint)
	require.NoError(t, err)
	b, err := ctrl.Balance(db, addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(105), b)

	rent, err := system.NewController(system.NewBucket()).Balance(db, addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(accountRent), rent)
}

func TestGenesisWithoutConfiguration(t *testing.T) {
	var opts ledger.Options
	require.NoError(t, json.Unmarshal([]byte(`{"mints": []}`), &opts))
	err := Initializer{}.FromGenesis(opts, store.MemStore())
	assert.True(t, errors.ErrNotFound.Is(err), "%+v", err)
}
