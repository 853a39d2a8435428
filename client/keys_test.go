package client

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
	"github.com/vaultswap/ledger/errors"
)

func TestKeyFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "keys")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	path := filepath.Join(dir, "nested", "key.json")
	require.NoError(t, SaveKey(path, key))

	got, err := LoadKey(path)
	require.NoError(t, err)
	require.Equal(t, key, got)
	require.Equal(t, key.PublicKey(), got.PublicKey())

	err = SaveKey(path, key)
	require.True(t, errors.ErrDuplicate.Is(err), "got %v", err)

	_, err = LoadKey(filepath.Join(dir, "missing.json"))
	require.True(t, errors.ErrInput.Is(err), "got %v", err)

	err = SaveKey(filepath.Join(dir, "short.json"), key[:10])
	require.True(t, errors.ErrInput.Is(err), "got %v", err)
}
