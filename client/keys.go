package client

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/gagliardetto/solana-go"
	"github.com/vaultswap/ledger/errors"
)

// LoadKey reads a private key stored in the solana-keygen JSON format, an
// array of 64 byte values.
func LoadKey(path string) (solana.PrivateKey, error) {
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "load key %s: %s", path, err)
	}
	return key, nil
}

// SaveKey writes given private key in the solana-keygen JSON format. An
// existing file is never overwritten.
func SaveKey(path string, key solana.PrivateKey) error {
	if len(key) != 64 {
		return errors.Wrapf(errors.ErrInput, "invalid key length %d", len(key))
	}
	// Encoded as a list of numbers, not base64.
	ints := make([]int, len(key))
	for i, b := range key {
		ints[i] = int(b)
	}
	raw, err := json.Marshal(ints)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if _, err := os.Stat(path); err == nil {
		return errors.Wrapf(errors.ErrDuplicate, "key file %s exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.Wrapf(errors.ErrInput, "create directory: %s", err)
	}
	if err := ioutil.WriteFile(path, raw, 0600); err != nil {
		return errors.Wrapf(errors.ErrInput, "write key: %s", err)
	}
	return nil
}
