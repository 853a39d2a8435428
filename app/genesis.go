package app

import (
	"github.com/vaultswap/ledger"
)

// ChainInitializers lets you initialize many extensions with one function.
// Initializers are called in the given order, so an extension that depends
// on the state of another one must be listed after it.
func ChainInitializers(inits ...ledger.Initializer) ledger.Initializer {
	return chainInitializer{inits: inits}
}

type chainInitializer struct {
	inits []ledger.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts ledger.Options, kv ledger.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
