package orm

import (
	"github.com/vaultswap/ledger"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	ledger.Persistent
	Validate() error
}
