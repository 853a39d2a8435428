package system

import (
	"github.com/vaultswap/ledger/errors"
)

// x/system reserves 100 ~ 199.
var (
	ErrAccountInUse = errors.Register(100, "account already in use")
)
