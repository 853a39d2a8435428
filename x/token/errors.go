package token

import (
	"github.com/vaultswap/ledger/errors"
)

// ABCI Response Codes
// token reserves 200 ~ 299.
var (
	ErrMintMismatch   = errors.Register(200, "mint mismatch")
	ErrNonZeroBalance = errors.Register(201, "token account balance not zero")
	ErrMintAuthority  = errors.Register(202, "invalid mint authority")
)
