package escrow

import (
	"github.com/vaultswap/ledger/errors"
)

// ABCI Response Codes
// escrow reserves 1000 ~ 1099.
var (
	ErrDuplicateOffer  = errors.Register(1001, "offer already exists")
	ErrOfferNotFound   = errors.Register(1002, "offer not found")
	ErrAccountMismatch = errors.Register(1003, "account mismatch")
)
