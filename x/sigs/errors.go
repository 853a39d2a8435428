package sigs

import (
	"github.com/vaultswap/ledger/errors"
)

// x/sigs reserves 300 ~ 399.
var (
	ErrInvalidSequence = errors.Register(300, "invalid sequence number")
)
