package token

import (
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/x"
)

const (
	createMintCost    = 300
	mintToCost        = 100
	createAccountCost = 300
	transferCost      = 100
	closeAccountCost  = 100
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r ledger.Registry, auth x.Authenticator, control Controller) {
	r.Handle(pathCreateMintMsg, &createMintHandler{auth: auth, control: control})
	r.Handle(pathMintToMsg, &mintToHandler{auth: auth, control: control})
	r.Handle(pathCreateAssociatedAccountMsg, &createAssociatedAccountHandler{auth: auth, control: control})
	r.Handle(pathTransferMsg, &transferHandler{auth: auth, control: control})
	r.Handle(pathCloseAccountMsg, &closeAccountHandler{auth: auth, control: control})
}

// RegisterQuery will register mints as "/mints" and token accounts as
// "/tokens"
func RegisterQuery(qr ledger.QueryRouter) {
	NewMintBucket().Register("mints", qr)
	NewAccountBucket().Register("tokens", qr)
}

type createMintHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ ledger.Handler = (*createMintHandler)(nil)

func (h *createMintHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{GasAllocated: createMintCost}, nil
}

func (h *createMintHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.CreateMint(db, msg.Payer, msg.Mint, msg.MintAuthority, msg.Decimals); err != nil {
		return nil, err
	}
	return &ledger.DeliverResult{Data: msg.Mint[:]}, nil
}

func (h *createMintHandler) validate(ctx ledger.Context, tx ledger.Tx) (*CreateMintMsg, error) {
	var msg CreateMintMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Payer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "payer signature missing")
	}
	if !h.auth.HasAddress(ctx, msg.Mint) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "mint signature missing")
	}
	return &msg, nil
}

type mintToHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ ledger.Handler = (*mintToHandler)(nil)

func (h *mintToHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{GasAllocated: mintToCost}, nil
}

func (h *mintToHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MintTo(db, msg.Mint, msg.Destination, msg.Authority, msg.Amount); err != nil {
		return nil, err
	}
	return &ledger.DeliverResult{}, nil
}

func (h *mintToHandler) validate(ctx ledger.Context, tx ledger.Tx) (*MintToMsg, error) {
	var msg MintToMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "mint authority signature missing")
	}
	return &msg, nil
}

type createAssociatedAccountHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ ledger.Handler = (*createAssociatedAccountHandler)(nil)

func (h *createAssociatedAccountHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{GasAllocated: createAccountCost}, nil
}

func (h *createAssociatedAccountHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	addr, err := h.control.CreateAssociatedAccount(db, msg.Payer, msg.Owner, msg.Mint)
	if err != nil {
		return nil, err
	}
	return &ledger.DeliverResult{Data: addr[:]}, nil
}

func (h *createAssociatedAccountHandler) validate(ctx ledger.Context, tx ledger.Tx) (*CreateAssociatedAccountMsg, error) {
	var msg CreateAssociatedAccountMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Payer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "payer signature missing")
	}
	return &msg, nil
}

type transferHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ ledger.Handler = (*transferHandler)(nil)

func (h *transferHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{GasAllocated: transferCost}, nil
}

func (h *transferHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Transfer(db, msg.Source, msg.Destination, msg.Authority, msg.Amount); err != nil {
		return nil, err
	}
	return &ledger.DeliverResult{}, nil
}

func (h *transferHandler) validate(ctx ledger.Context, tx ledger.Tx) (*TransferMsg, error) {
	var msg TransferMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, nil
}

type closeAccountHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ ledger.Handler = (*closeAccountHandler)(nil)

func (h *closeAccountHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{GasAllocated: closeAccountCost}, nil
}

func (h *closeAccountHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.control.CloseAccount(db, msg.Account, msg.Destination, msg.Authority); err != nil {
		return nil, err
	}
	return &ledger.DeliverResult{}, nil
}

func (h *closeAccountHandler) validate(ctx ledger.Context, tx ledger.Tx) (*CloseAccountMsg, error) {
	var msg CloseAccountMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, nil
}
