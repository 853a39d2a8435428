package escrow

import (
	"github.com/tendermint/tendermint/libs/common"
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/x"
	"github.com/vaultswap/ledger/x/utils"
)

const (
	makeOfferCost  int64 = 300
	takeOfferCost  int64 = 300
	closeOfferCost int64 = 100
)

// Tag keys attached to the results of escrow messages.
const (
	TagOffer = "offer"
	TagMaker = "maker"
	TagTaker = "taker"
)

// RegisterRoutes will instantiate and register
// all handlers in this package. Every handler runs inside its own
// savepoint, so a failing message leaves no partial writes.
func RegisterRoutes(r ledger.Registry, auth x.Authenticator, ctrl *Controller) {
	r.Handle(pathMakeOfferMsg, staged(&MakeOfferHandler{auth: auth, ctrl: ctrl}))
	r.Handle(pathTakeOfferMsg, staged(&TakeOfferHandler{auth: auth, ctrl: ctrl}))
	r.Handle(pathCloseOfferMsg, staged(&CloseOfferHandler{auth: auth, ctrl: ctrl}))
}

// RegisterQuery will register this bucket as "/offers"
func RegisterQuery(qr ledger.QueryRouter) {
	NewBucket().Register("offers", qr)
}

type stagedHandler struct {
	savepoint utils.Savepoint
	handler   ledger.Handler
}

func staged(h ledger.Handler) ledger.Handler {
	return stagedHandler{
		savepoint: utils.NewSavepoint().OnDeliver(),
		handler:   h,
	}
}

func (s stagedHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	return s.savepoint.Check(ctx, db, tx, s.handler)
}

func (s stagedHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	return s.savepoint.Deliver(ctx, db, tx, s.handler)
}

// simulate runs fn on a throw away copy of the store, so that Check rejects
// what Deliver would reject without changing the state. Stores that cannot
// be copied are not simulated on.
func simulate(db ledger.KVStore, fn func(ledger.KVStore) error) error {
	cstore, ok := db.(ledger.CacheableKVStore)
	if !ok {
		return nil
	}
	cache := cstore.CacheWrap()
	defer cache.Discard()
	return fn(cache)
}

// MakeOfferHandler creates offers.
type MakeOfferHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ ledger.Handler = (*MakeOfferHandler)(nil)

// Check verifies the message is signed by the maker and can be executed.
func (h *MakeOfferHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	err = simulate(db, func(db ledger.KVStore) error {
		_, _, err := h.ctrl.MakeOffer(db, msg)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &ledger.CheckResult{GasAllocated: makeOfferCost}, nil
}

// Deliver creates the offer and funds its vault. The offer address is
// returned as the result data.
func (h *MakeOfferHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	addr, _, err := h.ctrl.MakeOffer(db, msg)
	if err != nil {
		return nil, err
	}
	ledger.GetLogger(ctx).Debug("offer made", "offer", addr, "maker", msg.Maker, "id", msg.OfferID)
	return &ledger.DeliverResult{
		Data: addr[:],
		Tags: []common.KVPair{
			ledger.Tag(TagOffer, addr),
			ledger.Tag(TagMaker, msg.Maker),
		},
	}, nil
}

func (h *MakeOfferHandler) validate(ctx ledger.Context, tx ledger.Tx) (*MakeOfferMsg, error) {
	var msg MakeOfferMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Maker) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "maker signature missing")
	}
	return &msg, nil
}

// TakeOfferHandler executes swaps.
type TakeOfferHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ ledger.Handler = (*TakeOfferHandler)(nil)

// Check verifies the message is signed by the taker and can be executed.
func (h *TakeOfferHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	err = simulate(db, func(db ledger.KVStore) error {
		_, err := h.ctrl.TakeOffer(db, msg)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &ledger.CheckResult{GasAllocated: takeOfferCost}, nil
}

// Deliver swaps the tokens and removes the offer.
func (h *TakeOfferHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	offer, err := h.ctrl.TakeOffer(db, msg)
	if err != nil {
		return nil, err
	}
	ledger.GetLogger(ctx).Debug("offer taken", "offer", msg.Offer, "taker", msg.Taker)
	return &ledger.DeliverResult{
		Tags: []common.KVPair{
			ledger.Tag(TagOffer, msg.Offer),
			ledger.Tag(TagMaker, offer.Maker),
			ledger.Tag(TagTaker, msg.Taker),
		},
	}, nil
}

func (h *TakeOfferHandler) validate(ctx ledger.Context, tx ledger.Tx) (*TakeOfferMsg, error) {
	var msg TakeOfferMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Taker) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "taker signature missing")
	}
	return &msg, nil
}

// CloseOfferHandler cancels offers.
type CloseOfferHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ ledger.Handler = (*CloseOfferHandler)(nil)

// Check verifies the message is signed by the maker and can be executed.
func (h *CloseOfferHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	err = simulate(db, func(db ledger.KVStore) error {
		_, _, err := h.ctrl.CloseOffer(db, msg)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &ledger.CheckResult{GasAllocated: closeOfferCost}, nil
}

// Deliver returns the vault content to the maker and removes the offer.
func (h *CloseOfferHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	addr, _, err := h.ctrl.CloseOffer(db, msg)
	if err != nil {
		return nil, err
	}
	ledger.GetLogger(ctx).Debug("offer closed", "offer", addr, "maker", msg.Maker)
	return &ledger.DeliverResult{
		Tags: []common.KVPair{
			ledger.Tag(TagOffer, addr),
			ledger.Tag(TagMaker, msg.Maker),
		},
	}, nil
}

func (h *CloseOfferHandler) validate(ctx ledger.Context, tx ledger.Tx) (*CloseOfferMsg, error) {
	var msg CloseOfferMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Maker) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "maker signature missing")
	}
	return &msg, nil
}
