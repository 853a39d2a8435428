package system

import (
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/x"
)

// FeeDecorator charges the transaction fee from the main signer. The fee is
// a fixed amount of lamports for each signature and it is moved to the fee
// collector. The fee is charged before the transaction is processed and it
// is not returned if the processing fails.
//
// Check charges the fee on the check state too, so a payer cannot queue
// more transactions than it can pay for. That state is reset on commit.
type FeeDecorator struct {
	auth x.Authenticator
	ctrl Controller
}

var _ ledger.Decorator = FeeDecorator{}

// NewFeeDecorator returns a FeeDecorator charging fees on given controller.
func NewFeeDecorator(auth x.Authenticator, ctrl Controller) FeeDecorator {
	return FeeDecorator{
		auth: auth,
		ctrl: ctrl,
	}
}

// Check verifies and deducts fees before calling down the stack
func (d FeeDecorator) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Checker) (*ledger.CheckResult, error) {
	paid, err := d.chargeFee(ctx, store)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res.GasPayment += int64(paid)
	return res, nil
}

// Deliver verifies and deducts fees before calling down the stack
func (d FeeDecorator) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (*ledger.DeliverResult, error) {
	if _, err := d.chargeFee(ctx, store); err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func (d FeeDecorator) chargeFee(ctx ledger.Context, store ledger.KVStore) (uint64, error) {
	signers := d.auth.GetSigners(ctx)
	if len(signers) == 0 {
		return 0, nil
	}
	conf, err := LoadConfiguration(store)
	if err != nil {
		return 0, err
	}
	fee, err := conf.Fee(len(signers))
	if err != nil {
		return 0, err
	}
	if fee == 0 {
		return 0, nil
	}
	payer := x.MainSigner(ctx, d.auth)
	if err := d.ctrl.Transfer(store, payer, conf.FeeCollector, fee); err != nil {
		return 0, errors.Wrap(err, "cannot pay transaction fee")
	}
	return fee, nil
}
