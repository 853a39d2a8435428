package utils

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/ledgertest"
	"github.com/vaultswap/ledger/store"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	ctx := context.Background()
	db := store.MemStore()
	tx := &ledgertest.Tx{Msg: &ledgertest.Msg{RoutePath: "escrow/take"}}

	_, err := m.Deliver(ctx, db, tx, &ledgertest.Handler{})
	assert.NoError(t, err)
	_, err = m.Deliver(ctx, db, tx, &ledgertest.Handler{})
	assert.NoError(t, err)
	_, err = m.Deliver(ctx, db, tx, &ledgertest.Handler{DeliverErr: errors.ErrInsufficientFunds})
	assert.True(t, errors.ErrInsufficientFunds.Is(err))
	_, err = m.Check(ctx, db, tx, &ledgertest.Handler{})
	assert.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.txs.WithLabelValues("escrow/take", "deliver", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.txs.WithLabelValues("escrow/take", "deliver", "12")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.txs.WithLabelValues("escrow/take", "check", "ok")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}
