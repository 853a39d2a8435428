package utils

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
)

const metricsNamespace = "ledger"

// Metrics is a decorator that counts processed transactions and observes
// their processing time. Transactions are labeled with the message path, the
// phase (check or deliver) and the result code.
type Metrics struct {
	txs      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ ledger.Decorator = (*Metrics)(nil)

// NewMetrics creates a Metrics decorator with all collectors registered in
// given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		txs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "tx",
			Name:      "processed_total",
			Help:      "Total number of processed transactions by path, phase and result code",
		}, []string{"path", "phase", "code"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "tx",
			Name:      "duration_seconds",
			Help:      "Transaction processing time by path and phase",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"path", "phase"}),
	}
}

// Check observes the check phase.
func (m *Metrics) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Checker) (*ledger.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	m.observe(tx, "check", start, err)
	return res, err
}

// Deliver observes the deliver phase.
func (m *Metrics) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (*ledger.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.observe(tx, "deliver", start, err)
	return res, err
}

func (m *Metrics) observe(tx ledger.Tx, phase string, start time.Time, err error) {
	path := "(missing)"
	if tx != nil {
		path = ledger.GetPath(tx)
	}
	code, _ := errors.ABCIInfo(err, false)
	m.txs.WithLabelValues(path, phase, codeLabel(code)).Inc()
	m.duration.WithLabelValues(path, phase).Observe(time.Since(start).Seconds())
}

func codeLabel(code uint32) string {
	if code == errors.SuccessABCICode {
		return "ok"
	}
	return strconv.FormatUint(uint64(code), 10)
}
