package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the prometheus collectors for the ledger core.
// A nil *Metrics is valid and records nothing, so tests can pass nil.
type Metrics struct {
	PostingsTotal     *prometheus.CounterVec
	PostingDuration   *prometheus.HistogramVec
	ReservationsTotal *prometheus.CounterVec
	SettlementsTotal  *prometheus.CounterVec
	BalanceLookups    *prometheus.CounterVec
	ReconcileRuns     prometheus.Counter
	ReconcileDrift    prometheus.Gauge
	ReconcileDuration prometheus.Histogram
}

func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		PostingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_postings_total",
				Help: "Total transactions offered to the poster.",
			},
			[]string{"ref", "status"},
		),
		PostingDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_posting_duration_seconds",
				Help:    "Posting duration in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"ref"},
		),
		ReservationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_reservations_total",
				Help: "Total reserve/release operations.",
			},
			[]string{"op", "status"},
		),
		SettlementsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_settlements_total",
				Help: "Total settlements processed.",
			},
			[]string{"status"},
		),
		BalanceLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_balance_lookups_total",
				Help: "Total balance lookups.",
			},
			[]string{"status"},
		),
		ReconcileRuns: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ledger_reconcile_runs_total",
				Help: "Total reconciliation runs.",
			},
		),
		ReconcileDrift: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ledger_reconcile_discrepancies",
				Help: "Discrepancies found by the last reconciliation run.",
			},
		),
		ReconcileDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ledger_reconcile_duration_seconds",
				Help:    "Reconciliation run duration in seconds.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	registry.MustRegister(
		m.PostingsTotal,
		m.PostingDuration,
		m.ReservationsTotal,
		m.SettlementsTotal,
		m.BalanceLookups,
		m.ReconcileRuns,
		m.ReconcileDrift,
		m.ReconcileDuration,
	)
	return m
}

func (m *Metrics) ObservePosting(ref, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.PostingsTotal.WithLabelValues(ref, status).Inc()
	m.PostingDuration.WithLabelValues(ref).Observe(duration.Seconds())
}

func (m *Metrics) IncReservation(op, status string) {
	if m == nil {
		return
	}
	m.ReservationsTotal.WithLabelValues(op, status).Inc()
}

func (m *Metrics) IncSettlement(status string) {
	if m == nil {
		return
	}
	m.SettlementsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) IncBalanceLookup(status string) {
	if m == nil {
		return
	}
	m.BalanceLookups.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveReconcile(discrepancies int, duration time.Duration) {
	if m == nil {
		return
	}
	m.ReconcileRuns.Inc()
	m.ReconcileDrift.Set(float64(discrepancies))
	m.ReconcileDuration.Observe(duration.Seconds())
}
