// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// OperationsRecorded counts ledger operations by type.
var OperationsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "caisse_operations_recorded_total",
	Help: "Number of cash operations recorded in the ledger",
}, []string{"type"})

// OperationAmount sums recorded amounts by type.
var OperationAmount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "caisse_operation_amount_total",
	Help: "Sum of recorded operation amounts",
}, []string{"type"})

// OperationsRejected counts drafts the ledger refused, by reason.
var OperationsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "caisse_operations_rejected_total",
	Help: "Number of operations rejected before reaching the ledger log",
}, []string{"reason"})

// LocationBalance tracks the running balance per location.
var LocationBalance = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "caisse_location_balance",
	Help: "Current cash balance per location",
}, []string{"location_id"})

// AttachmentsStored counts uploaded voucher scans.
var AttachmentsStored = promauto.NewCounter(prometheus.CounterOpts{
	Name: "caisse_attachments_stored_total",
	Help: "Number of voucher scans stored",
})

// HTTPRequests counts handled HTTP requests.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "caisse_http_requests_total",
	Help: "Number of HTTP requests handled",
}, []string{"method", "route", "status"})

// HTTPDuration observes request latency.
var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "caisse_http_request_duration_seconds",
	Help:    "HTTP request latency",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "route"})

// ObserveOperation updates the ledger counters after a successful record.
// Balances are published by the ledger itself through SetBalance.
func ObserveOperation(opType string, amount decimal.Decimal) {
	OperationsRecorded.WithLabelValues(opType).Inc()
	OperationAmount.WithLabelValues(opType).Add(amount.InexactFloat64())
}

// SetBalance publishes the balance of a location.
func SetBalance(locationID string, balance decimal.Decimal) {
	LocationBalance.WithLabelValues(locationID).Set(balance.InexactFloat64())
}
