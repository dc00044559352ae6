// Copyright 2026 The PGLedger Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics exposes prometheus instrumentation for the HTTP surface
// and the occupancy/ledger operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pgledger_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pgledger_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Allocation metrics
	AllocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pgledger_allocations_total",
			Help: "Total bed allocation attempts by outcome",
		},
		[]string{"outcome"},
	)

	// Ledger metrics
	PaymentsRecordedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pgledger_payments_recorded_total",
			Help: "Total rent payment recordings by outcome",
		},
		[]string{"outcome"},
	)

	// Dashboard metrics
	VacantBedsGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pgledger_vacant_beds",
			Help: "Vacant beds per owner as of the last dashboard computation",
		},
		[]string{"owner_id"},
	)

	// Invariant violations must be visible on dashboards, not just in logs
	InvariantViolationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pgledger_invariant_violations_total",
			Help: "Detected impossible states (occupied bed without occupant etc.)",
		},
	)
)

// Allocation outcomes
const (
	OutcomeSuccess   = "success"
	OutcomeConflict  = "conflict"
	OutcomeRejected  = "rejected"
	OutcomeNotFound  = "not_found"
	OutcomeStoreFail = "store_failure"
)

// RecordAllocation increments the allocation counter for an outcome.
func RecordAllocation(outcome string) {
	AllocationsTotal.WithLabelValues(outcome).Inc()
}

// RecordPayment increments the payment counter for an outcome.
func RecordPayment(outcome string) {
	PaymentsRecordedTotal.WithLabelValues(outcome).Inc()
}

// SetVacantBeds refreshes the per-owner vacancy gauge.
func SetVacantBeds(ownerID string, count int) {
	VacantBedsGauge.WithLabelValues(ownerID).Set(float64(count))
}
