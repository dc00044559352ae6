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

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/pgledger/pgledger/internal/allocation"
	"github.com/pgledger/pgledger/internal/dashboard"
	"github.com/pgledger/pgledger/internal/fault"
	"github.com/pgledger/pgledger/internal/inventory"
	"github.com/pgledger/pgledger/internal/ledger"
	"github.com/pgledger/pgledger/internal/owner"
	"github.com/pgledger/pgledger/internal/tenant"
)

// Handler holds HTTP handlers and dependencies
type Handler struct {
	ownerService      *owner.Service
	inventoryService  *inventory.Service
	tenantService     *tenant.Service
	allocationService *allocation.Service
	ledgerService     *ledger.Service
	dashboardService  *dashboard.Service
}

// NewHandler creates a new HTTP handler
func NewHandler(
	ownerService *owner.Service,
	inventoryService *inventory.Service,
	tenantService *tenant.Service,
	allocationService *allocation.Service,
	ledgerService *ledger.Service,
	dashboardService *dashboard.Service,
) *Handler {
	return &Handler{
		ownerService:      ownerService,
		inventoryService:  inventoryService,
		tenantService:     tenantService,
		allocationService: allocationService,
		ledgerService:     ledgerService,
		dashboardService:  dashboardService,
	}
}

// NewRouter creates a new HTTP router
func NewRouter(h *Handler, rateLimiter *RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(RateLimitMiddleware(rateLimiter))
	r.Use(func(handler http.Handler) http.Handler {
		return otelhttp.NewHandler(handler, "http_request",
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	})
	r.Use(LoggingMiddleware())
	r.Use(MetricsMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Health check and Prometheus scrape endpoint
	r.Get("/health", h.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Account endpoints carry no owner scope yet.
		r.Post("/owners/register", h.RegisterOwner)
		r.Post("/owners/login", h.LoginOwner)

		// Owner-scoped endpoints (fail-closed without the scope header)
		r.Group(func(r chi.Router) {
			r.Use(OwnerMiddleware)
			r.Use(h.RequireOwner)

			r.Route("/rooms", func(r chi.Router) {
				r.Post("/", h.CreateRoom)
				r.Get("/", h.ListRooms)
				r.Get("/bed", h.FindBed)
			})

			r.Route("/tenants", func(r chi.Router) {
				r.Post("/", h.AssignTenant)
				r.Get("/search", h.SearchTenants)
				r.Get("/by-bed", h.GetTenantByBed)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Post("/", h.RecordPayment)
				r.Get("/", h.ListPayments)
			})

			r.Get("/dashboard", h.GetDashboard)
		})
	})

	return r
}

// HealthCheck returns the health status
// @Summary Health Check
// @Description Checks if the service is up and running
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "pgledger",
	})
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondFault maps the error taxonomy onto HTTP statuses. Unclassified
// errors fail closed as 503 so internal detail never leaks.
func respondFault(w http.ResponseWriter, err error) {
	status := statusForKind(fault.KindOf(err))

	var fe *fault.Error
	if errors.As(err, &fe) {
		respondJSON(w, status, map[string]string{
			"error":   fe.Code,
			"message": fe.Message,
		})
		return
	}
	respondError(w, status, "internal error")
}

func statusForKind(kind fault.Kind) int {
	switch kind {
	case fault.KindValidation:
		return http.StatusBadRequest
	case fault.KindNotFound:
		return http.StatusNotFound
	case fault.KindConflict:
		return http.StatusConflict
	case fault.KindUnavailable:
		return http.StatusServiceUnavailable
	case fault.KindInvariant:
		return http.StatusInternalServerError
	default:
		return http.StatusServiceUnavailable
	}
}
