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
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pgledger/pgledger/internal/observability/logger"
	"github.com/pgledger/pgledger/internal/observability/metrics"
)

// OwnerHeader carries the owner scope on owner-scoped routes. Every room,
// tenant and payment read or write is bound to exactly one owner; there is
// no cross-owner view.
const OwnerHeader = "X-Owner-ID"

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Log request start
			slog.InfoContext(r.Context(), "http_request_start",
				logger.RequestID(middleware.GetReqID(r.Context())),
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.RemoteAddr(r.RemoteAddr),
			)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				slog.InfoContext(r.Context(), "http_request_end",
					logger.RequestID(middleware.GetReqID(r.Context())),
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
					logger.RemoteAddr(r.RemoteAddr),
					logger.UserAgent(r.UserAgent()),
					logger.StatusCode(ww.Status()),
					logger.Duration(time.Since(start).Milliseconds()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// MetricsMiddleware records request counts and latency per route pattern.
// The chi route pattern is used instead of the raw path so IDs in the URL
// do not explode label cardinality.
func MetricsMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				pattern := chi.RouteContext(r.Context()).RoutePattern()
				if pattern == "" {
					pattern = "unmatched"
				}
				status := strconv.Itoa(ww.Status())
				metrics.HTTPRequestsTotal.WithLabelValues(r.Method, pattern, status).Inc()
				metrics.HTTPRequestDuration.WithLabelValues(r.Method, pattern, status).Observe(time.Since(start).Seconds())
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// OwnerMiddleware extracts the owner scope header into the request context.
// Presence and validity are enforced separately by RequireOwner so the
// extraction stays a pure passthrough.
func OwnerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ownerID := r.Header.Get(OwnerHeader); ownerID != "" {
			r = r.WithContext(WithOwnerID(r.Context(), ownerID))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireOwner enforces that a known owner scope is present. Requests with
// no scope or an unregistered owner ID never reach a handler.
func (h *Handler) RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID := GetOwnerID(r.Context())
		if ownerID == "" {
			respondError(w, http.StatusBadRequest, OwnerHeader+" header is required")
			return
		}

		if _, err := h.ownerService.Get(r.Context(), ownerID); err != nil {
			slog.WarnContext(r.Context(), "request with unknown owner scope",
				logger.OwnerID(ownerID),
				logger.Error(err),
			)
			respondFault(w, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}
