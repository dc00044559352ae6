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
	"net/http"
)

// RecordPaymentRequest represents rent payment data
type RecordPaymentRequest struct {
	TenantID string `json:"tenant_id"`
	Month    string `json:"month" example:"2026-08"`
	Amount   int64  `json:"amount" example:"5000"`
	Method   string `json:"method" example:"upi"`
}

// RecordPayment appends a rent payment to the ledger
// @Summary Record Payment
// @Description Record a tenant's rent payment for a month; one per (tenant, month)
// @Tags Payments
// @Accept json
// @Produce json
// @Param X-Owner-ID header string true "Owner ID"
// @Param request body RecordPaymentRequest true "Payment Data"
// @Success 201 {object} ledger.Payment
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /payments [post]
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.ledgerService.RecordPayment(r.Context(), GetOwnerID(r.Context()), req.TenantID, req.Month, req.Amount, req.Method)
	if err != nil {
		respondFault(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, p)
}

// ListPayments lists a month's payments
// @Summary List Payments
// @Description List the owner's payments for a month joined with tenant identity. Defaults to the current month.
// @Tags Payments
// @Produce json
// @Param X-Owner-ID header string true "Owner ID"
// @Param month query string false "Month key (YYYY-MM)"
// @Success 200 {object} map[string]any
// @Router /payments [get]
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = h.ledgerService.CurrentMonth()
	}

	entries, err := h.ledgerService.ListPayments(r.Context(), GetOwnerID(r.Context()), month)
	if err != nil {
		respondFault(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"month":    month,
		"payments": entries,
		"count":    len(entries),
	})
}
