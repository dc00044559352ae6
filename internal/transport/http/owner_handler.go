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
	"log/slog"
	"net/http"

	"github.com/pgledger/pgledger/internal/fault"
	"github.com/pgledger/pgledger/internal/observability/logger"
)

// RegisterOwnerRequest represents owner registration data
type RegisterOwnerRequest struct {
	PhoneNumber string `json:"phone_number" example:"9876543210"`
	PGName      string `json:"pg_name" example:"Sunrise PG"`
}

// RegisterOwner handles owner registration
// @Summary Register a new owner
// @Description Register a PG owner account keyed by phone number
// @Tags Owners
// @Accept json
// @Produce json
// @Param request body RegisterOwnerRequest true "Registration Data"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /owners/register [post]
func (h *Handler) RegisterOwner(w http.ResponseWriter, r *http.Request) {
	var req RegisterOwnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.ownerService.Register(r.Context(), req.PhoneNumber, req.PGName)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to register owner",
			logger.Error(err),
			logger.ErrorKind(string(fault.KindOf(err))),
		)
		respondFault(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"owner_id": o.ID,
		"pg_name":  o.PGName,
	})
}

// LoginOwnerRequest represents owner login data
type LoginOwnerRequest struct {
	PhoneNumber string `json:"phone_number" example:"9876543210"`
}

// LoginOwner handles owner login by phone number
// @Summary Login
// @Description Resolve an owner account by phone number
// @Tags Owners
// @Accept json
// @Produce json
// @Param request body LoginOwnerRequest true "Credentials"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /owners/login [post]
func (h *Handler) LoginOwner(w http.ResponseWriter, r *http.Request) {
	var req LoginOwnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.ownerService.Login(r.Context(), req.PhoneNumber)
	if err != nil {
		respondFault(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"owner_id": o.ID,
		"pg_name":  o.PGName,
	})
}
