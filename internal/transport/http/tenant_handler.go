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
	"strconv"

	"github.com/pgledger/pgledger/internal/allocation"
	"github.com/pgledger/pgledger/internal/fault"
	"github.com/pgledger/pgledger/internal/observability/logger"
)

// AssignTenantRequest represents tenant assignment data
type AssignTenantRequest struct {
	RoomName  string `json:"room_name" example:"101"`
	BedNumber int    `json:"bed_number" example:"2"`
	allocation.Intake
}

// AssignTenant binds a new tenant to a vacant bed
// @Summary Assign Tenant
// @Description Create a tenant and occupy the named bed as one atomic unit
// @Tags Tenants
// @Accept json
// @Produce json
// @Param X-Owner-ID header string true "Owner ID"
// @Param request body AssignTenantRequest true "Assignment Data"
// @Success 201 {object} tenant.Tenant
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /tenants [post]
func (h *Handler) AssignTenant(w http.ResponseWriter, r *http.Request) {
	var req AssignTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.allocationService.AssignTenant(r.Context(), GetOwnerID(r.Context()), req.RoomName, req.BedNumber, req.Intake)
	if err != nil {
		slog.ErrorContext(r.Context(), "tenant assignment failed",
			logger.Error(err),
			logger.ErrorKind(string(fault.KindOf(err))),
			logger.BedNumber(req.BedNumber),
		)
		respondFault(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, t)
}

// SearchTenants searches tenants by name
// @Summary Search Tenants
// @Description Case-insensitive substring search over tenant names, capped at 5 results
// @Tags Tenants
// @Produce json
// @Param X-Owner-ID header string true "Owner ID"
// @Param q query string true "Name fragment"
// @Success 200 {object} map[string]any
// @Router /tenants/search [get]
func (h *Handler) SearchTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.tenantService.Search(r.Context(), GetOwnerID(r.Context()), r.URL.Query().Get("q"))
	if err != nil {
		respondFault(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"tenants": tenants,
		"count":   len(tenants),
	})
}

// GetTenantByBed resolves the tenant occupying a bed
// @Summary Get Tenant By Bed
// @Description Look up the occupant of a (room, bed) pair
// @Tags Tenants
// @Produce json
// @Param X-Owner-ID header string true "Owner ID"
// @Param room query string true "Room name"
// @Param bed query int true "Bed number"
// @Success 200 {object} tenant.Tenant
// @Failure 404 {object} map[string]string
// @Router /tenants/by-bed [get]
func (h *Handler) GetTenantByBed(w http.ResponseWriter, r *http.Request) {
	roomName := r.URL.Query().Get("room")
	bedNumber, err := strconv.Atoi(r.URL.Query().Get("bed"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "bed must be a number")
		return
	}

	t, err := h.tenantService.GetByBed(r.Context(), GetOwnerID(r.Context()), roomName, bedNumber)
	if err != nil {
		respondFault(w, err)
		return
	}

	respondJSON(w, http.StatusOK, t)
}
