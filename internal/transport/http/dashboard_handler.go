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
	"net/http"
)

// GetDashboard returns the owner's occupancy and collection summary
// @Summary Dashboard
// @Description Point-in-time occupancy, revenue and rent collection stats for the current month
// @Tags Dashboard
// @Produce json
// @Param X-Owner-ID header string true "Owner ID"
// @Success 200 {object} dashboard.Stats
// @Router /dashboard [get]
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.GetStats(r.Context(), GetOwnerID(r.Context()))
	if err != nil {
		respondFault(w, err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
