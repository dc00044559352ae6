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
	"strconv"
)

// CreateRoomRequest represents room creation data
type CreateRoomRequest struct {
	Name      string `json:"name" example:"101"`
	TotalBeds int    `json:"total_beds" example:"3"`
}

// CreateRoom creates a room with its full bed set
// @Summary Create Room
// @Description Create a room; beds 1..total_beds are created vacant with it
// @Tags Rooms
// @Accept json
// @Produce json
// @Param X-Owner-ID header string true "Owner ID"
// @Param request body CreateRoomRequest true "Room Data"
// @Success 201 {object} inventory.Room
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /rooms [post]
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	room, err := h.inventoryService.CreateRoom(r.Context(), GetOwnerID(r.Context()), req.Name, req.TotalBeds)
	if err != nil {
		respondFault(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, room)
}

// ListRooms returns the owner's rooms with bed state
// @Summary List Rooms
// @Description List every room with per-bed occupancy
// @Tags Rooms
// @Produce json
// @Param X-Owner-ID header string true "Owner ID"
// @Success 200 {object} map[string]any
// @Router /rooms [get]
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.inventoryService.ListRooms(r.Context(), GetOwnerID(r.Context()))
	if err != nil {
		respondFault(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"rooms": rooms,
		"count": len(rooms),
	})
}

// FindBed returns a single bed's occupancy state
// @Summary Find Bed
// @Description Look up one bed by room name and bed number
// @Tags Rooms
// @Produce json
// @Param X-Owner-ID header string true "Owner ID"
// @Param room query string true "Room name"
// @Param bed query int true "Bed number"
// @Success 200 {object} inventory.Bed
// @Failure 404 {object} map[string]string
// @Router /rooms/bed [get]
func (h *Handler) FindBed(w http.ResponseWriter, r *http.Request) {
	roomName := r.URL.Query().Get("room")
	bedNumber, err := strconv.Atoi(r.URL.Query().Get("bed"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "bed must be a number")
		return
	}

	bed, err := h.inventoryService.FindBed(r.Context(), GetOwnerID(r.Context()), roomName, bedNumber)
	if err != nil {
		respondFault(w, err)
		return
	}

	respondJSON(w, http.StatusOK, bed)
}
