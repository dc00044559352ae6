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

package inventory

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/pgledger/pgledger/internal/audit"
	"github.com/pgledger/pgledger/internal/fault"
	"github.com/pgledger/pgledger/internal/id"
	"github.com/pgledger/pgledger/internal/observability/logger"
	"github.com/pgledger/pgledger/internal/observability/metrics"
)

// Service provides room and bed inventory business logic
type Service struct {
	repo        Repository
	auditLogger audit.Logger
}

// NewService creates a new inventory service
func NewService(repo Repository, auditLogger audit.Logger) *Service {
	return &Service{
		repo:        repo,
		auditLogger: auditLogger,
	}
}

// CreateRoom creates a room with totalBeds freshly numbered vacant beds.
func (s *Service) CreateRoom(ctx context.Context, ownerID, name string, totalBeds int) (*Room, error) {
	if ownerID == "" {
		return nil, fault.Validation("missing_owner_id", "owner id is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fault.Validation("missing_room_name", "room name is required")
	}
	if totalBeds < 1 {
		return nil, fault.Validation("invalid_total_beds", "a room needs at least one bed")
	}

	beds := make([]Bed, totalBeds)
	for i := range beds {
		beds[i] = Bed{BedNumber: i + 1, Status: BedVacant}
	}

	room := &Room{
		ID:        id.New(),
		OwnerID:   ownerID,
		Name:      name,
		TotalBeds: totalBeds,
		Beds:      beds,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, room); err != nil {
		return nil, err
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeRoomCreated,
		OwnerID:  ownerID,
		Resource: room.ID,
		Metadata: map[string]any{"total_beds": totalBeds},
	})

	return room, nil
}

// ListRooms lists the owner's rooms in creation order.
func (s *Service) ListRooms(ctx context.Context, ownerID string) ([]*Room, error) {
	if ownerID == "" {
		return nil, fault.Validation("missing_owner_id", "owner id is required")
	}
	return s.repo.ListByOwner(ctx, ownerID)
}

// FindBed resolves a bed by owner, room name and bed number. Detected
// occupancy drift (occupied without occupant, or the reverse) is surfaced
// as an invariant violation, never papered over.
func (s *Service) FindBed(ctx context.Context, ownerID, roomName string, bedNumber int) (*Bed, error) {
	room, err := s.repo.GetByName(ctx, ownerID, roomName)
	if err != nil {
		return nil, err
	}
	if bedNumber < 1 || bedNumber > room.TotalBeds {
		return nil, ErrBedNotFound
	}

	for i := range room.Beds {
		b := &room.Beds[i]
		if b.BedNumber != bedNumber {
			continue
		}
		if err := checkBedInvariant(ctx, room, b); err != nil {
			return nil, err
		}
		return b, nil
	}
	return nil, ErrBedNotFound
}

func checkBedInvariant(ctx context.Context, room *Room, b *Bed) error {
	occupiedWithoutOccupant := b.Status == BedOccupied && b.OccupantID == ""
	vacantWithOccupant := b.Status == BedVacant && b.OccupantID != ""
	if !occupiedWithoutOccupant && !vacantWithOccupant {
		return nil
	}

	metrics.InvariantViolationsTotal.Inc()
	slog.ErrorContext(ctx, "bed occupancy invariant violated",
		logger.RoomID(room.ID),
		logger.BedNumber(b.BedNumber),
		logger.String("bed_status", b.Status),
		logger.ErrorKind(string(fault.KindInvariant)),
	)
	return ErrBedStateDrift
}
