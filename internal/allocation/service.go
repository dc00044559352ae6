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

package allocation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pgledger/pgledger/internal/audit"
	"github.com/pgledger/pgledger/internal/fault"
	"github.com/pgledger/pgledger/internal/id"
	"github.com/pgledger/pgledger/internal/inventory"
	"github.com/pgledger/pgledger/internal/observability/metrics"
	"github.com/pgledger/pgledger/internal/tenant"
)

// joiningDateLayout accepts day/month/year with or without zero padding.
const joiningDateLayout = "2/1/2006"

// Service coordinates the tenant-to-bed assignment transaction.
type Service struct {
	rooms       inventory.Repository
	binder      Binder
	auditLogger audit.Logger
}

// NewService creates a new allocation service
func NewService(rooms inventory.Repository, binder Binder, auditLogger audit.Logger) *Service {
	return &Service{
		rooms:       rooms,
		binder:      binder,
		auditLogger: auditLogger,
	}
}

// AssignTenant creates a tenant and binds it to the requested bed. The bed
// claim and the tenant insert commit together or not at all: two concurrent
// calls for the same bed cannot both succeed, and a tenant row never exists
// without an occupied bed behind it.
func (s *Service) AssignTenant(ctx context.Context, ownerID, roomName string, bedNumber int, intake Intake) (*tenant.Tenant, error) {
	t, err := s.assignTenant(ctx, ownerID, roomName, bedNumber, intake)
	if err != nil {
		switch {
		case errors.Is(err, ErrBedOccupied):
			metrics.RecordAllocation(metrics.OutcomeConflict)
			s.auditLogger.Log(ctx, audit.Event{
				Type:     audit.TypeAllocationRejected,
				OwnerID:  ownerID,
				Metadata: map[string]any{"bed_number": bedNumber, "reason": "bed_occupied"},
			})
		case fault.KindOf(err) == fault.KindUnavailable:
			metrics.RecordAllocation(metrics.OutcomeStoreFail)
		default:
			metrics.RecordAllocation(metrics.OutcomeRejected)
		}
		return nil, err
	}

	metrics.RecordAllocation(metrics.OutcomeSuccess)
	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeTenantAssigned,
		OwnerID:  ownerID,
		Resource: t.ID,
		Metadata: map[string]any{"room_id": t.RoomID, "bed_number": t.BedNumber},
	})
	return t, nil
}

func (s *Service) assignTenant(ctx context.Context, ownerID, roomName string, bedNumber int, intake Intake) (*tenant.Tenant, error) {
	if ownerID == "" {
		return nil, fault.Validation("missing_owner_id", "owner id is required")
	}
	name := strings.TrimSpace(intake.Name)
	if name == "" {
		return nil, fault.Validation("missing_tenant_name", "tenant name is required")
	}
	if strings.TrimSpace(intake.PhoneNumber) == "" {
		return nil, fault.Validation("missing_phone_number", "tenant phone number is required")
	}
	joining, err := time.Parse(joiningDateLayout, strings.TrimSpace(intake.JoiningDate))
	if err != nil {
		return nil, fault.Validation("invalid_joining_date", "joining date must be day/month/year")
	}

	room, err := s.rooms.GetByName(ctx, ownerID, roomName)
	if err != nil {
		return nil, err
	}
	if bedNumber < 1 || bedNumber > room.TotalBeds {
		return nil, ErrInvalidBed
	}

	// Fast-fail on a bed already known occupied. Advisory only: the
	// authoritative check is the conditional claim inside BindTenant.
	for _, b := range room.Beds {
		if b.BedNumber == bedNumber && b.Status == inventory.BedOccupied {
			return nil, ErrBedOccupied
		}
	}

	now := time.Now()
	t := &tenant.Tenant{
		ID:            id.New(),
		OwnerID:       ownerID,
		Name:          name,
		PhoneNumber:   strings.TrimSpace(intake.PhoneNumber),
		RoomID:        room.ID,
		RoomName:      room.Name,
		BedNumber:     bedNumber,
		JoiningDate:   joining,
		RentAmount:    intake.RentAmount,
		DepositAmount: intake.DepositAmount,
		RentPaid:      intake.RentPaid,
		DepositPaid:   intake.DepositPaid,
		AutoReminder:  intake.AutoReminder,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.binder.BindTenant(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}
