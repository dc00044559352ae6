package dashboard

import (
	"context"
	"time"

	"github.com/pgledger/pgledger/internal/fault"
	"github.com/pgledger/pgledger/internal/inventory"
	"github.com/pgledger/pgledger/internal/ledger"
	"github.com/pgledger/pgledger/internal/observability/metrics"
	"github.com/pgledger/pgledger/internal/tenant"
)

// Service fetches the owner's snapshot and aggregates it. Reads only; all
// mutation goes through the allocation and ledger services.
type Service struct {
	rooms    inventory.Repository
	tenants  tenant.Repository
	payments ledger.Repository
	now      func() time.Time
}

// NewService creates a new dashboard service
func NewService(rooms inventory.Repository, tenants tenant.Repository, payments ledger.Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		rooms:    rooms,
		tenants:  tenants,
		payments: payments,
		now:      now,
	}
}

// GetStats computes the dashboard for an owner and the current month.
func (s *Service) GetStats(ctx context.Context, ownerID string) (*Stats, error) {
	if ownerID == "" {
		return nil, fault.Validation("missing_owner_id", "owner id is required")
	}

	rooms, err := s.rooms.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	tenants, err := s.tenants.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	month := ledger.MonthKey(s.now())
	payments, err := s.payments.ListByMonth(ctx, ownerID, month)
	if err != nil {
		return nil, err
	}

	stats := Aggregate(rooms, tenants, payments, month)
	metrics.SetVacantBeds(ownerID, stats.VacantBeds)
	return &stats, nil
}
