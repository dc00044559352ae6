package tenant

import (
	"context"

	"github.com/pgledger/pgledger/internal/fault"
)

var ErrTenantNotFound = fault.New(fault.KindNotFound, "tenant_not_found", "tenant not found")

// Repository defines the interface for tenant storage. There is no Create:
// tenant rows come into existence only inside the allocation transaction.
type Repository interface {
	GetByID(ctx context.Context, ownerID, tenantID string) (*Tenant, error)
	GetByBed(ctx context.Context, ownerID, roomName string, bedNumber int) (*Tenant, error)
	// Search matches the query case-insensitively as a substring of the
	// tenant name, owner-scoped, at most limit rows, ID as tie-break.
	Search(ctx context.Context, ownerID, query string, limit int) ([]*Tenant, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Tenant, error)
}
