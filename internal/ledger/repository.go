package ledger

import (
	"context"

	"github.com/pgledger/pgledger/internal/fault"
)

var ErrDuplicatePayment = fault.New(fault.KindConflict, "duplicate_payment", "a payment for this tenant and month already exists")

// Repository defines the interface for payment storage
type Repository interface {
	// Create persists a payment. The (tenant, month) uniqueness check and
	// the insert are one atomic conditional operation in the store; a lost
	// race returns ErrDuplicatePayment, never a second row.
	Create(ctx context.Context, p *Payment) error
	// ListByMonth returns the owner's payments for a month joined with
	// tenant identity, in paid-on order.
	ListByMonth(ctx context.Context, ownerID, month string) ([]*Entry, error)
}
