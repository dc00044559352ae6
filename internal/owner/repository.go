package owner

import (
	"context"

	"github.com/pgledger/pgledger/internal/fault"
)

var (
	ErrOwnerNotFound = fault.New(fault.KindNotFound, "owner_not_found", "PG owner not found")
	ErrPhoneExists   = fault.New(fault.KindConflict, "phone_number_exists", "PG owner already exists with this phone number")
)

// Repository defines the interface for owner storage
type Repository interface {
	// Create persists a new owner. Returns ErrPhoneExists when the phone
	// number is already registered (unique constraint, not a pre-read).
	Create(ctx context.Context, o *Owner) error
	GetByID(ctx context.Context, id string) (*Owner, error)
	GetByPhone(ctx context.Context, phoneNumber string) (*Owner, error)
}
