package inventory

import (
	"context"

	"github.com/pgledger/pgledger/internal/fault"
)

var (
	ErrRoomNotFound  = fault.New(fault.KindNotFound, "room_not_found", "room not found")
	ErrRoomExists    = fault.New(fault.KindConflict, "room_name_exists", "a room with this name already exists for the owner")
	ErrBedNotFound   = fault.New(fault.KindNotFound, "bed_not_found", "bed not found")
	ErrBedStateDrift = fault.Invariant("bed_state_drift", "bed occupancy state does not match its occupant reference")
)

// Repository defines the interface for room and bed storage. Bed occupancy
// is never mutated through this interface; the Vacant→Occupied transition
// belongs exclusively to the allocation transaction.
type Repository interface {
	// Create persists a room together with its beds. Returns ErrRoomExists
	// when the owner already has a room with the same name.
	Create(ctx context.Context, room *Room) error
	GetByName(ctx context.Context, ownerID, name string) (*Room, error)
	// ListByOwner returns the owner's rooms with beds, in creation order.
	ListByOwner(ctx context.Context, ownerID string) ([]*Room, error)
}
