package inventory

import (
	"time"
)

// Bed occupancy states
const (
	BedVacant   = "vacant"
	BedOccupied = "occupied"
)

// Bed is the smallest allocatable unit of housing inventory, identified by
// its room and number (1..TotalBeds).
type Bed struct {
	BedNumber int    `json:"bed_number"`
	Status    string `json:"status"`
	// OccupantID is set exactly when Status is occupied. The pair with the
	// tenant's room/bed binding is the authoritative occupancy relation.
	OccupantID string `json:"occupant_id,omitempty"`
}

// Room holds a fixed set of beds created together with the room. The bed
// set is not resized after creation.
type Room struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	TotalBeds int       `json:"total_beds"`
	Beds      []Bed     `json:"beds"`
	CreatedAt time.Time `json:"created_at"`
}

// VacantBeds counts beds currently vacant.
func (r *Room) VacantBeds() int {
	n := 0
	for _, b := range r.Beds {
		if b.Status == BedVacant {
			n++
		}
	}
	return n
}
