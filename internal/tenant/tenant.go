package tenant

import (
	"time"
)

// Tenant represents a resident bound to a specific bed. Tenants are created
// only through the allocation transaction, never standalone, so a tenant
// can never exist without a bed.
type Tenant struct {
	ID          string `json:"id"`
	OwnerID     string `json:"owner_id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	RoomID      string `json:"room_id"`
	// RoomName is denormalized for display. The authoritative relation is
	// RoomID plus the bed's occupant reference.
	RoomName      string    `json:"room_name"`
	BedNumber     int       `json:"bed_number"`
	JoiningDate   time.Time `json:"joining_date"`
	RentAmount    int64     `json:"rent_amount"`
	DepositAmount int64     `json:"deposit_amount"`
	RentPaid      bool      `json:"rent_paid"`
	DepositPaid   bool      `json:"deposit_paid"`
	AutoReminder  bool      `json:"auto_reminder"`
	NoticePeriod  bool      `json:"notice_period"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SearchLimit caps tenant name search results.
const SearchLimit = 5
