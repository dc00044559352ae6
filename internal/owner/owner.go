package owner

import (
	"time"
)

// Owner represents a PG (paying-guest) property owner account.
type Owner struct {
	ID          string    `json:"id"`
	PhoneNumber string    `json:"phone_number"`
	PGName      string    `json:"pg_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
