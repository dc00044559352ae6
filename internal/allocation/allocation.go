package allocation

import (
	"context"

	"github.com/pgledger/pgledger/internal/fault"
	"github.com/pgledger/pgledger/internal/tenant"
)

var (
	ErrInvalidBed  = fault.New(fault.KindValidation, "invalid_bed", "invalid bed number")
	ErrBedOccupied = fault.New(fault.KindConflict, "bed_occupied", "bed already occupied")
)

// Intake holds the tenant fields supplied at assignment time.
type Intake struct {
	Name          string `json:"name"`
	PhoneNumber   string `json:"phone_number"`
	JoiningDate   string `json:"joining_date"` // dd/mm/yyyy
	RentAmount    int64  `json:"rent_amount"`
	DepositAmount int64  `json:"deposit_amount"`
	RentPaid      bool   `json:"rent_paid"`
	DepositPaid   bool   `json:"deposit_paid"`
	AutoReminder  bool   `json:"auto_reminder"`
}

// Binder is the store primitive backing the assignment transaction. It
// creates the tenant row and transitions the bed vacant→occupied as one
// all-or-nothing unit: the bed claim is a conditional update that only
// succeeds while the bed is still vacant, and a failed claim rolls the
// tenant row back. Returns ErrBedOccupied when the claim loses the race.
//
// This is the serialization point for the (roomID, bedNumber) key; no
// read-then-write path outside this transaction may flip occupancy.
type Binder interface {
	BindTenant(ctx context.Context, t *tenant.Tenant) error
}
