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

package postgres

import (
	"context"

	"github.com/pgledger/pgledger/internal/allocation"
	"github.com/pgledger/pgledger/internal/inventory"
	"github.com/pgledger/pgledger/internal/tenant"
)

// AllocationRepository implements allocation.Binder with a single
// transaction: insert the tenant row, then claim the bed with a
// conditional update that only matches while the bed is still vacant.
// Zero rows claimed means another allocation won the race; the rollback
// removes the tenant row, so a tenant never exists unbound and a bed is
// never occupied without its tenant.
type AllocationRepository struct {
	db *DB
}

// NewAllocationRepository creates a new allocation repository
func NewAllocationRepository(db *DB) *AllocationRepository {
	return &AllocationRepository{db: db}
}

// BindTenant atomically creates the tenant and transitions its bed
// vacant → occupied.
func (r *AllocationRepository) BindTenant(ctx context.Context, t *tenant.Tenant) error {
	tx, err := r.db.pool.Begin(ctx)
	if err != nil {
		return storeErr("begin bind tenant", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO tenants (
			id, owner_id, name, phone_number, room_id, room_name, bed_number,
			joining_date, rent_amount, deposit_amount, rent_paid, deposit_paid,
			auto_reminder, notice_period, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`,
		t.ID, t.OwnerID, t.Name, t.PhoneNumber, t.RoomID, t.RoomName, t.BedNumber,
		t.JoiningDate, t.RentAmount, t.DepositAmount, t.RentPaid, t.DepositPaid,
		t.AutoReminder, t.NoticePeriod, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return storeErr("insert tenant", err)
	}

	// The claim: compare-and-swap on the bed's vacancy.
	result, err := tx.Exec(ctx, `
		UPDATE beds SET status = $1, occupant_id = $2
		WHERE room_id = $3 AND bed_number = $4 AND status = $5
	`, inventory.BedOccupied, t.ID, t.RoomID, t.BedNumber, inventory.BedVacant)
	if err != nil {
		return storeErr("claim bed", err)
	}
	if result.RowsAffected() == 0 {
		// Rollback discards the tenant insert.
		return allocation.ErrBedOccupied
	}

	if err := tx.Commit(ctx); err != nil {
		return storeErr("commit bind tenant", err)
	}
	return nil
}
