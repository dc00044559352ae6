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

package sqlite

import (
	"context"

	"github.com/pgledger/pgledger/internal/allocation"
	"github.com/pgledger/pgledger/internal/inventory"
	"github.com/pgledger/pgledger/internal/tenant"
)

// AllocationRepository implements allocation.Binder. Same shape as the
// postgres binder: tenant insert plus a conditional vacant-only bed claim
// in one transaction, with SQLite's single-writer lock serializing racers.
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
	tx, err := r.db.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("begin bind tenant", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tenants (
			id, owner_id, name, phone_number, room_id, room_name, bed_number,
			joining_date, rent_amount, deposit_amount, rent_paid, deposit_paid,
			auto_reminder, notice_period, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		t.ID, t.OwnerID, t.Name, t.PhoneNumber, t.RoomID, t.RoomName, t.BedNumber,
		t.JoiningDate, t.RentAmount, t.DepositAmount, t.RentPaid, t.DepositPaid,
		t.AutoReminder, t.NoticePeriod, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return storeErr("insert tenant", err)
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE beds SET status = ?, occupant_id = ?
		WHERE room_id = ? AND bed_number = ? AND status = ?
	`, inventory.BedOccupied, t.ID, t.RoomID, t.BedNumber, inventory.BedVacant)
	if err != nil {
		return storeErr("claim bed", err)
	}
	claimed, err := result.RowsAffected()
	if err != nil {
		return storeErr("claim bed", err)
	}
	if claimed == 0 {
		// Rollback discards the tenant insert.
		return allocation.ErrBedOccupied
	}

	if err := tx.Commit(); err != nil {
		return storeErr("commit bind tenant", err)
	}
	return nil
}
