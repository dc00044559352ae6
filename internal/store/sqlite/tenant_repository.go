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
	"database/sql"
	"errors"

	"github.com/pgledger/pgledger/internal/tenant"
)

const tenantColumns = `
	id, owner_id, name, phone_number, room_id, room_name, bed_number,
	joining_date, rent_amount, deposit_amount, rent_paid, deposit_paid,
	auto_reminder, notice_period, created_at, updated_at`

// TenantRepository implements tenant.Repository
type TenantRepository struct {
	db *DB
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// GetByID retrieves a tenant by ID, owner-scoped
func (r *TenantRepository) GetByID(ctx context.Context, ownerID, tenantID string) (*tenant.Tenant, error) {
	row := r.db.db.QueryRowContext(ctx, `
		SELECT `+tenantColumns+`
		FROM tenants WHERE owner_id = ? AND id = ?
	`, ownerID, tenantID)
	return scanTenant(row)
}

// GetByBed retrieves the tenant bound to a bed
func (r *TenantRepository) GetByBed(ctx context.Context, ownerID, roomName string, bedNumber int) (*tenant.Tenant, error) {
	row := r.db.db.QueryRowContext(ctx, `
		SELECT `+tenantColumns+`
		FROM tenants WHERE owner_id = ? AND room_name = ? AND bed_number = ?
	`, ownerID, roomName, bedNumber)
	return scanTenant(row)
}

// Search matches the query case-insensitively against tenant names,
// capped at limit rows with ID as a stable tie-break. SQLite's LIKE is
// only case-insensitive for ASCII, so both sides are lowered explicitly.
func (r *TenantRepository) Search(ctx context.Context, ownerID, query string, limit int) ([]*tenant.Tenant, error) {
	rows, err := r.db.db.QueryContext(ctx, `
		SELECT `+tenantColumns+`
		FROM tenants
		WHERE owner_id = ? AND lower(name) LIKE '%' || lower(?) || '%'
		ORDER BY id
		LIMIT ?
	`, ownerID, query, limit)
	if err != nil {
		return nil, storeErr("search tenants", err)
	}
	defer rows.Close()
	return scanTenants(rows)
}

// ListByOwner returns all of the owner's tenants
func (r *TenantRepository) ListByOwner(ctx context.Context, ownerID string) ([]*tenant.Tenant, error) {
	rows, err := r.db.db.QueryContext(ctx, `
		SELECT `+tenantColumns+`
		FROM tenants WHERE owner_id = ?
		ORDER BY id
	`, ownerID)
	if err != nil {
		return nil, storeErr("list tenants", err)
	}
	defer rows.Close()
	return scanTenants(rows)
}

func scanTenant(row *sql.Row) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := row.Scan(
		&t.ID, &t.OwnerID, &t.Name, &t.PhoneNumber, &t.RoomID, &t.RoomName,
		&t.BedNumber, &t.JoiningDate, &t.RentAmount, &t.DepositAmount,
		&t.RentPaid, &t.DepositPaid, &t.AutoReminder, &t.NoticePeriod,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, storeErr("get tenant", err)
	}
	return &t, nil
}

func scanTenants(rows *sql.Rows) ([]*tenant.Tenant, error) {
	var tenants []*tenant.Tenant
	for rows.Next() {
		var t tenant.Tenant
		if err := rows.Scan(
			&t.ID, &t.OwnerID, &t.Name, &t.PhoneNumber, &t.RoomID, &t.RoomName,
			&t.BedNumber, &t.JoiningDate, &t.RentAmount, &t.DepositAmount,
			&t.RentPaid, &t.DepositPaid, &t.AutoReminder, &t.NoticePeriod,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, storeErr("scan tenant", err)
		}
		tenants = append(tenants, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate tenants", err)
	}
	return tenants, nil
}
