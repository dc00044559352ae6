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

	"github.com/pgledger/pgledger/internal/ledger"
	"github.com/pgledger/pgledger/internal/tenant"
)

// PaymentRepository implements ledger.Repository backed by PostgreSQL
type PaymentRepository struct {
	db *DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts a payment row. The UNIQUE(tenant_id, month) constraint
// is the authority on one-payment-per-month; violations surface as
// ledger.ErrDuplicatePayment regardless of which request raced ahead.
func (r *PaymentRepository) Create(ctx context.Context, p *ledger.Payment) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO payments (id, owner_id, tenant_id, month, amount, method, status, paid_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		p.ID, p.OwnerID, p.TenantID, p.Month, p.Amount, p.Method, p.Status, p.PaidOn,
	)
	if err != nil {
		if isUniqueViolation(err, "payments_tenant_id_month_key") {
			return ledger.ErrDuplicatePayment
		}
		if isForeignKeyViolation(err, "payments_tenant_id_fkey") {
			return tenant.ErrTenantNotFound
		}
		return storeErr("create payment", err)
	}
	return nil
}

// ListByMonth returns an owner's payments for a month joined with the
// tenant registry, newest first.
func (r *PaymentRepository) ListByMonth(ctx context.Context, ownerID, month string) ([]*ledger.Entry, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT p.id, p.owner_id, p.tenant_id, p.month, p.amount, p.method, p.status, p.paid_on,
		       t.name, t.room_name, t.bed_number
		FROM payments p
		JOIN tenants t ON t.id = p.tenant_id
		WHERE p.owner_id = $1 AND p.month = $2
		ORDER BY p.paid_on DESC
	`, ownerID, month)
	if err != nil {
		return nil, storeErr("list payments by month", err)
	}
	defer rows.Close()

	var entries []*ledger.Entry
	for rows.Next() {
		var e ledger.Entry
		if err := rows.Scan(
			&e.ID, &e.OwnerID, &e.TenantID, &e.Month, &e.Amount, &e.Method,
			&e.Status, &e.PaidOn,
			&e.TenantName, &e.RoomName, &e.BedNumber,
		); err != nil {
			return nil, storeErr("scan payment entry", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate payment entries", err)
	}
	return entries, nil
}
