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

	"github.com/pgledger/pgledger/internal/owner"
)

// OwnerRepository implements owner.Repository
type OwnerRepository struct {
	db *DB
}

// NewOwnerRepository creates a new owner repository
func NewOwnerRepository(db *DB) *OwnerRepository {
	return &OwnerRepository{db: db}
}

// Create inserts a new owner. The phone number unique constraint carries
// the duplicate check; there is no racy pre-read.
func (r *OwnerRepository) Create(ctx context.Context, o *owner.Owner) error {
	_, err := r.db.db.ExecContext(ctx, `
		INSERT INTO owners (id, phone_number, pg_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, o.ID, o.PhoneNumber, o.PGName, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "owners.phone_number") {
			return owner.ErrPhoneExists
		}
		return storeErr("insert owner", err)
	}
	return nil
}

// GetByID retrieves an owner by ID
func (r *OwnerRepository) GetByID(ctx context.Context, id string) (*owner.Owner, error) {
	return r.getOne(ctx, `
		SELECT id, phone_number, pg_name, created_at, updated_at
		FROM owners WHERE id = ?
	`, id)
}

// GetByPhone retrieves an owner by phone number
func (r *OwnerRepository) GetByPhone(ctx context.Context, phoneNumber string) (*owner.Owner, error) {
	return r.getOne(ctx, `
		SELECT id, phone_number, pg_name, created_at, updated_at
		FROM owners WHERE phone_number = ?
	`, phoneNumber)
}

func (r *OwnerRepository) getOne(ctx context.Context, query string, arg any) (*owner.Owner, error) {
	var o owner.Owner
	err := r.db.db.QueryRowContext(ctx, query, arg).Scan(
		&o.ID, &o.PhoneNumber, &o.PGName, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, owner.ErrOwnerNotFound
		}
		return nil, storeErr("get owner", err)
	}
	return &o, nil
}
