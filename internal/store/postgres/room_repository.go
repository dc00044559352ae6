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
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/pgledger/pgledger/internal/inventory"
)

// RoomRepository implements inventory.Repository
type RoomRepository struct {
	db *DB
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db *DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create inserts a room together with its bed rows in one transaction.
func (r *RoomRepository) Create(ctx context.Context, room *inventory.Room) error {
	tx, err := r.db.pool.Begin(ctx)
	if err != nil {
		return storeErr("begin create room", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO rooms (id, owner_id, name, total_beds, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, room.ID, room.OwnerID, room.Name, room.TotalBeds, room.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "rooms_owner_id_name_key") {
			return inventory.ErrRoomExists
		}
		return storeErr("insert room", err)
	}

	for _, bed := range room.Beds {
		if _, err := tx.Exec(ctx, `
			INSERT INTO beds (room_id, bed_number, status)
			VALUES ($1, $2, $3)
		`, room.ID, bed.BedNumber, bed.Status); err != nil {
			return storeErr("insert bed", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return storeErr("commit create room", err)
	}
	return nil
}

// GetByName retrieves a room with its beds by (owner, name)
func (r *RoomRepository) GetByName(ctx context.Context, ownerID, name string) (*inventory.Room, error) {
	var room inventory.Room
	err := r.db.pool.QueryRow(ctx, `
		SELECT id, owner_id, name, total_beds, created_at
		FROM rooms WHERE owner_id = $1 AND name = $2
	`, ownerID, name).Scan(
		&room.ID, &room.OwnerID, &room.Name, &room.TotalBeds, &room.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, inventory.ErrRoomNotFound
		}
		return nil, storeErr("get room", err)
	}

	if err := r.loadBeds(ctx, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// ListByOwner returns the owner's rooms with beds, in creation order.
// UUIDv7 IDs are time-ordered, so ordering by ID is creation order.
func (r *RoomRepository) ListByOwner(ctx context.Context, ownerID string) ([]*inventory.Room, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, owner_id, name, total_beds, created_at
		FROM rooms WHERE owner_id = $1
		ORDER BY id
	`, ownerID)
	if err != nil {
		return nil, storeErr("list rooms", err)
	}
	defer rows.Close()

	var rooms []*inventory.Room
	for rows.Next() {
		var room inventory.Room
		if err := rows.Scan(&room.ID, &room.OwnerID, &room.Name, &room.TotalBeds, &room.CreatedAt); err != nil {
			return nil, storeErr("scan room", err)
		}
		rooms = append(rooms, &room)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate rooms", err)
	}

	for _, room := range rooms {
		if err := r.loadBeds(ctx, room); err != nil {
			return nil, err
		}
	}
	return rooms, nil
}

func (r *RoomRepository) loadBeds(ctx context.Context, room *inventory.Room) error {
	rows, err := r.db.pool.Query(ctx, `
		SELECT bed_number, status, occupant_id
		FROM beds WHERE room_id = $1
		ORDER BY bed_number
	`, room.ID)
	if err != nil {
		return storeErr("load beds", err)
	}
	defer rows.Close()

	room.Beds = room.Beds[:0]
	for rows.Next() {
		var bed inventory.Bed
		var occupant sql.NullString
		if err := rows.Scan(&bed.BedNumber, &bed.Status, &occupant); err != nil {
			return storeErr("scan bed", err)
		}
		if occupant.Valid {
			bed.OccupantID = occupant.String
		}
		room.Beds = append(room.Beds, bed)
	}
	return rows.Err()
}
