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
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgledger/pgledger/internal/allocation"
	"github.com/pgledger/pgledger/internal/fault"
	"github.com/pgledger/pgledger/internal/id"
	"github.com/pgledger/pgledger/internal/inventory"
	"github.com/pgledger/pgledger/internal/ledger"
	"github.com/pgledger/pgledger/internal/owner"
	"github.com/pgledger/pgledger/internal/tenant"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	ctx := context.Background()

	db, err := New(ctx, filepath.Join(t.TempDir(), "pgledger_test.db"))
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.Migrate(ctx, InitialSchema))
	return db
}

func seedOwner(t *testing.T, db *DB) *owner.Owner {
	t.Helper()
	now := time.Now().UTC()
	o := &owner.Owner{
		ID:          id.New(),
		PhoneNumber: "9876543210",
		PGName:      "Sunrise PG",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, NewOwnerRepository(db).Create(context.Background(), o))
	return o
}

func seedRoom(t *testing.T, db *DB, ownerID, name string, beds int) *inventory.Room {
	t.Helper()
	room := &inventory.Room{
		ID:        id.New(),
		OwnerID:   ownerID,
		Name:      name,
		TotalBeds: beds,
		CreatedAt: time.Now().UTC(),
	}
	for n := 1; n <= beds; n++ {
		room.Beds = append(room.Beds, inventory.Bed{BedNumber: n, Status: inventory.BedVacant})
	}
	require.NoError(t, NewRoomRepository(db).Create(context.Background(), room))
	return room
}

func newTenant(ownerID string, room *inventory.Room, bed int, name string) *tenant.Tenant {
	now := time.Now().UTC()
	return &tenant.Tenant{
		ID:          id.New(),
		OwnerID:     ownerID,
		Name:        name,
		PhoneNumber: "9123456780",
		RoomID:      room.ID,
		RoomName:    room.Name,
		BedNumber:   bed,
		JoiningDate: now,
		RentAmount:  5000,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TestPurpose: Validates the sqlite driver's owner uniqueness mapping.
// Scope: Store Unit Test
// Expected: The second registration with the same phone number returns
// ErrPhoneExists; lookups round-trip the stored owner.
// Test Case ID: SQL-01
func TestOwnerRepository_PhoneUniqueness(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := NewOwnerRepository(db)

	o := seedOwner(t, db)

	dup := *o
	dup.ID = id.New()
	err := repo.Create(ctx, &dup)
	assert.ErrorIs(t, err, owner.ErrPhoneExists)

	got, err := repo.GetByPhone(ctx, o.PhoneNumber)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)
	assert.Equal(t, "Sunrise PG", got.PGName)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, owner.ErrOwnerNotFound)
}

// TestPurpose: Validates room creation with its bed set and the per-owner
// room name uniqueness constraint.
// Scope: Store Unit Test
// Expected: Beds come back numbered and vacant; a second room with the same
// name for the same owner returns ErrRoomExists.
// Test Case ID: SQL-02
func TestRoomRepository_CreateAndList(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := NewRoomRepository(db)

	o := seedOwner(t, db)
	seedRoom(t, db, o.ID, "101", 3)

	dup := &inventory.Room{ID: id.New(), OwnerID: o.ID, Name: "101", TotalBeds: 2, CreatedAt: time.Now().UTC()}
	dup.Beds = []inventory.Bed{{BedNumber: 1, Status: inventory.BedVacant}, {BedNumber: 2, Status: inventory.BedVacant}}
	assert.ErrorIs(t, repo.Create(ctx, dup), inventory.ErrRoomExists)

	rooms, err := repo.ListByOwner(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	require.Len(t, rooms[0].Beds, 3)
	assert.Equal(t, 1, rooms[0].Beds[0].BedNumber)
	assert.Equal(t, inventory.BedVacant, rooms[0].Beds[2].Status)
	assert.Equal(t, 3, rooms[0].VacantBeds())
}

// TestPurpose: Validates the bind transaction's conditional bed claim on the
// sqlite driver.
// Scope: Store Unit Test
// Expected: The first claim occupies the bed; the second for the same bed
// returns ErrBedOccupied and leaves no tenant row behind.
// Test Case ID: SQL-03
func TestAllocationRepository_ClaimOnceOnly(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	binder := NewAllocationRepository(db)

	o := seedOwner(t, db)
	room := seedRoom(t, db, o.ID, "101", 2)

	first := newTenant(o.ID, room, 1, "Asha Verma")
	require.NoError(t, binder.BindTenant(ctx, first))

	second := newTenant(o.ID, room, 1, "Ravi Kumar")
	err := binder.BindTenant(ctx, second)
	assert.ErrorIs(t, err, allocation.ErrBedOccupied)

	tenants := NewTenantRepository(db)
	_, err = tenants.GetByID(ctx, o.ID, second.ID)
	assert.ErrorIs(t, err, tenant.ErrTenantNotFound)

	got, err := tenants.GetByBed(ctx, o.ID, "101", 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	rooms, err := NewRoomRepository(db).ListByOwner(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, rooms[0].VacantBeds())
	assert.Equal(t, first.ID, rooms[0].Beds[0].OccupantID)
}

// TestPurpose: Validates case-insensitive substring search with its result
// cap on the sqlite driver.
// Scope: Store Unit Test
// Expected: Mixed-case fragments match, and results never exceed the limit.
// Test Case ID: SQL-04
func TestTenantRepository_Search(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	binder := NewAllocationRepository(db)

	o := seedOwner(t, db)
	room := seedRoom(t, db, o.ID, "101", 8)
	names := []string{"Asha Verma", "Ashok Rao", "Ashwin Shah", "ASHISH GUPTA", "Prakash N", "Akash J"}
	for i, name := range names {
		require.NoError(t, binder.BindTenant(ctx, newTenant(o.ID, room, i+1, name)))
	}

	repo := NewTenantRepository(db)

	got, err := repo.Search(ctx, o.ID, "ash", 5)
	require.NoError(t, err)
	assert.Len(t, got, 5) // six names match; the cap trims one

	got, err = repo.Search(ctx, o.ID, "ASHO", 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ashok Rao", got[0].Name)

	got, err = repo.Search(ctx, o.ID, "zzz", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// TestPurpose: Validates payment uniqueness and the tenant-joined month
// listing on the sqlite driver.
// Scope: Store Unit Test
// Expected: One payment per (tenant, month); the listing carries tenant
// name, room and bed from the join.
// Test Case ID: SQL-05
func TestPaymentRepository_DuplicateAndList(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	o := seedOwner(t, db)
	room := seedRoom(t, db, o.ID, "101", 2)
	tn := newTenant(o.ID, room, 1, "Asha Verma")
	require.NoError(t, NewAllocationRepository(db).BindTenant(ctx, tn))

	repo := NewPaymentRepository(db)
	pay := func() error {
		return repo.Create(ctx, &ledger.Payment{
			ID:       id.New(),
			OwnerID:  o.ID,
			TenantID: tn.ID,
			Month:    "2026-08",
			Amount:   5000,
			Method:   ledger.MethodUPI,
			Status:   ledger.StatusPaid,
			PaidOn:   time.Now().UTC(),
		})
	}

	require.NoError(t, pay())
	assert.ErrorIs(t, pay(), ledger.ErrDuplicatePayment)

	entries, err := repo.ListByMonth(ctx, o.ID, "2026-08")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Asha Verma", entries[0].TenantName)
	assert.Equal(t, "101", entries[0].RoomName)
	assert.Equal(t, 1, entries[0].BedNumber)
	assert.Equal(t, int64(5000), entries[0].Amount)

	entries, err = repo.ListByMonth(ctx, o.ID, "2026-09")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// TestPurpose: Validates that a payment referencing a tenant id with no row
// surfaces as a not-found fault instead of a retryable store failure.
// Scope: Store Unit Test
// Expected: tenant.ErrTenantNotFound with kind not_found; no payment row.
// Test Case ID: SQL-06
func TestPaymentRepository_DanglingTenant(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	o := seedOwner(t, db)
	repo := NewPaymentRepository(db)

	err := repo.Create(ctx, &ledger.Payment{
		ID:       id.New(),
		OwnerID:  o.ID,
		TenantID: "no-such-tenant",
		Month:    "2026-08",
		Amount:   5000,
		Method:   ledger.MethodCash,
		Status:   ledger.StatusPaid,
		PaidOn:   time.Now().UTC(),
	})
	require.ErrorIs(t, err, tenant.ErrTenantNotFound)
	assert.Equal(t, fault.KindNotFound, fault.KindOf(err))

	entries, err := repo.ListByMonth(ctx, o.ID, "2026-08")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
