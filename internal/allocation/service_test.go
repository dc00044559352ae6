package allocation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pgledger/pgledger/internal/audit"
	"github.com/pgledger/pgledger/internal/fault"
	"github.com/pgledger/pgledger/internal/inventory"
	"github.com/pgledger/pgledger/internal/tenant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRoomRepo struct {
	mock.Mock
}

func (m *mockRoomRepo) Create(ctx context.Context, room *inventory.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *mockRoomRepo) GetByName(ctx context.Context, ownerID, name string) (*inventory.Room, error) {
	args := m.Called(ctx, ownerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Room), args.Error(1)
}

func (m *mockRoomRepo) ListByOwner(ctx context.Context, ownerID string) ([]*inventory.Room, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Room), args.Error(1)
}

type mockBinder struct {
	mock.Mock
}

func (m *mockBinder) BindTenant(ctx context.Context, t *tenant.Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

type mockAudit struct {
	mock.Mock
}

func (m *mockAudit) Log(ctx context.Context, event audit.Event) {
	m.Called(ctx, event)
}

func vacantRoom() *inventory.Room {
	return &inventory.Room{
		ID: "room-1", OwnerID: "owner-1", Name: "Room 101", TotalBeds: 3,
		Beds: []inventory.Bed{
			{BedNumber: 1, Status: inventory.BedVacant},
			{BedNumber: 2, Status: inventory.BedOccupied, OccupantID: "tenant-0"},
			{BedNumber: 3, Status: inventory.BedVacant},
		},
	}
}

func validIntake() Intake {
	return Intake{
		Name:          "Ravi Kumar",
		PhoneNumber:   "9876543210",
		JoiningDate:   "05/01/2026",
		RentAmount:    8000,
		DepositAmount: 16000,
	}
}

// TestPurpose: Validates the happy path binds a fully populated tenant to
// the requested bed with a normalized joining date.
// Scope: Unit Test
// Expected: Binder receives a tenant carrying room ID, denormalized room
// name, bed number and the parsed calendar date.
// Test Case ID: ALC-01
func TestAllocation_AssignTenant_Success(t *testing.T) {
	rooms := new(mockRoomRepo)
	binder := new(mockBinder)
	auditLogger := new(mockAudit)
	service := NewService(rooms, binder, auditLogger)
	ctx := context.Background()

	rooms.On("GetByName", ctx, "owner-1", "Room 101").Return(vacantRoom(), nil)
	binder.On("BindTenant", ctx, mock.MatchedBy(func(tn *tenant.Tenant) bool {
		return tn.RoomID == "room-1" &&
			tn.RoomName == "Room 101" &&
			tn.BedNumber == 1 &&
			tn.JoiningDate.Equal(time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)) &&
			tn.ID != ""
	})).Return(nil)
	auditLogger.On("Log", ctx, mock.Anything).Return()

	got, err := service.AssignTenant(ctx, "owner-1", "Room 101", 1, validIntake())

	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", got.Name)
	binder.AssertExpectations(t)
}

// TestPurpose: Validates single-digit day/month joining dates parse too.
// Scope: Unit Test
// Expected: "5/1/2026" and "05/01/2026" normalize to the same date;
// garbage is rejected with ValidationError before any store call.
// Test Case ID: ALC-02
func TestAllocation_AssignTenant_JoiningDateParsing(t *testing.T) {
	rooms := new(mockRoomRepo)
	binder := new(mockBinder)
	auditLogger := new(mockAudit)
	service := NewService(rooms, binder, auditLogger)
	ctx := context.Background()

	rooms.On("GetByName", ctx, "owner-1", "Room 101").Return(vacantRoom(), nil)
	binder.On("BindTenant", ctx, mock.Anything).Return(nil)
	auditLogger.On("Log", ctx, mock.Anything).Return()

	intake := validIntake()
	intake.JoiningDate = "5/1/2026"
	got, err := service.AssignTenant(ctx, "owner-1", "Room 101", 1, intake)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC), got.JoiningDate)

	for _, bad := range []string{"2026-01-05", "32/01/2026", "15/13/2026", "soon", ""} {
		intake := validIntake()
		intake.JoiningDate = bad
		_, err := service.AssignTenant(ctx, "owner-1", "Room 101", 1, intake)
		assert.Equal(t, fault.KindValidation, fault.KindOf(err), "date %q", bad)
	}
}

// TestPurpose: Validates rejection of bed numbers outside 1..totalBeds with
// no tenant creation attempted.
// Scope: Unit Test
// Expected: ErrInvalidBed; binder never called.
// Test Case ID: ALC-03
func TestAllocation_AssignTenant_InvalidBed(t *testing.T) {
	rooms := new(mockRoomRepo)
	binder := new(mockBinder)
	auditLogger := new(mockAudit)
	service := NewService(rooms, binder, auditLogger)
	ctx := context.Background()

	rooms.On("GetByName", ctx, "owner-1", "Room 101").Return(vacantRoom(), nil)

	for _, n := range []int{0, -1, 4} {
		_, err := service.AssignTenant(ctx, "owner-1", "Room 101", n, validIntake())
		assert.ErrorIs(t, err, ErrInvalidBed, "bed %d", n)
	}
	binder.AssertNotCalled(t, "BindTenant", mock.Anything, mock.Anything)
}

// TestPurpose: Validates unknown rooms surface as NotFound.
// Scope: Unit Test
// Expected: ErrRoomNotFound from the repository propagates.
// Test Case ID: ALC-04
func TestAllocation_AssignTenant_RoomNotFound(t *testing.T) {
	rooms := new(mockRoomRepo)
	binder := new(mockBinder)
	auditLogger := new(mockAudit)
	service := NewService(rooms, binder, auditLogger)
	ctx := context.Background()

	rooms.On("GetByName", ctx, "owner-1", "Room 404").Return(nil, inventory.ErrRoomNotFound)

	_, err := service.AssignTenant(ctx, "owner-1", "Room 404", 1, validIntake())
	assert.ErrorIs(t, err, inventory.ErrRoomNotFound)
}

// TestPurpose: Validates both the advisory snapshot check and the
// authoritative claim reject an occupied bed.
// Scope: Unit Test
// Expected: ErrBedOccupied in both paths.
// Test Case ID: ALC-05
func TestAllocation_AssignTenant_BedOccupied(t *testing.T) {
	rooms := new(mockRoomRepo)
	binder := new(mockBinder)
	auditLogger := new(mockAudit)
	service := NewService(rooms, binder, auditLogger)
	ctx := context.Background()

	rooms.On("GetByName", ctx, "owner-1", "Room 101").Return(vacantRoom(), nil)
	auditLogger.On("Log", ctx, mock.Anything).Return()

	// Snapshot already shows bed 2 occupied.
	_, err := service.AssignTenant(ctx, "owner-1", "Room 101", 2, validIntake())
	assert.ErrorIs(t, err, ErrBedOccupied)
	binder.AssertNotCalled(t, "BindTenant", mock.Anything, mock.Anything)

	// Snapshot showed vacant, but the claim lost the race.
	binder.On("BindTenant", ctx, mock.Anything).Return(ErrBedOccupied)
	_, err = service.AssignTenant(ctx, "owner-1", "Room 101", 1, validIntake())
	assert.ErrorIs(t, err, ErrBedOccupied)
	assert.Equal(t, fault.KindConflict, fault.KindOf(err))
}

// raceBinder emulates the store's conditional claim: one winner per bed.
type raceBinder struct {
	mu      sync.Mutex
	claimed map[int]string
}

func (b *raceBinder) BindTenant(ctx context.Context, t *tenant.Tenant) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.claimed == nil {
		b.claimed = make(map[int]string)
	}
	if _, taken := b.claimed[t.BedNumber]; taken {
		return ErrBedOccupied
	}
	b.claimed[t.BedNumber] = t.ID
	return nil
}

// TestPurpose: Validates the no-double-booking property: concurrent
// assignments for the same bed yield exactly one success and one
// BedOccupied conflict.
// Scope: Unit Test (concurrency)
// Expected: success + conflict, never two of either.
// Test Case ID: ALC-06
func TestAllocation_AssignTenant_NoDoubleBooking(t *testing.T) {
	rooms := new(mockRoomRepo)
	binder := &raceBinder{}
	auditLogger := new(mockAudit)
	service := NewService(rooms, binder, auditLogger)
	ctx := context.Background()

	rooms.On("GetByName", ctx, "owner-1", "Room 101").Return(vacantRoom(), nil)
	auditLogger.On("Log", mock.Anything, mock.Anything).Return()

	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.AssignTenant(ctx, "owner-1", "Room 101", 1, validIntake())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded, conflicted := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case fault.KindOf(err) == fault.KindConflict:
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicted)
}
