package tenant

import (
	"context"
	"testing"

	"github.com/pgledger/pgledger/internal/fault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetByID(ctx context.Context, ownerID, tenantID string) (*Tenant, error) {
	args := m.Called(ctx, ownerID, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Tenant), args.Error(1)
}

func (m *mockRepo) GetByBed(ctx context.Context, ownerID, roomName string, bedNumber int) (*Tenant, error) {
	args := m.Called(ctx, ownerID, roomName, bedNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Tenant), args.Error(1)
}

func (m *mockRepo) Search(ctx context.Context, ownerID, query string, limit int) ([]*Tenant, error) {
	args := m.Called(ctx, ownerID, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Tenant), args.Error(1)
}

func (m *mockRepo) ListByOwner(ctx context.Context, ownerID string) ([]*Tenant, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Tenant), args.Error(1)
}

// TestPurpose: Validates the search path passes the fixed result cap to the
// repository and trims the query.
// Scope: Unit Test
// Expected: Repository receives the trimmed query and limit 5.
// Test Case ID: TNT-01
func TestTenant_Search_AppliesLimit(t *testing.T) {
	repo := new(mockRepo)
	service := NewService(repo)
	ctx := context.Background()

	want := []*Tenant{{ID: "tenant-1", Name: "Ravi Kumar"}}
	repo.On("Search", ctx, "owner-1", "rav", SearchLimit).Return(want, nil)

	got, err := service.Search(ctx, "owner-1", "  rav ")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	repo.AssertExpectations(t)
}

// TestPurpose: Validates search input requirements.
// Scope: Unit Test
// Expected: ValidationError for empty owner or query.
// Test Case ID: TNT-02
func TestTenant_Search_Validation(t *testing.T) {
	repo := new(mockRepo)
	service := NewService(repo)
	ctx := context.Background()

	_, err := service.Search(ctx, "", "rav")
	assert.Equal(t, fault.KindValidation, fault.KindOf(err))

	_, err = service.Search(ctx, "owner-1", "   ")
	assert.Equal(t, fault.KindValidation, fault.KindOf(err))

	repo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// TestPurpose: Validates bed-based tenant lookup and not-found propagation.
// Scope: Unit Test
// Expected: Tenant returned when bound, ErrTenantNotFound when the bed is
// empty.
// Test Case ID: TNT-03
func TestTenant_GetByBed(t *testing.T) {
	repo := new(mockRepo)
	service := NewService(repo)
	ctx := context.Background()

	want := &Tenant{ID: "tenant-1", RoomName: "Room 101", BedNumber: 2}
	repo.On("GetByBed", ctx, "owner-1", "Room 101", 2).Return(want, nil).Once()

	got, err := service.GetByBed(ctx, "owner-1", "Room 101", 2)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	repo.On("GetByBed", ctx, "owner-1", "Room 101", 1).Return(nil, ErrTenantNotFound).Once()
	_, err = service.GetByBed(ctx, "owner-1", "Room 101", 1)
	assert.ErrorIs(t, err, ErrTenantNotFound)

	_, err = service.GetByBed(ctx, "owner-1", "Room 101", 0)
	assert.Equal(t, fault.KindValidation, fault.KindOf(err))
}
