package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/pgledger/pgledger/internal/audit"
	"github.com/pgledger/pgledger/internal/fault"
	"github.com/pgledger/pgledger/internal/tenant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, p *Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockRepo) ListByMonth(ctx context.Context, ownerID, month string) ([]*Entry, error) {
	args := m.Called(ctx, ownerID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Entry), args.Error(1)
}

type mockDirectory struct {
	mock.Mock
}

func (m *mockDirectory) GetByID(ctx context.Context, ownerID, tenantID string) (*tenant.Tenant, error) {
	args := m.Called(ctx, ownerID, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}

type mockAudit struct {
	mock.Mock
}

func (m *mockAudit) Log(ctx context.Context, event audit.Event) {
	m.Called(ctx, event)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func knownTenant(m *mockDirectory, ownerID, tenantID string) {
	m.On("GetByID", mock.Anything, ownerID, tenantID).Return(&tenant.Tenant{ID: tenantID, OwnerID: ownerID}, nil)
}

// TestPurpose: Validates payment recording stamps status, method default and
// the injected clock's paid-on time.
// Scope: Unit Test
// Expected: Stored payment has status paid, method cash, paidOn from clock.
// Test Case ID: LGR-01
func TestLedger_RecordPayment_Success(t *testing.T) {
	repo := new(mockRepo)
	tenants := new(mockDirectory)
	auditLogger := new(mockAudit)
	paidAt := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.Local)
	service := NewService(repo, tenants, auditLogger, fixedClock(paidAt))
	ctx := context.Background()

	knownTenant(tenants, "owner-1", "tenant-1")
	repo.On("Create", ctx, mock.MatchedBy(func(p *Payment) bool {
		return p.Status == StatusPaid &&
			p.Method == MethodCash &&
			p.Month == "2026-03" &&
			p.Amount == 5000 &&
			p.PaidOn.Equal(paidAt)
	})).Return(nil)
	auditLogger.On("Log", ctx, mock.Anything).Return()

	p, err := service.RecordPayment(ctx, "owner-1", "tenant-1", "2026-03", 5000, "")

	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	repo.AssertExpectations(t)
}

// TestPurpose: Validates month key, amount and method validation.
// Scope: Unit Test
// Expected: ValidationError before any store call.
// Test Case ID: LGR-02
func TestLedger_RecordPayment_Validation(t *testing.T) {
	repo := new(mockRepo)
	tenants := new(mockDirectory)
	auditLogger := new(mockAudit)
	service := NewService(repo, tenants, auditLogger, nil)
	ctx := context.Background()

	for _, month := range []string{"2026-13", "2026/03", "March", "26-03", ""} {
		_, err := service.RecordPayment(ctx, "owner-1", "tenant-1", month, 5000, MethodCash)
		assert.Equal(t, fault.KindValidation, fault.KindOf(err), "month %q", month)
	}

	_, err := service.RecordPayment(ctx, "owner-1", "tenant-1", "2026-03", 0, MethodCash)
	assert.Equal(t, fault.KindValidation, fault.KindOf(err))

	_, err = service.RecordPayment(ctx, "owner-1", "tenant-1", "2026-03", 5000, "cheque")
	assert.Equal(t, fault.KindValidation, fault.KindOf(err))

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	tenants.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

// TestPurpose: Validates idempotent rejection of a second payment for the
// same (tenant, month).
// Scope: Unit Test
// Expected: ErrDuplicatePayment conflict propagates; no audit event.
// Test Case ID: LGR-03
func TestLedger_RecordPayment_Duplicate(t *testing.T) {
	repo := new(mockRepo)
	tenants := new(mockDirectory)
	auditLogger := new(mockAudit)
	service := NewService(repo, tenants, auditLogger, nil)
	ctx := context.Background()

	knownTenant(tenants, "owner-1", "tenant-1")
	repo.On("Create", ctx, mock.Anything).Return(ErrDuplicatePayment)

	_, err := service.RecordPayment(ctx, "owner-1", "tenant-1", "2026-03", 5000, MethodUPI)
	assert.ErrorIs(t, err, ErrDuplicatePayment)
	assert.Equal(t, fault.KindConflict, fault.KindOf(err))
	auditLogger.AssertNotCalled(t, "Log", mock.Anything, mock.Anything)
}

// TestPurpose: Validates the timeliness boundary exactly: the 3rd at
// 23:59:59 is on-time, the 4th at 00:00:00 is not.
// Scope: Unit Test
// Expected: Inclusive cutoff at the due second.
// Test Case ID: LGR-04
func TestLedger_OnTime_Boundary(t *testing.T) {
	atCutoff := time.Date(2026, time.March, 3, 23, 59, 59, 0, time.Local)
	pastCutoff := time.Date(2026, time.March, 4, 0, 0, 0, 0, time.Local)

	assert.True(t, OnTime(atCutoff, "2026-03"))
	assert.False(t, OnTime(pastCutoff, "2026-03"))

	assert.True(t, OnTime(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.Local), "2026-03"))
	assert.False(t, OnTime(time.Date(2026, time.March, 31, 12, 0, 0, 0, time.Local), "2026-03"))
}

// TestPurpose: Validates DueDate computation and month key formatting.
// Scope: Unit Test
// Expected: Due date is the 3rd 23:59:59 of the month; invalid keys error.
// Test Case ID: LGR-05
func TestLedger_DueDate(t *testing.T) {
	due, err := DueDate("2026-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.February, 3, 23, 59, 59, 0, time.Local), due)

	_, err = DueDate("2026-2")
	assert.Error(t, err)

	assert.Equal(t, "2026-02", MonthKey(time.Date(2026, time.February, 27, 0, 0, 0, 0, time.Local)))
}

// TestPurpose: Validates listing passes through owner and month filters and
// is idempotent with no intervening writes.
// Scope: Unit Test
// Expected: Identical results on repeated calls.
// Test Case ID: LGR-06
func TestLedger_ListPayments_IdempotentRead(t *testing.T) {
	repo := new(mockRepo)
	auditLogger := new(mockAudit)
	service := NewService(repo, new(mockDirectory), auditLogger, nil)
	ctx := context.Background()

	entries := []*Entry{
		{Payment: Payment{ID: "pay-1", Month: "2026-03", Amount: 5000}, TenantName: "Ravi Kumar"},
	}
	repo.On("ListByMonth", ctx, "owner-1", "2026-03").Return(entries, nil).Twice()

	first, err := service.ListPayments(ctx, "owner-1", "2026-03")
	require.NoError(t, err)
	second, err := service.ListPayments(ctx, "owner-1", "2026-03")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = service.ListPayments(ctx, "owner-1", "bad-month")
	assert.Equal(t, fault.KindValidation, fault.KindOf(err))
}

// TestPurpose: Validates that a payment against a tenant id that does not
// resolve in the owner's scope is rejected as not-found, never written, and
// never classified as a retryable store failure. The owner scope also covers
// another owner's tenant id.
// Scope: Unit Test
// Expected: tenant.ErrTenantNotFound, no Create call, no audit event.
// Test Case ID: LGR-07
func TestLedger_RecordPayment_UnknownTenant(t *testing.T) {
	repo := new(mockRepo)
	tenants := new(mockDirectory)
	auditLogger := new(mockAudit)
	service := NewService(repo, tenants, auditLogger, nil)
	ctx := context.Background()

	tenants.On("GetByID", mock.Anything, "owner-1", "ghost").Return(nil, tenant.ErrTenantNotFound)
	// Another owner's tenant resolves to nothing inside this owner's scope.
	tenants.On("GetByID", mock.Anything, "owner-1", "tenant-of-owner-2").Return(nil, tenant.ErrTenantNotFound)

	_, err := service.RecordPayment(ctx, "owner-1", "ghost", "2026-03", 5000, MethodCash)
	require.ErrorIs(t, err, tenant.ErrTenantNotFound)
	assert.Equal(t, fault.KindNotFound, fault.KindOf(err))

	_, err = service.RecordPayment(ctx, "owner-1", "tenant-of-owner-2", "2026-03", 5000, MethodCash)
	require.ErrorIs(t, err, tenant.ErrTenantNotFound)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	auditLogger.AssertNotCalled(t, "Log", mock.Anything, mock.Anything)
}

// TestPurpose: Validates that an empty month filter resolves to the current
// month on the injected clock.
// Scope: Unit Test
// Expected: The repository is queried with the clock's month key, and
// CurrentMonth reports the same key.
// Test Case ID: LGR-08
func TestLedger_ListPayments_DefaultMonth(t *testing.T) {
	repo := new(mockRepo)
	auditLogger := new(mockAudit)
	frozen := time.Date(2026, time.January, 15, 9, 0, 0, 0, time.Local)
	service := NewService(repo, new(mockDirectory), auditLogger, fixedClock(frozen))
	ctx := context.Background()

	repo.On("ListByMonth", ctx, "owner-1", "2026-01").Return([]*Entry{}, nil)

	_, err := service.ListPayments(ctx, "owner-1", "")
	require.NoError(t, err)
	assert.Equal(t, "2026-01", service.CurrentMonth())
	repo.AssertExpectations(t)
}
