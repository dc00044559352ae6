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

package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/pgledger/pgledger/internal/audit"
	"github.com/pgledger/pgledger/internal/fault"
	"github.com/pgledger/pgledger/internal/id"
	"github.com/pgledger/pgledger/internal/observability/metrics"
	"github.com/pgledger/pgledger/internal/tenant"
)

// TenantDirectory resolves a tenant within an owner's scope. Payments are
// only recorded against tenants the owner can see.
type TenantDirectory interface {
	GetByID(ctx context.Context, ownerID, tenantID string) (*tenant.Tenant, error)
}

// Service provides rent ledger business logic. The clock is injected so
// the paid-on timestamp and the on-time cutoff stay testable.
type Service struct {
	repo        Repository
	tenants     TenantDirectory
	auditLogger audit.Logger
	now         func() time.Time
}

// NewService creates a new ledger service
func NewService(repo Repository, tenants TenantDirectory, auditLogger audit.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:        repo,
		tenants:     tenants,
		auditLogger: auditLogger,
		now:         now,
	}
}

// RecordPayment appends a paid record for (tenant, month). A record that
// already exists is rejected, not overwritten.
func (s *Service) RecordPayment(ctx context.Context, ownerID, tenantID, month string, amount int64, method string) (*Payment, error) {
	if ownerID == "" || tenantID == "" {
		return nil, fault.Validation("missing_payment_reference", "owner id and tenant id are required")
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, fault.Validation("invalid_month", "month must be a YYYY-MM key")
	}
	if amount <= 0 {
		return nil, fault.Validation("invalid_amount", "payment amount must be positive")
	}
	switch method {
	case "":
		method = MethodCash
	case MethodCash, MethodUPI, MethodBank, MethodOther:
	default:
		return nil, fault.Validation("invalid_method", "payment method must be cash, upi, bank or other")
	}

	if _, err := s.tenants.GetByID(ctx, ownerID, tenantID); err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			metrics.RecordPayment(metrics.OutcomeNotFound)
		} else {
			metrics.RecordPayment(metrics.OutcomeStoreFail)
		}
		return nil, err
	}

	p := &Payment{
		ID:       id.New(),
		OwnerID:  ownerID,
		TenantID: tenantID,
		Month:    month,
		Amount:   amount,
		Status:   StatusPaid,
		Method:   method,
		PaidOn:   s.now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, ErrDuplicatePayment) {
			metrics.RecordPayment(metrics.OutcomeConflict)
		} else {
			metrics.RecordPayment(metrics.OutcomeStoreFail)
		}
		return nil, err
	}

	metrics.RecordPayment(metrics.OutcomeSuccess)
	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypePaymentRecorded,
		OwnerID:  ownerID,
		Resource: p.ID,
		Metadata: map[string]any{"tenant_id": tenantID, "month": month, "amount": amount},
	})

	return p, nil
}

// CurrentMonth returns the month key for the service clock's current time.
func (s *Service) CurrentMonth() string {
	return MonthKey(s.now())
}

// ListPayments returns the owner's payments for a month joined with tenant
// identity. An empty month defaults to the current month on the service
// clock.
func (s *Service) ListPayments(ctx context.Context, ownerID, month string) ([]*Entry, error) {
	if ownerID == "" {
		return nil, fault.Validation("missing_owner_id", "owner id is required")
	}
	if month == "" {
		month = MonthKey(s.now())
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, fault.Validation("invalid_month", "month must be a YYYY-MM key")
	}
	return s.repo.ListByMonth(ctx, ownerID, month)
}
