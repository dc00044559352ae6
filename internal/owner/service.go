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

package owner

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/pgledger/pgledger/internal/audit"
	"github.com/pgledger/pgledger/internal/fault"
	"github.com/pgledger/pgledger/internal/id"
)

// Indian mobile numbers: 10 digits, leading 6-9.
var phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

// Service provides owner registration and login business logic
type Service struct {
	repo        Repository
	auditLogger audit.Logger
}

// NewService creates a new owner service
func NewService(repo Repository, auditLogger audit.Logger) *Service {
	return &Service{
		repo:        repo,
		auditLogger: auditLogger,
	}
}

// Register creates a new owner account keyed by phone number.
func (s *Service) Register(ctx context.Context, phoneNumber, pgName string) (*Owner, error) {
	if !phonePattern.MatchString(phoneNumber) {
		return nil, fault.Validation("invalid_phone_number", "invalid Indian phone number")
	}
	pgName = strings.TrimSpace(pgName)
	if len(pgName) < 3 || len(pgName) > 100 {
		return nil, fault.Validation("invalid_pg_name", "PG name must be between 3 and 100 characters")
	}

	now := time.Now()
	o := &Owner{
		ID:          id.New(),
		PhoneNumber: phoneNumber,
		PGName:      pgName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Uniqueness is enforced by the store's constraint, not a pre-read, so
	// concurrent registrations of the same number cannot both succeed.
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:    audit.TypeOwnerRegistered,
		OwnerID: o.ID,
	})

	return o, nil
}

// Login resolves an owner by phone number. There are no credentials beyond
// the number itself; authentication proper is out of scope.
func (s *Service) Login(ctx context.Context, phoneNumber string) (*Owner, error) {
	o, err := s.repo.GetByPhone(ctx, phoneNumber)
	if err != nil {
		return nil, err
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:    audit.TypeOwnerLogin,
		OwnerID: o.ID,
	})

	return o, nil
}

// Get retrieves an owner by ID
func (s *Service) Get(ctx context.Context, ownerID string) (*Owner, error) {
	return s.repo.GetByID(ctx, ownerID)
}
