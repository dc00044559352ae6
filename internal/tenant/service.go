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

package tenant

import (
	"context"
	"strings"

	"github.com/pgledger/pgledger/internal/fault"
)

// Service provides tenant registry lookups. Mutation lives in the
// allocation package.
type Service struct {
	repo Repository
}

// NewService creates a new tenant registry service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search finds tenants whose name contains the query, case-insensitive,
// capped at SearchLimit.
func (s *Service) Search(ctx context.Context, ownerID, query string) ([]*Tenant, error) {
	if ownerID == "" {
		return nil, fault.Validation("missing_owner_id", "owner id is required")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fault.Validation("missing_query", "search query is required")
	}
	return s.repo.Search(ctx, ownerID, query, SearchLimit)
}

// GetByBed resolves the tenant currently bound to a bed.
func (s *Service) GetByBed(ctx context.Context, ownerID, roomName string, bedNumber int) (*Tenant, error) {
	if ownerID == "" || roomName == "" {
		return nil, fault.Validation("missing_bed_reference", "owner id and room name are required")
	}
	if bedNumber < 1 {
		return nil, fault.Validation("invalid_bed_number", "bed number must be positive")
	}
	return s.repo.GetByBed(ctx, ownerID, roomName, bedNumber)
}

// Get retrieves a tenant by ID, owner-scoped.
func (s *Service) Get(ctx context.Context, ownerID, tenantID string) (*Tenant, error) {
	return s.repo.GetByID(ctx, ownerID, tenantID)
}
