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

// Package dashboard derives owner summary statistics from a point-in-time
// snapshot of inventory, tenant registry and ledger state.
package dashboard

import (
	"github.com/pgledger/pgledger/internal/inventory"
	"github.com/pgledger/pgledger/internal/ledger"
	"github.com/pgledger/pgledger/internal/tenant"
)

// RentDetails summarizes the current month's collection state.
type RentDetails struct {
	Paid    int `json:"paid"`
	NotPaid int `json:"not_paid"`
	OnTime  int `json:"on_time"`
}

// Stats is a point-in-time snapshot, not a live subscription.
type Stats struct {
	Month             string      `json:"month"`
	TotalRooms        int         `json:"total_rooms"`
	TotalBeds         int         `json:"total_beds"`
	VacantBeds        int         `json:"vacant_beds"`
	Revenue           int64       `json:"revenue"`
	RentDetails       RentDetails `json:"rent_details"`
	NoticePeriod      int         `json:"notice_period"`
	NoticePeriodTotal int         `json:"notice_period_total"`
}

// Aggregate computes stats from a snapshot. Pure: no I/O, no side effects,
// safe to call repeatedly.
//
// Unpaid rent has no stored row, so not-paid is derived by crossing the
// full tenant registry against the month's payment set. Counting only
// payment rows would undercount tenants who joined after the last
// collection round and owners with no payments at all.
func Aggregate(rooms []*inventory.Room, tenants []*tenant.Tenant, payments []*ledger.Entry, month string) Stats {
	stats := Stats{Month: month}

	for _, room := range rooms {
		stats.TotalRooms++
		stats.TotalBeds += len(room.Beds)
		stats.VacantBeds += room.VacantBeds()
	}

	stats.NoticePeriodTotal = len(tenants)
	for _, t := range tenants {
		if t.NoticePeriod {
			stats.NoticePeriod++
		}
	}

	paidBy := make(map[string]bool, len(payments))
	for _, p := range payments {
		if p.Status != ledger.StatusPaid {
			continue
		}
		paidBy[p.TenantID] = true
		stats.Revenue += p.Amount
		if ledger.OnTime(p.PaidOn, month) {
			stats.RentDetails.OnTime++
		}
	}

	for _, t := range tenants {
		if paidBy[t.ID] {
			stats.RentDetails.Paid++
		} else {
			stats.RentDetails.NotPaid++
		}
	}

	return stats
}
