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

// Package sqlite provides a single-file store for deployments without a
// PostgreSQL server. It implements the same repository interfaces as the
// postgres package over database/sql and the pure Go sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pgledger/pgledger/internal/fault"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

//go:embed migrations/001_initial_schema.up.sql
var InitialSchema string

// DB wraps a sqlite database handle
type DB struct {
	db *sql.DB
}

// New opens (creating if absent) the sqlite database at path.
func New(ctx context.Context, path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// The driver serializes writers; a single connection avoids
	// SQLITE_BUSY churn under concurrent transactions.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database handle
func (d *DB) Close() {
	d.db.Close()
}

// Migrate runs a SQL script
func (d *DB) Migrate(ctx context.Context, script string) error {
	_, err := d.db.ExecContext(ctx, script)
	return err
}

// isUniqueViolation reports whether err is a unique constraint violation on
// the named column set ("table.column"). SQLite reports the columns, not a
// constraint name, so matching is by error text.
func isUniqueViolation(err error, columns string) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	if se.Code() != sqlite3.SQLITE_CONSTRAINT_UNIQUE && se.Code() != sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
		return false
	}
	return strings.Contains(se.Error(), columns)
}

// isForeignKeyViolation reports whether err is a foreign key constraint
// violation. SQLite does not say which reference failed, so callers must
// know which FK their statement can trip.
func isForeignKeyViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
}

// storeErr classifies a store failure as retryable, matching the postgres
// driver's behavior so callers see one taxonomy regardless of driver.
func storeErr(op string, err error) error {
	return fault.Unavailable(fmt.Errorf("%s: %w", op, err))
}
