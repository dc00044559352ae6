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

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pgledger/pgledger/internal/allocation"
	"github.com/pgledger/pgledger/internal/audit"
	"github.com/pgledger/pgledger/internal/config"
	"github.com/pgledger/pgledger/internal/dashboard"
	"github.com/pgledger/pgledger/internal/inventory"
	"github.com/pgledger/pgledger/internal/ledger"
	"github.com/pgledger/pgledger/internal/observability/logger"
	"github.com/pgledger/pgledger/internal/observability/tracing"
	"github.com/pgledger/pgledger/internal/owner"
	"github.com/pgledger/pgledger/internal/store/postgres"
	"github.com/pgledger/pgledger/internal/store/sqlite"
	"github.com/pgledger/pgledger/internal/tenant"
	transportHTTP "github.com/pgledger/pgledger/internal/transport/http"
)

// store bundles the repository set behind one driver so the wiring below
// stays driver-agnostic.
type store struct {
	owners   owner.Repository
	rooms    inventory.Repository
	tenants  tenant.Repository
	binder   allocation.Binder
	payments ledger.Repository
	migrate  func(ctx context.Context) error
	close    func()
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.InitLogger(logger.Config{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: cfg.Observability.ServiceName,
	})
	slog.Info("starting pgledger occupancy and rent ledger service")

	ctx := context.Background()

	st, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store", logger.Error(err), logger.Driver(cfg.Database.Driver))
		os.Exit(1)
	}
	defer st.close()
	slog.Info("connected to store", logger.Driver(cfg.Database.Driver))

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := st.migrate(ctx); err != nil {
			fmt.Printf("Migration failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Migration successful.")
		os.Exit(0)
	}

	// Initialize tracer
	tracer, err := tracing.New(ctx, tracing.Config{
		Enabled:        cfg.Observability.OTELEnabled,
		ServiceName:    cfg.Observability.ServiceName,
		ServiceVersion: cfg.Observability.ServiceVersion,
		SamplingRate:   1.0,
	})
	if err != nil {
		slog.Error("failed to initialize tracer", logger.Error(err))
	}
	defer tracer.Shutdown(ctx)

	// Initialize services
	auditLogger := audit.NewSlogLogger()
	ownerService := owner.NewService(st.owners, auditLogger)
	inventoryService := inventory.NewService(st.rooms, auditLogger)
	tenantService := tenant.NewService(st.tenants)
	allocationService := allocation.NewService(st.rooms, st.binder, auditLogger)
	ledgerService := ledger.NewService(st.payments, st.tenants, auditLogger, nil)
	dashboardService := dashboard.NewService(st.rooms, st.tenants, st.payments, nil)

	// Rate Limiter
	rateLimiter := transportHTTP.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	// Initialize HTTP handler
	handler := transportHTTP.NewHandler(
		ownerService,
		inventoryService,
		tenantService,
		allocationService,
		ledgerService,
		dashboardService,
	)

	// Create router
	router := transportHTTP.NewRouter(handler, rateLimiter)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server
	go func() {
		slog.Info("starting http server", logger.Component("server"), logger.Operation("listen"))
		slog.Info(fmt.Sprintf("listening on %s", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", logger.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", logger.Error(err))
	}

	slog.Info("server stopped")
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.Database.Driver {
	case "postgres":
		db, err := postgres.New(ctx, postgres.Config{
			Host:         cfg.Database.Host,
			Port:         cfg.Database.Port,
			User:         cfg.Database.User,
			Password:     cfg.Database.Password,
			Database:     cfg.Database.Database,
			SSLMode:      cfg.Database.SSLMode,
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
		})
		if err != nil {
			return nil, err
		}
		return &store{
			owners:   postgres.NewOwnerRepository(db),
			rooms:    postgres.NewRoomRepository(db),
			tenants:  postgres.NewTenantRepository(db),
			binder:   postgres.NewAllocationRepository(db),
			payments: postgres.NewPaymentRepository(db),
			migrate: func(ctx context.Context) error {
				return db.Migrate(ctx, postgres.InitialSchema)
			},
			close: db.Close,
		}, nil
	case "sqlite":
		db, err := sqlite.New(ctx, cfg.Database.SQLitePath)
		if err != nil {
			return nil, err
		}
		// SQLite deployments self-migrate; there is no separate migration
		// step to coordinate for a single-file store.
		if err := db.Migrate(ctx, sqlite.InitialSchema); err != nil {
			db.Close()
			return nil, err
		}
		return &store{
			owners:   sqlite.NewOwnerRepository(db),
			rooms:    sqlite.NewRoomRepository(db),
			tenants:  sqlite.NewTenantRepository(db),
			binder:   sqlite.NewAllocationRepository(db),
			payments: sqlite.NewPaymentRepository(db),
			migrate: func(ctx context.Context) error {
				return db.Migrate(ctx, sqlite.InitialSchema)
			},
			close: db.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}
