package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/pgledger/pgledger/internal/store/postgres"
)

// Standalone migration runner for CI and manual setup. The server's
// `migrate` subcommand covers the common case; this one takes a raw
// connection string so it needs no .env.
func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		fmt.Println("usage: migrate <connection-string>")
		os.Exit(1)
	}
	connStr := os.Args[1]

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("Failed to ping: %v", err)
	}

	fmt.Println("Connected to database")
	fmt.Println("Applying initial schema...")

	if _, err := db.ExecContext(ctx, postgres.InitialSchema); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	fmt.Println("Migration completed successfully")
}
