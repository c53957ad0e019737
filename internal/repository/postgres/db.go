package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Querier is an interface satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Ensure interfaces are satisfied.
var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// EnsureSchema creates the tables and indexes this service needs if they do
// not exist yet. The partial unique index on trips is what enforces the
// one-active-trip-per-quotation invariant under concurrent creates.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS service_types (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL UNIQUE,
			typename   TEXT NOT NULL,
			max_weight DOUBLE PRECISION NOT NULL CHECK (max_weight >= 0)
		)`,
		`CREATE TABLE IF NOT EXISTS quotations (
			id       TEXT PRIMARY KEY,
			eta      INTEGER NOT NULL CHECK (eta >= 0),
			distance DOUBLE PRECISION NOT NULL CHECK (distance >= 0),
			services JSONB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS trips (
			id                  TEXT PRIMARY KEY,
			status              INTEGER NOT NULL,
			payer_id            TEXT NOT NULL,
			payment_mode        INTEGER NOT NULL,
			quotation_id        TEXT NOT NULL REFERENCES quotations (id),
			service_type_id     TEXT NOT NULL REFERENCES service_types (id),
			order_id            TEXT,
			source_address      TEXT NOT NULL,
			destination_address TEXT NOT NULL,
			sender              JSONB NOT NULL,
			receiver            JSONB NOT NULL,
			driver              JSONB,
			trip_source         TEXT,
			products            JSONB,
			total_order_price   DOUBLE PRECISION,
			cash_collected      DOUBLE PRECISION,
			tip_amount          DOUBLE PRECISION,
			cancel_reason       TEXT
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_trips_active_quotation
			ON trips (quotation_id) WHERE status <> 0`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	return nil
}
