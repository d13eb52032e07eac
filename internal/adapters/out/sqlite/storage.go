// Package sqlite stores orders in a single SQLite file. It is meant for a single
// home-office machine where running PostgreSQL is not worth it.
//
// Timestamps are stored as fixed-width UTC text so range predicates compare strings;
// prices and totals are stored as decimal strings so no precision is lost.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS orders (
    id                  TEXT PRIMARY KEY,
    total               TEXT    NOT NULL,
    order_source        TEXT    NOT NULL,
    location_id         TEXT    NOT NULL,
    customer_loyalty_id TEXT,
    order_placed_at     TEXT    NOT NULL,
    order_completed_at  TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_placed ON orders(order_placed_at);
CREATE INDEX IF NOT EXISTS idx_orders_location_placed ON orders(location_id, order_placed_at);

CREATE TABLE IF NOT EXISTS line_items (
    order_id    TEXT    NOT NULL,
    position    INTEGER NOT NULL,
    item        TEXT    NOT NULL,
    price       TEXT    NOT NULL,
    prepared_by TEXT    NOT NULL DEFAULT '',
    PRIMARY KEY (order_id, position),
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
);
`

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite benefits from a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys=ON"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return db, nil
}
