package db

import (
	"context"
	"fmt"
	"log"
)

// Per-driver DDL. The schemas are identical apart from id generation;
// timestamps are always written from Go so no dialect default is relied on
// for correctness.
var migrations = map[string][]string{
	"pgx": {
		`CREATE TABLE IF NOT EXISTS inventory_items (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			current_stock INTEGER NOT NULL,
			base_threshold INTEGER NOT NULL,
			max_capacity INTEGER NOT NULL,
			unit TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'ok',
			last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS restock_orders (
			id BIGSERIAL PRIMARY KEY,
			item_id BIGINT,
			item_name TEXT NOT NULL,
			quantity_ordered INTEGER NOT NULL,
			triggered_by TEXT NOT NULL DEFAULT 'auto',
			is_peak_hour BOOLEAN NOT NULL DEFAULT FALSE,
			email_sent BOOLEAN NOT NULL DEFAULT FALSE,
			whatsapp_sent BOOLEAN NOT NULL DEFAULT FALSE,
			status TEXT NOT NULL DEFAULT 'pending',
			triggered_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_restock_orders_item_status
			ON restock_orders (item_id, status)`,
	},
	"sqlite3": {
		`CREATE TABLE IF NOT EXISTS inventory_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			current_stock INTEGER NOT NULL,
			base_threshold INTEGER NOT NULL,
			max_capacity INTEGER NOT NULL,
			unit TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'ok',
			last_updated TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS restock_orders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			item_id INTEGER,
			item_name TEXT NOT NULL,
			quantity_ordered INTEGER NOT NULL,
			triggered_by TEXT NOT NULL DEFAULT 'auto',
			is_peak_hour BOOLEAN NOT NULL DEFAULT 0,
			email_sent BOOLEAN NOT NULL DEFAULT 0,
			whatsapp_sent BOOLEAN NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'pending',
			triggered_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_restock_orders_item_status
			ON restock_orders (item_id, status)`,
	},
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context) error {
	stmts, ok := migrations[driverName]
	if !ok {
		return fmt.Errorf("no migrations for driver %s", driverName)
	}
	for _, stmt := range stmts {
		if _, err := DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	log.Printf("✓ Schema ready")
	return nil
}
