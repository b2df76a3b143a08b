package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// No foreign keys: references between orders, customers, locations, catering
// services, and payments are best effort and may dangle after deletes.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS customers_email_idx ON customers (email, created_at)`,
	`CREATE TABLE IF NOT EXISTS items (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC(12,2) NOT NULL DEFAULT 0,
		category TEXT NOT NULL DEFAULT '',
		is_available BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS meal_sets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC(12,2) NOT NULL DEFAULT 0,
		items TEXT[] NOT NULL DEFAULT '{}',
		is_available BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS locations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'active',
		region TEXT NOT NULL DEFAULT '',
		province TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		customer_id TEXT,
		customer_name TEXT NOT NULL DEFAULT '',
		customer_email TEXT NOT NULL DEFAULT '',
		customer_phone TEXT NOT NULL DEFAULT '',
		items JSONB NOT NULL DEFAULT '[]',
		meal_set_id TEXT,
		quantity INTEGER NOT NULL DEFAULT 1,
		total_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
		order_type TEXT NOT NULL DEFAULT 'custom',
		status TEXT NOT NULL DEFAULT 'pending',
		event_type TEXT NOT NULL DEFAULT '',
		event_date TEXT NOT NULL DEFAULT '',
		order_date TEXT NOT NULL DEFAULT '',
		delivery_date TEXT NOT NULL DEFAULT '',
		delivery_address TEXT NOT NULL DEFAULT '',
		location_id TEXT,
		contact_person TEXT NOT NULL DEFAULT '',
		contact_number TEXT NOT NULL DEFAULT '',
		payment_method TEXT NOT NULL DEFAULT '',
		special_instructions TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS orders_customer_email_idx ON orders (customer_email)`,
	`CREATE TABLE IF NOT EXISTS catering_services (
		id TEXT PRIMARY KEY,
		customer_id TEXT,
		customer_name TEXT NOT NULL DEFAULT '',
		event_type TEXT NOT NULL DEFAULT '',
		event_date TEXT NOT NULL DEFAULT '',
		guest_count INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'pending',
		location TEXT NOT NULL DEFAULT '',
		location_id TEXT,
		special_requests TEXT NOT NULL DEFAULT '',
		order_id TEXT,
		payment_method TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id TEXT PRIMARY KEY,
		order_id TEXT,
		amount NUMERIC(12,2) NOT NULL DEFAULT 0,
		payment_method TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		transaction_ref TEXT NOT NULL DEFAULT '',
		payment_date TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS payments_order_id_idx ON payments (order_id)`,
}

// Migrate applies the schema. Every statement is idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
