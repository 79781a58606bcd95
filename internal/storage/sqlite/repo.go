// Package sqlite implements a SQLite-backed storage.Repository using
// database/sql. SQLite has no dedicated bulk-load API, so CopyFrom performs
// batched INSERTs inside a single transaction, which keeps performance
// acceptable for moderate volumes.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"ordermart/internal/storage"
)

func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return NewRepository(ctx, cfg)
	})
	storage.RegisterDDL("sqlite", ensureTable)
}

// Repository is a SQLite-backed implementation of storage.Repository.
type Repository struct {
	db  *sql.DB
	cfg storage.Config
}

// NewRepository opens a SQLite connection using the provided DSN, e.g.
// "mart.db" or "file:mart.db?cache=shared".
func NewRepository(ctx context.Context, cfg storage.Config) (*Repository, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("sqlite: DSN must not be empty")
	}

	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	return &Repository{db: db, cfg: cfg}, nil
}

// CopyFrom inserts rows into the configured table using a single transaction
// and a prepared INSERT statement. len(row) must equal len(columns) for every
// row.
func (r *Repository) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("sqlite: CopyFrom: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	stmtSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		r.cfg.Table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: begin tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, stmtSQL)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for _, row := range rows {
		if len(row) != len(columns) {
			_ = tx.Rollback()
			return inserted, fmt.Errorf("sqlite: CopyFrom: row length %d != columns length %d", len(row), len(columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			_ = tx.Rollback()
			return inserted, fmt.Errorf("sqlite: insert: %w", err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("sqlite: commit: %w", err)
	}
	return inserted, nil
}

// Exec executes an arbitrary SQL statement (typically DDL).
func (r *Repository) Exec(ctx context.Context, sql string) error {
	if strings.TrimSpace(sql) == "" {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, sql); err != nil {
		return fmt.Errorf("sqlite: exec: %w", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (r *Repository) Close() error { return r.db.Close() }

// ensureTable creates the analytics table if it does not exist. Timestamps
// are stored as TEXT; SQLite has no native timestamp type.
func ensureTable(ctx context.Context, repo storage.Repository, cfg storage.Config) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	order_id                      TEXT PRIMARY KEY,
	customer_unique_id            TEXT NOT NULL,
	order_status                  TEXT NOT NULL,
	customer_city                 TEXT,
	customer_state                TEXT,
	region                        TEXT NOT NULL,
	order_purchase_timestamp      TEXT NOT NULL,
	order_delivered_customer_date TEXT NOT NULL,
	order_estimated_delivery_date TEXT NOT NULL,
	delivery_days                 INTEGER NOT NULL,
	promised_days                 INTEGER NOT NULL,
	delay_status                  TEXT NOT NULL,
	valor_total_pagamento         REAL NOT NULL DEFAULT 0,
	valor_total_produtos          REAL NOT NULL DEFAULT 0,
	valor_total_frete             REAL NOT NULL DEFAULT 0,
	metodos_pagamento             TEXT NOT NULL DEFAULT '',
	review_score                  REAL
)`, cfg.Table)
	return repo.Exec(ctx, ddl)
}
