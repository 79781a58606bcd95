// Package storage contains storage-agnostic contracts and utilities for
// persisting analytics records. Concrete backends live in subpackages and
// register themselves with the factory at init time, so callers stay
// backend-agnostic and select a backend by its configured kind.
package storage

import (
	"context"
	"fmt"
	"sync"
)

// Config selects and configures a storage backend.
type Config struct {
	// Kind selects the backend implementation (e.g. "postgres", "sqlite").
	Kind string

	// DSN is the backend connection string.
	DSN string

	// Table is the destination table name.
	Table string
}

// Repository is the minimal sink interface the loader depends on.
type Repository interface {
	// CopyFrom bulk-inserts rows aligned to the columns order and returns the
	// number of rows inserted.
	CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error)

	// Exec executes an arbitrary SQL statement (typically DDL).
	Exec(ctx context.Context, sql string) error

	Close() error
}

// Factory constructs a Repository for one storage kind.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

// DDLBootstrapper creates the destination table for one storage kind via
// repo.Exec (typically CREATE TABLE IF NOT EXISTS).
type DDLBootstrapper func(ctx context.Context, repo Repository, cfg Config) error

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
	ddlFns    = map[string]DDLBootstrapper{}
)

// Register installs (or replaces) the factory for a storage kind. It is
// called from backend packages' init functions.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// RegisterDDL installs (or replaces) the DDL bootstrapper for a storage kind.
func RegisterDDL(kind string, fn DDLBootstrapper) {
	mu.Lock()
	defer mu.Unlock()
	ddlFns[kind] = fn
}

// New opens a Repository for the configured kind. Unregistered kinds are an
// error; make sure the backend package (or storage/all) is imported.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no storage backend registered for kind=%q", cfg.Kind)
	}
	return f(ctx, cfg)
}

// EnsureTable invokes the DDL bootstrapper registered for cfg.Kind.
func EnsureTable(ctx context.Context, repo Repository, cfg Config) error {
	mu.RLock()
	fn, ok := ddlFns[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return fmt.Errorf("no DDL bootstrapper registered for kind=%q", cfg.Kind)
	}
	return fn(ctx, repo, cfg)
}
