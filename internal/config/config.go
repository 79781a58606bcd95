// Package config defines the JSON-serializable configuration model for the
// analytics mart builder. It is intentionally small and explicit so that
// pipeline files can be loaded from disk and passed through the program
// without additional glue code; decoding is performed by the standard
// library, keeping the config layer free of third-party dependencies.
//
// Example (trimmed):
//
//	{
//	  "job": "order_analytics",
//	  "sources": {
//	    "orders":    { "path": "data/olist_orders_dataset.csv" },
//	    "customers": { "path": "data/olist_customers_dataset.csv" },
//	    "payments":  { "path": "data/olist_order_payments_dataset.csv" },
//	    "items":     { "path": "data/olist_order_items_dataset.csv" },
//	    "reviews":   { "path": "data/olist_order_reviews_dataset.csv" }
//	  },
//	  "storage": {
//	    "kind": "sqlite",
//	    "db": { "dsn": "mart.db", "table": "order_analytics", "auto_create_table": true }
//	  },
//	  "export": { "dir": "reports", "formats": ["json"] },
//	  "runtime": { "batch_size": 5000, "channel_buffer": 2048 }
//	}
package config

import (
	"encoding/json"
	"io"
	"os"
)

// Pipeline is the top-level object decoded from a pipeline file.
type Pipeline struct {
	// Job names the run; it labels metrics and log summaries.
	Job string `json:"job"`

	// Sources locates the five input relations.
	Sources Sources `json:"sources"`

	// Storage describes where the analytics records are written.
	Storage Storage `json:"storage"`

	// Export optionally writes report files alongside the storage load.
	Export Export `json:"export"`

	Runtime Runtime `json:"runtime"`
}

// Sources holds one file source per input relation.
type Sources struct {
	Orders    FileSource `json:"orders"`
	Customers FileSource `json:"customers"`
	Payments  FileSource `json:"payments"`
	Items     FileSource `json:"items"`
	Reviews   FileSource `json:"reviews"`
}

// FileSource configures a single CSV input.
type FileSource struct {
	// Path is the local filesystem path to the CSV file.
	Path string `json:"path"`

	// Comma overrides the field delimiter; first rune is used, ',' if empty.
	Comma string `json:"comma,omitempty"`

	// HeaderMap maps source header names to the canonical field names the
	// decoders expect (e.g. localized or renamed exports).
	HeaderMap map[string]string `json:"header_map,omitempty"`
}

// Storage selects the sink used to persist the analytics records.
type Storage struct {
	// Kind selects the storage implementation: "postgres" or "sqlite".
	Kind string `json:"kind"`

	DB DBConfig `json:"db"`
}

// DBConfig configures the DB sink.
type DBConfig struct {
	// DSN is the connection string (pgxpool URL or SQLite path).
	DSN string `json:"dsn"`

	// Table is the destination table name (e.g. "public.order_analytics").
	Table string `json:"table"`

	// AutoCreateTable creates the destination table before loading.
	AutoCreateTable bool `json:"auto_create_table"`
}

// Export configures optional report file output.
type Export struct {
	// Dir is the directory report files are written into. Empty disables export.
	Dir string `json:"dir"`

	// Formats lists the report formats to write: "json", "xlsx".
	Formats []string `json:"formats"`
}

// Runtime controls batching and buffering of the storage load.
type Runtime struct {
	BatchSize     int `json:"batch_size"`
	ChannelBuffer int `json:"channel_buffer"`
}

// Load reads and decodes a pipeline file from disk.
func Load(path string) (Pipeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return Pipeline{}, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode decodes a pipeline from r.
func Decode(r io.Reader) (Pipeline, error) {
	var p Pipeline
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return Pipeline{}, err
	}
	return p, nil
}
