// Package csv reads one snapshot relation from CSV into string-keyed rows.
//
// The reader is streaming and fail-soft: rows that cannot be read are handed
// to the caller's error callback and skipped, so a handful of malformed lines
// never aborts a snapshot load. A UTF-8 BOM on the first header cell is
// stripped transparently.
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Options configures the CSV reader. Zero values get sensible defaults.
type Options struct {
	// Comma is the field delimiter; ',' when zero.
	Comma rune

	// TrimSpace trims leading/trailing spaces from every cell.
	TrimSpace bool

	// HeaderMap maps source header names onto canonical field names. Headers
	// without an entry keep their source name.
	HeaderMap map[string]string
}

// Row is one parsed data row. Fields is keyed by canonical header name; Line
// is the 1-based line number in the source file (header is line 1).
type Row struct {
	Line   int
	Fields map[string]string
}

// ReadRows reads the entire relation from r. The first line must be a header.
// Recoverable per-row errors go to onErr (which may be nil) and the row is
// dropped; only header or I/O failures abort the read.
func ReadRows(ctx context.Context, r io.Reader, opt Options, onErr func(line int, err error)) ([]Row, error) {
	comma := opt.Comma
	if comma == 0 {
		comma = ','
	}

	// BOMOverride makes the reader tolerant of a leading UTF-8/UTF-16 BOM
	// without affecting BOM-less input.
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	cr := csv.NewReader(transform.NewReader(r, dec))
	cr.Comma = comma
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1

	line := 0
	read := func() ([]string, error) { line++; return cr.Read() }

	hdr, err := read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	header := make([]string, len(hdr))
	for i, h := range hdr {
		name := strings.TrimSpace(h)
		if mapped, ok := opt.HeaderMap[name]; ok && mapped != "" {
			name = mapped
		}
		header[i] = name
	}

	var rows []Row
	for {
		select {
		case <-ctx.Done():
			return rows, ctx.Err()
		default:
		}

		rec, err := read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			if onErr != nil {
				onErr(line, err)
			}
			continue
		}

		fields := make(map[string]string, len(header))
		for i, name := range header {
			if i >= len(rec) {
				break
			}
			v := rec[i]
			if opt.TrimSpace {
				v = strings.TrimSpace(v)
			}
			fields[name] = v
		}
		rows = append(rows, Row{Line: line, Fields: fields})
	}
}
