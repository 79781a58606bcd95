// Package export writes the finished analytics records to report files
// (JSON, XLSX) alongside the database load. Files are timestamped so
// repeated runs never overwrite earlier reports.
package export

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"ordermart/internal/config"
	"ordermart/internal/model"
)

const timestampFormat = "20060102_150405"

// now is replaced in tests for deterministic filenames.
var now = time.Now

// TimestampedFilename builds "<job>_<timestamp>.<ext>" inside dir.
func TimestampedFilename(dir, job, ext string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", job, now().Format(timestampFormat), ext))
}

// Write renders recs in every configured format. It returns the paths
// written. A missing dir or empty format list disables export entirely.
func Write(ctx context.Context, cfg config.Export, job string, recs []model.AnalyticsRecord) ([]string, error) {
	if cfg.Dir == "" || len(cfg.Formats) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("export: create dir %q: %w", cfg.Dir, err)
	}

	var paths []string
	for _, format := range cfg.Formats {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		var (
			path string
			err  error
		)
		switch format {
		case "json":
			path = TimestampedFilename(cfg.Dir, job, "json")
			err = WriteJSON(path, recs)
		case "xlsx":
			path = TimestampedFilename(cfg.Dir, job, "xlsx")
			err = WriteXLSX(path, recs)
		default:
			return paths, fmt.Errorf("export: unsupported format %q", format)
		}
		if err != nil {
			return paths, err
		}
		log.Printf("export: wrote %d records to %s", len(recs), path)
		paths = append(paths, path)
	}
	return paths, nil
}
