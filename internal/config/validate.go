// This file adds a lightweight linter/validator for Pipeline values. It
// performs static checks over a decoded Pipeline and returns a list of issues
// (errors and warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a finding that should be surfaced to users but
	// does not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding. Path is a dotted path into the
// config (e.g. "storage.kind", "sources.orders.path").
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect one.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// ValidatePipeline performs static validation of a Pipeline. It does not
// mutate the pipeline; callers decide whether warnings are fatal.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it is used for metrics labeling and identifying runs",
		})
	}

	issues = append(issues, validateSources(p.Sources)...)
	issues = append(issues, validateStorage(p.Storage)...)
	issues = append(issues, validateExport(p.Export)...)
	issues = append(issues, validateRuntime(p.Runtime)...)

	return issues
}

func validateSources(s Sources) []Issue {
	var issues []Issue
	each := []struct {
		name string
		src  FileSource
	}{
		{"orders", s.Orders},
		{"customers", s.Customers},
		{"payments", s.Payments},
		{"items", s.Items},
		{"reviews", s.Reviews},
	}
	for _, e := range each {
		if strings.TrimSpace(e.src.Path) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "sources." + e.name + ".path",
				Message:  "source requires a non-empty path",
			})
		}
		if len(e.src.Comma) > 1 {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     "sources." + e.name + ".comma",
				Message:  fmt.Sprintf("comma %q is longer than one rune; only the first is used", e.src.Comma),
			})
		}
	}
	return issues
}

func validateStorage(s Storage) []Issue {
	var issues []Issue

	if strings.TrimSpace(s.Kind) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  "storage.kind must not be empty",
		})
		return issues
	}

	// Unknown kinds are warnings for forward compatibility; the factory will
	// reject them at run time if no backend is registered.
	known := map[string]struct{}{
		"postgres": {},
		"sqlite":   {},
	}
	if _, ok := known[s.Kind]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unknown storage kind %q; ensure a matching backend is registered", s.Kind),
		})
	}

	if strings.TrimSpace(s.DB.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.db.dsn",
			Message:  "storage requires a non-empty dsn",
		})
	}
	if strings.TrimSpace(s.DB.Table) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.db.table",
			Message:  "storage requires a non-empty table",
		})
	}
	return issues
}

func validateExport(e Export) []Issue {
	var issues []Issue
	known := map[string]struct{}{"json": {}, "xlsx": {}}
	for i, f := range e.Formats {
		if _, ok := known[f]; !ok {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     fmt.Sprintf("export.formats[%d]", i),
				Message:  fmt.Sprintf("unknown export format %q (supported: json, xlsx)", f),
			})
		}
	}
	if len(e.Formats) > 0 && strings.TrimSpace(e.Dir) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "export.dir",
			Message:  "export.dir is required when formats are configured",
		})
	}
	return issues
}

func validateRuntime(r Runtime) []Issue {
	var issues []Issue
	if r.BatchSize < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "runtime.batch_size",
			Message:  "batch_size must not be negative",
		})
	}
	if r.ChannelBuffer < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "runtime.channel_buffer",
			Message:  "channel_buffer must not be negative",
		})
	}
	return issues
}
