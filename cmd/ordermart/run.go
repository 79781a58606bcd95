package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"ordermart/internal/config"
	"ordermart/internal/export"
	"ordermart/internal/ingest"
	"ordermart/internal/mart"
	"ordermart/internal/metrics"
	"ordermart/internal/model"
	"ordermart/internal/storage"

	"golang.org/x/sync/errgroup"
)

const (
	defaultBatchSize     = 5000
	defaultChannelBuffer = 1024
)

// run executes one full pipeline: ingest, transform, load, export.
func run(ctx context.Context, cfg config.Pipeline, verbose bool) error {
	runStart := time.Now()

	// Ingest. All five relations must load before the transform starts.
	ingestStart := time.Now()
	snap, ingestStats, err := ingest.LoadSnapshot(ctx, cfg.Sources)
	metrics.RecordStage("ingest", err, time.Since(ingestStart))
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	ingestStats.LogSummary()
	var dropped int64
	for rel, n := range ingestStats.Rows {
		metrics.RecordRows(rel, int64(n))
	}
	for _, n := range ingestStats.Dropped {
		dropped += int64(n)
	}
	metrics.RecordRows("dropped", dropped)

	// Transform.
	buildStart := time.Now()
	recs, stats, err := mart.Build(ctx, snap)
	metrics.RecordStage("transform", err, time.Since(buildStart))
	if err != nil {
		return fmt.Errorf("transform: %w", err)
	}
	metrics.RecordRows("no_customer", int64(stats.NoCustomer))
	metrics.RecordRows("not_qualified", int64(stats.NotQualified))
	metrics.RecordRows("output", int64(stats.Output))
	log.Printf("transform: orders=%d no_customer=%d not_qualified=%d output=%d",
		stats.Orders, stats.NoCustomer, stats.NotQualified, stats.Output)

	fingerprint := mart.Fingerprint(recs)
	if verbose {
		log.Printf("transform: output fingerprint=%016x", fingerprint)
	}

	// Load.
	loadStart := time.Now()
	inserted, err := load(ctx, cfg, recs)
	metrics.RecordStage("load", err, time.Since(loadStart))
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	metrics.RecordRows("inserted", inserted)
	if inserted != int64(len(recs)) {
		return fmt.Errorf("load: inserted %d rows, transform produced %d", inserted, len(recs))
	}

	// Export.
	exportStart := time.Now()
	_, err = export.Write(ctx, cfg.Export, cfg.Job, recs)
	metrics.RecordStage("export", err, time.Since(exportStart))
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	log.Printf("run complete: job=%s records=%d inserted=%d fingerprint=%016x elapsed=%s",
		cfg.Job, len(recs), inserted, fingerprint, time.Since(runStart).Truncate(time.Millisecond))
	return nil
}

// load opens the configured storage backend and streams the records into it
// in batches. The producer and the batched loader run concurrently so record
// conversion overlaps the bulk inserts.
func load(ctx context.Context, cfg config.Pipeline, recs []model.AnalyticsRecord) (int64, error) {
	storeCfg := storage.Config{
		Kind:  cfg.Storage.Kind,
		DSN:   cfg.Storage.DB.DSN,
		Table: cfg.Storage.DB.Table,
	}

	repo, err := storage.New(ctx, storeCfg)
	if err != nil {
		return 0, err
	}
	defer repo.Close()

	if cfg.Storage.DB.AutoCreateTable {
		if err := storage.EnsureTable(ctx, repo, storeCfg); err != nil {
			return 0, err
		}
	}

	batchSize := cfg.Runtime.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	buffer := cfg.Runtime.ChannelBuffer
	if buffer <= 0 {
		buffer = defaultChannelBuffer
	}

	copyFn := func(ctx context.Context, columns []string, rows [][]any) (int64, error) {
		n, err := repo.CopyFrom(ctx, columns, rows)
		if err == nil {
			metrics.RecordBatches(1)
		}
		return n, err
	}

	rowCh := make(chan []any, buffer)
	var inserted int64

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(rowCh)
		for _, rec := range recs {
			select {
			case rowCh <- rec.Values():
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	g.Go(func() error {
		n, err := storage.LoadBatches(ctx, model.Columns(), rowCh, batchSize, copyFn)
		inserted = n
		return err
	})
	if err := g.Wait(); err != nil {
		return inserted, err
	}
	return inserted, nil
}
