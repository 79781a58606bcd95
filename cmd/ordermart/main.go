// Command ordermart builds the order analytics mart: it reads the five
// transactional CSV snapshots, aggregates the child relations, composes one
// denormalized record per qualifying order, and loads the result into the
// configured storage backend, optionally writing report files.
//
// Usage:
//
//	ordermart -config pipeline.json
//	ordermart -config pipeline.json -validate
//	ordermart -config pipeline.json -metrics-backend prometheus -pushgateway-url http://localhost:9091
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ordermart/internal/config"
	"ordermart/internal/metrics"
	"ordermart/internal/metrics/prompush"

	_ "ordermart/internal/storage/all"
)

func main() {
	var (
		configPath     = flag.String("config", "pipeline.json", "path to the pipeline config file")
		validateOnly   = flag.Bool("validate", false, "validate the config and exit")
		metricsBackend = flag.String("metrics-backend", "", "metrics backend: none or prometheus (default: $ORDERMART_METRICS_BACKEND or none)")
		pushgatewayURL = flag.String("pushgateway-url", "", "Prometheus Pushgateway URL (default: $PUSHGATEWAY_URL)")
		verbose        = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lmsgprefix)
	log.SetPrefix("ordermart: ")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config %s: %v", *configPath, err)
	}

	issues := config.ValidatePipeline(cfg)
	fatal := reportIssues(issues)
	if *validateOnly {
		if fatal {
			os.Exit(1)
		}
		fmt.Println("config OK")
		return
	}
	if fatal {
		log.Fatalf("config %s has errors; aborting", *configPath)
	}

	if err := setupMetrics(*metricsBackend, *pushgatewayURL, cfg.Job); err != nil {
		log.Fatalf("metrics: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *verbose); err != nil {
		if ferr := metrics.Flush(); ferr != nil {
			log.Printf("metrics flush: %v", ferr)
		}
		log.Fatalf("run failed: %v", err)
	}
	if err := metrics.Flush(); err != nil {
		log.Printf("metrics flush: %v", err)
	}
}

// reportIssues prints every validation issue and reports whether any was an
// error (warnings alone never block a run).
func reportIssues(issues []config.Issue) bool {
	fatal := false
	for _, issue := range issues {
		log.Printf("config %s", issue.Error())
		if issue.Severity == config.SeverityError {
			fatal = true
		}
	}
	return fatal
}

// setupMetrics installs the requested metrics backend. Flags win over
// environment variables; the default is the no-op backend.
func setupMetrics(kind, gatewayURL, job string) error {
	if kind == "" {
		kind = os.Getenv("ORDERMART_METRICS_BACKEND")
	}
	switch kind {
	case "", "none":
		return nil
	case "prometheus":
		if gatewayURL == "" {
			gatewayURL = os.Getenv("PUSHGATEWAY_URL")
		}
		b, err := prompush.NewBackend(job, gatewayURL)
		if err != nil {
			return err
		}
		metrics.SetBackend(b)
		return nil
	default:
		return fmt.Errorf("unknown metrics backend %q (supported: none, prometheus)", kind)
	}
}
