package ingest

import (
	"context"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"ordermart/internal/config"
	"ordermart/internal/datasource"
	"ordermart/internal/datasource/file"
	"ordermart/internal/model"
	"ordermart/internal/parser/csv"
)

// errSampleLimit caps how many bad-row messages are kept per relation.
const errSampleLimit = 3

// Stats summarizes what the loader read and dropped per relation.
type Stats struct {
	mu      sync.Mutex
	Rows    map[string]int      // relation -> decoded entities
	Dropped map[string]int      // relation -> rows dropped (parse or decode)
	Samples map[string][]string // relation -> first few drop reasons
}

func newStats() *Stats {
	return &Stats{
		Rows:    make(map[string]int),
		Dropped: make(map[string]int),
		Samples: make(map[string][]string),
	}
}

func (s *Stats) drop(relation string, line int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Dropped[relation]++
	if len(s.Samples[relation]) < errSampleLimit {
		s.Samples[relation] = append(s.Samples[relation], fmt.Sprintf("line=%d: %v", line, err))
	}
}

func (s *Stats) set(relation string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Rows[relation] = n
}

// LogSummary prints the per-relation counts and a small sample of drop
// reasons, mirroring the run summary format.
func (s *Stats) LogSummary() {
	for _, rel := range []string{"orders", "customers", "payments", "items", "reviews"} {
		dropped := s.Dropped[rel]
		log.Printf("ingest: relation=%s rows=%d dropped=%d", rel, s.Rows[rel], dropped)
		for i, msg := range s.Samples[rel] {
			log.Printf("  #%03d: %s", i+1, msg)
		}
		if dropped > errSampleLimit {
			log.Printf("  ... additional drops suppressed ...")
		}
	}
}

// openSource maps a configured source onto a datasource implementation.
// Local files are the only kind today; the seam exists so tests (and future
// remote sources) can substitute their own.
var openSource = func(ctx context.Context, src config.FileSource) (datasource.Source, error) {
	return file.NewLocal(src.Path), nil
}

// LoadSnapshot reads all five relations concurrently and decodes them into a
// Snapshot. All relations must load before the transform may start; a failure
// to open or read any file fails the whole load.
func LoadSnapshot(ctx context.Context, srcs config.Sources) (*model.Snapshot, *Stats, error) {
	snap := &model.Snapshot{}
	stats := newStats()

	g, ctx := errgroup.WithContext(ctx)

	load := func(relation string, src config.FileSource, decode func([]csv.Row, func(int, error)) int) {
		g.Go(func() error {
			ds, err := openSource(ctx, src)
			if err != nil {
				return fmt.Errorf("%s: %w", relation, err)
			}
			rc, err := ds.Open(ctx)
			if err != nil {
				return fmt.Errorf("%s: %w", relation, err)
			}
			defer rc.Close()

			onErr := func(line int, err error) { stats.drop(relation, line, err) }

			rows, err := csv.ReadRows(ctx, rc, csvOptions(src), onErr)
			if err != nil {
				return fmt.Errorf("%s: %w", relation, err)
			}
			stats.set(relation, decode(rows, onErr))
			return nil
		})
	}

	load("orders", srcs.Orders, func(rows []csv.Row, onErr func(int, error)) int {
		snap.Orders = DecodeOrders(rows, onErr)
		return len(snap.Orders)
	})
	load("customers", srcs.Customers, func(rows []csv.Row, onErr func(int, error)) int {
		snap.Customers = DecodeCustomers(rows, onErr)
		return len(snap.Customers)
	})
	load("payments", srcs.Payments, func(rows []csv.Row, onErr func(int, error)) int {
		snap.Payments = DecodePayments(rows, onErr)
		return len(snap.Payments)
	})
	load("items", srcs.Items, func(rows []csv.Row, onErr func(int, error)) int {
		snap.Items = DecodeItems(rows, onErr)
		return len(snap.Items)
	})
	load("reviews", srcs.Reviews, func(rows []csv.Row, onErr func(int, error)) int {
		snap.Reviews = DecodeReviews(rows, onErr)
		return len(snap.Reviews)
	})

	if err := g.Wait(); err != nil {
		return nil, stats, err
	}
	return snap, stats, nil
}

func csvOptions(src config.FileSource) csv.Options {
	opt := csv.Options{TrimSpace: true, HeaderMap: src.HeaderMap}
	if src.Comma != "" {
		opt.Comma = []rune(src.Comma)[0]
	}
	return opt
}
