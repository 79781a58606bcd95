package mart

import (
	"context"
	"fmt"
	"strconv"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"

	"ordermart/internal/model"
)

// Build runs the full transform over an immutable snapshot: the three child
// aggregations in parallel, a join barrier, then composition and derivation.
// It is a pure function of the snapshot; re-running on the same input yields
// an identical output set (compare with Fingerprint).
func Build(ctx context.Context, snap *model.Snapshot) ([]model.AnalyticsRecord, Stats, error) {
	var (
		payments map[string]PaymentSummary
		items    map[string]ItemSummary
		reviews  map[string]ReviewSummary
	)

	// The aggregations are mutually independent; each writes its own variable
	// and the Wait below is the join barrier the composer requires.
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		payments = AggregatePayments(snap.Payments)
		return nil
	})
	g.Go(func() error {
		items = AggregateItems(snap.Items)
		return nil
	})
	g.Go(func() error {
		reviews = AggregateReviews(snap.Reviews)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, Stats{}, err
	}

	if err := ctx.Err(); err != nil {
		return nil, Stats{}, err
	}

	recs, stats := Compose(snap, payments, items, reviews)
	return recs, stats, nil
}

// Fingerprint hashes the output set into a stable 64-bit digest. Two runs
// over the same snapshot produce the same fingerprint, which the runner logs
// so repeated runs can be verified identical without diffing tables.
func Fingerprint(recs []model.AnalyticsRecord) uint64 {
	h := xxh3.New()
	for _, r := range recs {
		for _, v := range r.Values() {
			h.WriteString(canonical(v))
			h.WriteString("\x1f")
		}
		h.WriteString("\n")
	}
	return h.Sum64()
}

func canonical(v any) string {
	switch t := v.(type) {
	case nil:
		return "\x00"
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprint(t)
	}
}
