// Package mart builds the denormalized order analytics records from a
// snapshot of the transactional relations.
//
// The central discipline is aggregate-before-join: every one-to-many child
// relation (payments, items, reviews) is reduced to at most one summary row
// per order id before it is combined with the order/customer base relation.
// Joining the raw child rows directly would multiply base rows ("fan-out")
// and silently double-count monetary sums.
package mart

import (
	"sort"
	"strings"

	"ordermart/internal/model"
)

// methodSeparator joins the distinct payment method labels when rendering
// the set to a single string.
const methodSeparator = ", "

// PaymentSummary is the per-order reduction of the payments relation.
type PaymentSummary struct {
	Total   float64
	Methods string // distinct labels, sorted, joined with methodSeparator
}

// ItemSummary is the per-order reduction of the order items relation.
type ItemSummary struct {
	Products float64
	Freight  float64
}

// ReviewSummary is the per-order reduction of the reviews relation.
type ReviewSummary struct {
	Mean float64
}

// AggregatePayments groups payments by order id and emits one summary per
// distinct id: the sum of amounts and the set of distinct method labels.
// Orders with no payments get no entry at all; downstream composition treats
// that as "no match", not "matched with zero".
func AggregatePayments(payments []model.Payment) map[string]PaymentSummary {
	totals := make(map[string]float64)
	methods := make(map[string]map[string]struct{})
	for _, p := range payments {
		totals[p.OrderID] += p.Value
		set := methods[p.OrderID]
		if set == nil {
			set = make(map[string]struct{})
			methods[p.OrderID] = set
		}
		set[p.Type] = struct{}{}
	}

	out := make(map[string]PaymentSummary, len(totals))
	for id, total := range totals {
		labels := make([]string, 0, len(methods[id]))
		for m := range methods[id] {
			labels = append(labels, m)
		}
		// Sorted so the rendered set is independent of input row order.
		sort.Strings(labels)
		out[id] = PaymentSummary{Total: total, Methods: strings.Join(labels, methodSeparator)}
	}
	return out
}

// AggregateItems groups line items by order id, summing price and freight.
func AggregateItems(items []model.OrderItem) map[string]ItemSummary {
	out := make(map[string]ItemSummary)
	for _, it := range items {
		s := out[it.OrderID]
		s.Products += it.Price
		s.Freight += it.Freight
		out[it.OrderID] = s
	}
	return out
}

// AggregateReviews groups reviews by order id and emits the arithmetic mean
// score. An order with zero reviews produces no summary row, not a
// zero-valued one; a missing score is unknown, not 0.
func AggregateReviews(reviews []model.Review) map[string]ReviewSummary {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range reviews {
		sums[r.OrderID] += r.Score
		counts[r.OrderID]++
	}

	out := make(map[string]ReviewSummary, len(sums))
	for id, sum := range sums {
		out[id] = ReviewSummary{Mean: sum / float64(counts[id])}
	}
	return out
}
