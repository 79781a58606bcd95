package mart

import (
	"testing"
	"time"

	"ordermart/internal/model"
)

func deliveredOrder(id, customerID string) model.Order {
	delivered := ts("2024-01-10 18:30:00")
	return model.Order{
		ID:          id,
		CustomerID:  customerID,
		Status:      "delivered",
		PurchasedAt: ts("2024-01-01 10:00:00"),
		EstimatedAt: ts("2024-01-08 00:00:00"),
		DeliveredAt: &delivered,
	}
}

func TestComposeOneRowPerOrder(t *testing.T) {
	t.Parallel()

	snap := &model.Snapshot{
		Orders:    []model.Order{deliveredOrder("A1", "C1")},
		Customers: []model.Customer{{ID: "C1", UniqueID: "U1", City: "porto alegre", State: "RS"}},
	}
	// Summaries are at most one row per key by construction; composing with
	// them must not multiply the base row.
	recs, stats := Compose(snap,
		map[string]PaymentSummary{"A1": {Total: 40, Methods: "credit_card, voucher"}},
		map[string]ItemSummary{"A1": {Products: 35, Freight: 5}},
		map[string]ReviewSummary{"A1": {Mean: 4.5}},
	)
	if len(recs) != 1 {
		t.Fatalf("records = %d, want exactly 1", len(recs))
	}
	if stats.Output != 1 || stats.Orders != 1 {
		t.Fatalf("stats = %+v", stats)
	}

	r := recs[0]
	if r.OrderID != "A1" || r.CustomerUniqueID != "U1" || r.Region != "South" {
		t.Fatalf("record = %+v", r)
	}
	if r.TotalPayment != 40 || r.TotalProducts != 35 || r.TotalFreight != 5 {
		t.Fatalf("monetary fields = %v %v %v", r.TotalPayment, r.TotalProducts, r.TotalFreight)
	}
	if r.ReviewScore == nil || *r.ReviewScore != 4.5 {
		t.Fatalf("review score = %v", r.ReviewScore)
	}
}

func TestComposeAbsentSummariesNormalize(t *testing.T) {
	t.Parallel()

	snap := &model.Snapshot{
		Orders:    []model.Order{deliveredOrder("A3", "C1")},
		Customers: []model.Customer{{ID: "C1", UniqueID: "U1", State: "SP"}},
	}
	recs, _ := Compose(snap, map[string]PaymentSummary{}, map[string]ItemSummary{}, map[string]ReviewSummary{})
	if len(recs) != 1 {
		t.Fatalf("records = %d", len(recs))
	}

	r := recs[0]
	// Monetary absences become 0; the review score stays absent, because a
	// missing score is not a score of zero.
	if r.TotalPayment != 0 || r.TotalProducts != 0 || r.TotalFreight != 0 {
		t.Fatalf("monetary defaults = %v %v %v", r.TotalPayment, r.TotalProducts, r.TotalFreight)
	}
	if r.PaymentMethods != "" {
		t.Fatalf("methods = %q, want empty", r.PaymentMethods)
	}
	if r.ReviewScore != nil {
		t.Fatalf("review score = %v, want nil", *r.ReviewScore)
	}
}

func TestComposeQualificationFilter(t *testing.T) {
	t.Parallel()

	shipped := deliveredOrder("A2", "C1")
	shipped.Status = "shipped"

	undelivered := deliveredOrder("A4", "C1")
	undelivered.DeliveredAt = nil

	snap := &model.Snapshot{
		Orders:    []model.Order{deliveredOrder("A1", "C1"), shipped, undelivered},
		Customers: []model.Customer{{ID: "C1", UniqueID: "U1", State: "SP"}},
	}
	recs, stats := Compose(snap, nil, nil, nil)
	if len(recs) != 1 || recs[0].OrderID != "A1" {
		t.Fatalf("records = %+v", recs)
	}
	if stats.NotQualified != 2 {
		t.Fatalf("not qualified = %d, want 2", stats.NotQualified)
	}
}

func TestComposeMissingCustomerExcludesOrder(t *testing.T) {
	t.Parallel()

	snap := &model.Snapshot{
		Orders:    []model.Order{deliveredOrder("A1", "C-ghost")},
		Customers: nil,
	}
	recs, stats := Compose(snap, nil, nil, nil)
	if len(recs) != 0 {
		t.Fatalf("records = %+v, want none", recs)
	}
	if stats.NoCustomer != 1 {
		t.Fatalf("no customer = %d, want 1", stats.NoCustomer)
	}
}

func TestComposeAccounting(t *testing.T) {
	t.Parallel()

	shipped := deliveredOrder("A2", "C1")
	shipped.Status = "shipped"
	snap := &model.Snapshot{
		Orders:    []model.Order{deliveredOrder("A1", "C1"), shipped, deliveredOrder("A3", "ghost")},
		Customers: []model.Customer{{ID: "C1", UniqueID: "U1", State: "SP"}},
	}
	_, stats := Compose(snap, nil, nil, nil)
	if stats.Orders != stats.NoCustomer+stats.NotQualified+stats.Output {
		t.Fatalf("accounting broken: %+v", stats)
	}
}

func TestComposeTimestampsCarriedThrough(t *testing.T) {
	t.Parallel()

	o := deliveredOrder("A1", "C1")
	snap := &model.Snapshot{
		Orders:    []model.Order{o},
		Customers: []model.Customer{{ID: "C1", UniqueID: "U1", State: "SP"}},
	}
	recs, _ := Compose(snap, nil, nil, nil)
	r := recs[0]
	if !r.PurchasedAt.Equal(o.PurchasedAt) || !r.EstimatedAt.Equal(o.EstimatedAt) {
		t.Fatalf("timestamps = %+v", r)
	}
	if !r.DeliveredAt.Equal(time.Date(2024, 1, 10, 18, 30, 0, 0, time.UTC)) {
		t.Fatalf("delivered = %v", r.DeliveredAt)
	}
}
