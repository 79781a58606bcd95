package mart

import (
	"context"
	"math"
	"reflect"
	"testing"

	"ordermart/internal/model"
)

// scenarioSnapshot mirrors the reference scenario: order A1 delivered late
// with two payments, one item, and two reviews; A2 not delivered; A3
// delivered with no child rows at all.
func scenarioSnapshot() *model.Snapshot {
	a1 := deliveredOrder("A1", "C1")

	a2 := deliveredOrder("A2", "C2")
	a2.Status = "shipped"

	a3 := deliveredOrder("A3", "C2")

	return &model.Snapshot{
		Orders: []model.Order{a1, a2, a3},
		Customers: []model.Customer{
			{ID: "C1", UniqueID: "U1", City: "porto alegre", State: "RS"},
			{ID: "C2", UniqueID: "U2", City: "sao paulo", State: "SP"},
		},
		Payments: []model.Payment{
			{OrderID: "A1", Type: "credit_card", Value: 30},
			{OrderID: "A1", Type: "voucher", Value: 10},
		},
		Items: []model.OrderItem{
			{OrderID: "A1", Price: 35, Freight: 5},
		},
		Reviews: []model.Review{
			{OrderID: "A1", Score: 4},
			{OrderID: "A1", Score: 5},
		},
	}
}

func TestBuildScenario(t *testing.T) {
	t.Parallel()

	recs, stats, err := Build(context.Background(), scenarioSnapshot())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if stats.Output != 2 || stats.NotQualified != 1 {
		t.Fatalf("stats = %+v", stats)
	}

	byID := make(map[string]model.AnalyticsRecord, len(recs))
	for _, r := range recs {
		if _, dup := byID[r.OrderID]; dup {
			t.Fatalf("duplicate record for order %s", r.OrderID)
		}
		byID[r.OrderID] = r
	}
	if _, ok := byID["A2"]; ok {
		t.Fatal("non-delivered order A2 must be excluded entirely")
	}

	a1 := byID["A1"]
	if a1.Region != "South" {
		t.Errorf("A1 region = %q", a1.Region)
	}
	if a1.DeliveryDays != 9 || a1.PromisedDays != 7 || a1.DelayStatus != StatusDelayed {
		t.Errorf("A1 kpi = (%d, %d, %q)", a1.DeliveryDays, a1.PromisedDays, a1.DelayStatus)
	}
	if a1.TotalPayment != 40 || a1.TotalProducts != 35 || a1.TotalFreight != 5 {
		t.Errorf("A1 monetary = %v %v %v", a1.TotalPayment, a1.TotalProducts, a1.TotalFreight)
	}
	if a1.PaymentMethods != "credit_card, voucher" {
		t.Errorf("A1 methods = %q", a1.PaymentMethods)
	}
	if a1.ReviewScore == nil || math.Abs(*a1.ReviewScore-4.5) > 1e-9 {
		t.Errorf("A1 review score = %v", a1.ReviewScore)
	}

	a3 := byID["A3"]
	if a3.TotalPayment != 0 || a3.PaymentMethods != "" {
		t.Errorf("A3 payment defaults = %v %q", a3.TotalPayment, a3.PaymentMethods)
	}
	if a3.ReviewScore != nil {
		t.Errorf("A3 review score = %v, want absent", *a3.ReviewScore)
	}
}

func TestBuildIdempotent(t *testing.T) {
	t.Parallel()

	snap := scenarioSnapshot()
	first, _, err := Build(context.Background(), snap)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	second, _, err := Build(context.Background(), snap)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatal("two runs over the same snapshot differ")
	}
	if Fingerprint(first) != Fingerprint(second) {
		t.Fatal("fingerprints differ across identical runs")
	}
}

func TestFingerprintDistinguishesOutputs(t *testing.T) {
	t.Parallel()

	recs, _, err := Build(context.Background(), scenarioSnapshot())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	mutated := make([]model.AnalyticsRecord, len(recs))
	copy(mutated, recs)
	mutated[0].TotalPayment += 0.01

	if Fingerprint(recs) == Fingerprint(mutated) {
		t.Fatal("fingerprint did not change for a changed output set")
	}
}

func TestBuildCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := Build(ctx, scenarioSnapshot()); err == nil {
		t.Fatal("expected context error")
	}
}
