package model

import (
	"testing"
	"time"
)

func TestValuesAlignedWithColumns(t *testing.T) {
	t.Parallel()

	score := 3.0
	rec := AnalyticsRecord{
		OrderID:     "A1",
		PurchasedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ReviewScore: &score,
	}
	cols := Columns()
	vals := rec.Values()
	if len(cols) != len(vals) {
		t.Fatalf("Columns()=%d fields, Values()=%d fields", len(cols), len(vals))
	}
	if cols[0] != "order_id" || vals[0] != "A1" {
		t.Fatalf("first column misaligned: %s=%v", cols[0], vals[0])
	}
	if cols[len(cols)-1] != "review_score" || vals[len(vals)-1] != 3.0 {
		t.Fatalf("last column misaligned: %s=%v", cols[len(cols)-1], vals[len(vals)-1])
	}
}

func TestValuesNilReviewScoreIsNull(t *testing.T) {
	t.Parallel()

	vals := AnalyticsRecord{OrderID: "A1"}.Values()
	if vals[len(vals)-1] != nil {
		t.Fatalf("review_score = %v, want nil for absent score", vals[len(vals)-1])
	}
}
