package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"ordermart/internal/model"
	"ordermart/internal/storage"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	cfg := storage.Config{
		Kind:  "sqlite",
		DSN:   filepath.Join(t.TempDir(), "mart.db"),
		Table: "order_analytics",
	}
	repo, err := NewRepository(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	if err := ensureTable(context.Background(), repo, cfg); err != nil {
		t.Fatalf("ensure table: %v", err)
	}
	return repo
}

func TestCopyFromInsertsRecords(t *testing.T) {
	t.Parallel()

	repo := openTestRepo(t)
	ctx := context.Background()

	score := 4.5
	rec := model.AnalyticsRecord{
		OrderID:          "A1",
		CustomerUniqueID: "U1",
		OrderStatus:      "delivered",
		CustomerCity:     "porto alegre",
		CustomerState:    "RS",
		Region:           "South",
		PurchasedAt:      time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		DeliveredAt:      time.Date(2024, 1, 10, 18, 30, 0, 0, time.UTC),
		EstimatedAt:      time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		DeliveryDays:     9,
		PromisedDays:     7,
		DelayStatus:      "Delayed",
		TotalPayment:     40,
		TotalProducts:    35,
		TotalFreight:     5,
		PaymentMethods:   "credit_card, voucher",
		ReviewScore:      &score,
	}
	noScore := rec
	noScore.OrderID = "A3"
	noScore.ReviewScore = nil

	n, err := repo.CopyFrom(ctx, model.Columns(), [][]any{rec.Values(), noScore.Values()})
	if err != nil {
		t.Fatalf("CopyFrom: %v", err)
	}
	if n != 2 {
		t.Fatalf("inserted = %d, want 2", n)
	}

	var count int
	if err := repo.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM order_analytics").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}

	var nullScores int
	if err := repo.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM order_analytics WHERE review_score IS NULL").Scan(&nullScores); err != nil {
		t.Fatalf("null count: %v", err)
	}
	if nullScores != 1 {
		t.Fatalf("null review scores = %d, want 1 (absent must persist as NULL, not 0)", nullScores)
	}
}

func TestCopyFromRowWidthMismatch(t *testing.T) {
	t.Parallel()

	repo := openTestRepo(t)
	if _, err := repo.CopyFrom(context.Background(), []string{"order_id", "region"}, [][]any{{"A1"}}); err == nil {
		t.Fatal("expected error for row/column width mismatch")
	}
}

func TestCopyFromEmptyRowsNoop(t *testing.T) {
	t.Parallel()

	repo := openTestRepo(t)
	n, err := repo.CopyFrom(context.Background(), model.Columns(), nil)
	if err != nil || n != 0 {
		t.Fatalf("n=%d err=%v, want 0, nil", n, err)
	}
}
