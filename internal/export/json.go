package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"ordermart/internal/model"
)

// jsonRecord is the export wire form of one analytics record. Field names
// match the output table columns so JSON reports and DB rows line up.
// ReviewScore keeps its pointer so an absent score serializes as null.
type jsonRecord struct {
	OrderID          string   `json:"order_id"`
	CustomerUniqueID string   `json:"customer_unique_id"`
	OrderStatus      string   `json:"order_status"`
	CustomerCity     string   `json:"customer_city"`
	CustomerState    string   `json:"customer_state"`
	Region           string   `json:"region"`
	PurchasedAt      string   `json:"order_purchase_timestamp"`
	DeliveredAt      string   `json:"order_delivered_customer_date"`
	EstimatedAt      string   `json:"order_estimated_delivery_date"`
	DeliveryDays     int      `json:"delivery_days"`
	PromisedDays     int      `json:"promised_days"`
	DelayStatus      string   `json:"delay_status"`
	TotalPayment     float64  `json:"valor_total_pagamento"`
	TotalProducts    float64  `json:"valor_total_produtos"`
	TotalFreight     float64  `json:"valor_total_frete"`
	PaymentMethods   string   `json:"metodos_pagamento"`
	ReviewScore      *float64 `json:"review_score"`
}

const exportTimeLayout = "2006-01-02 15:04:05"

func toJSONRecord(r model.AnalyticsRecord) jsonRecord {
	return jsonRecord{
		OrderID:          r.OrderID,
		CustomerUniqueID: r.CustomerUniqueID,
		OrderStatus:      r.OrderStatus,
		CustomerCity:     r.CustomerCity,
		CustomerState:    r.CustomerState,
		Region:           r.Region,
		PurchasedAt:      r.PurchasedAt.Format(exportTimeLayout),
		DeliveredAt:      r.DeliveredAt.Format(exportTimeLayout),
		EstimatedAt:      r.EstimatedAt.Format(exportTimeLayout),
		DeliveryDays:     r.DeliveryDays,
		PromisedDays:     r.PromisedDays,
		DelayStatus:      r.DelayStatus,
		TotalPayment:     r.TotalPayment,
		TotalProducts:    r.TotalProducts,
		TotalFreight:     r.TotalFreight,
		PaymentMethods:   r.PaymentMethods,
		ReviewScore:      r.ReviewScore,
	}
}

// WriteJSON writes recs to path as an indented JSON array together with a
// small header describing the run.
func WriteJSON(path string, recs []model.AnalyticsRecord) error {
	out := struct {
		GeneratedAt string       `json:"generated_at"`
		Count       int          `json:"count"`
		Records     []jsonRecord `json:"records"`
	}{
		GeneratedAt: now().UTC().Format(time.RFC3339),
		Count:       len(recs),
		Records:     make([]jsonRecord, 0, len(recs)),
	}
	for _, r := range recs {
		out.Records = append(out.Records, toJSONRecord(r))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %q: %w", path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		f.Close()
		return fmt.Errorf("export: encode %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: close %q: %w", path, err)
	}
	return nil
}
