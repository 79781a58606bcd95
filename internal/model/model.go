// Package model defines the input entities read from the transactional
// snapshot and the denormalized analytics record the pipeline produces.
//
// All entities are read-only for the duration of a run. Absence is modeled
// explicitly (pointer fields), never as a zero value, because the downstream
// normalization rules distinguish "no value" from 0.
package model

import "time"

// Order is one row of the orders relation.
type Order struct {
	ID          string
	CustomerID  string
	Status      string
	PurchasedAt time.Time
	EstimatedAt time.Time
	// DeliveredAt is nil until the order has actually been delivered.
	DeliveredAt *time.Time
}

// Customer is one row of the customers relation.
type Customer struct {
	ID       string
	UniqueID string
	City     string
	State    string
}

// Payment is one payment row; an order may have zero or many.
type Payment struct {
	OrderID string
	Type    string
	Value   float64
}

// OrderItem is one line item row; an order may have zero or many.
type OrderItem struct {
	OrderID string
	Price   float64
	Freight float64
}

// Review is one review row; an order may have zero or many.
type Review struct {
	OrderID string
	Score   float64
}

// Snapshot is the immutable set of input relations for one pipeline run.
type Snapshot struct {
	Orders    []Order
	Customers []Customer
	Payments  []Payment
	Items     []OrderItem
	Reviews   []Review
}

// AnalyticsRecord is the denormalized output row: exactly one per qualifying
// order. Monetary aggregates default to 0 when the order has no matching
// child rows; ReviewScore stays nil in that case because an unknown score is
// not a score of zero.
type AnalyticsRecord struct {
	OrderID          string
	CustomerUniqueID string
	OrderStatus      string
	CustomerCity     string
	CustomerState    string
	Region           string
	PurchasedAt      time.Time
	DeliveredAt      time.Time
	EstimatedAt      time.Time
	DeliveryDays     int
	PromisedDays     int
	DelayStatus      string
	TotalPayment     float64
	TotalProducts    float64
	TotalFreight     float64
	PaymentMethods   string
	ReviewScore      *float64
}

// Columns lists the output table columns in the order used for COPY/INSERT
// and for exports. Values() must stay aligned with this list.
func Columns() []string {
	return []string{
		"order_id",
		"customer_unique_id",
		"order_status",
		"customer_city",
		"customer_state",
		"region",
		"order_purchase_timestamp",
		"order_delivered_customer_date",
		"order_estimated_delivery_date",
		"delivery_days",
		"promised_days",
		"delay_status",
		"valor_total_pagamento",
		"valor_total_produtos",
		"valor_total_frete",
		"metodos_pagamento",
		"review_score",
	}
}

// Values returns the record as a positional row aligned with Columns().
// A nil ReviewScore is passed through as SQL NULL.
func (r AnalyticsRecord) Values() []any {
	var score any
	if r.ReviewScore != nil {
		score = *r.ReviewScore
	}
	return []any{
		r.OrderID,
		r.CustomerUniqueID,
		r.OrderStatus,
		r.CustomerCity,
		r.CustomerState,
		r.Region,
		r.PurchasedAt,
		r.DeliveredAt,
		r.EstimatedAt,
		r.DeliveryDays,
		r.PromisedDays,
		r.DelayStatus,
		r.TotalPayment,
		r.TotalProducts,
		r.TotalFreight,
		r.PaymentMethods,
		score,
	}
}
