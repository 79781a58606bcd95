// Package ingest loads the five snapshot relations from their configured
// sources and decodes them into typed entities.
//
// Decoding is fail-soft in the same way the CSV layer is: a row missing a
// required field or carrying an unparseable value is reported through the
// error callback and dropped. The transform downstream assumes well-formed
// entities and raises no errors of its own.
package ingest

import (
	"fmt"
	"strconv"
	"time"

	"ordermart/internal/model"
	"ordermart/internal/parser/csv"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	dateLayout      = "2006-01-02"
)

// parseTime accepts the snapshot's timestamp format, falling back to a bare
// date (midnight) for date-only columns.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(timestampLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(dateLayout, s)
}

func requireField(r csv.Row, name string) (string, error) {
	v, ok := r.Fields[name]
	if !ok || v == "" {
		return "", fmt.Errorf("missing %s", name)
	}
	return v, nil
}

// DecodeOrders converts raw rows into Order entities. The delivered timestamp
// is optional; everything else is required.
func DecodeOrders(rows []csv.Row, onErr func(line int, err error)) []model.Order {
	out := make([]model.Order, 0, len(rows))
	for _, r := range rows {
		o, err := decodeOrder(r)
		if err != nil {
			if onErr != nil {
				onErr(r.Line, err)
			}
			continue
		}
		out = append(out, o)
	}
	return out
}

func decodeOrder(r csv.Row) (model.Order, error) {
	var o model.Order
	var err error
	if o.ID, err = requireField(r, "order_id"); err != nil {
		return o, err
	}
	if o.CustomerID, err = requireField(r, "customer_id"); err != nil {
		return o, err
	}
	if o.Status, err = requireField(r, "order_status"); err != nil {
		return o, err
	}
	purchased, err := requireField(r, "order_purchase_timestamp")
	if err != nil {
		return o, err
	}
	if o.PurchasedAt, err = parseTime(purchased); err != nil {
		return o, fmt.Errorf("order_purchase_timestamp: %w", err)
	}
	estimated, err := requireField(r, "order_estimated_delivery_date")
	if err != nil {
		return o, err
	}
	if o.EstimatedAt, err = parseTime(estimated); err != nil {
		return o, fmt.Errorf("order_estimated_delivery_date: %w", err)
	}
	if s := r.Fields["order_delivered_customer_date"]; s != "" {
		t, err := parseTime(s)
		if err != nil {
			return o, fmt.Errorf("order_delivered_customer_date: %w", err)
		}
		o.DeliveredAt = &t
	}
	return o, nil
}

// DecodeCustomers converts raw rows into Customer entities.
func DecodeCustomers(rows []csv.Row, onErr func(line int, err error)) []model.Customer {
	out := make([]model.Customer, 0, len(rows))
	for _, r := range rows {
		id, err := requireField(r, "customer_id")
		if err != nil {
			report(onErr, r.Line, err)
			continue
		}
		uid, err := requireField(r, "customer_unique_id")
		if err != nil {
			report(onErr, r.Line, err)
			continue
		}
		out = append(out, model.Customer{
			ID:       id,
			UniqueID: uid,
			City:     r.Fields["customer_city"],
			State:    r.Fields["customer_state"],
		})
	}
	return out
}

// DecodePayments converts raw rows into Payment entities.
func DecodePayments(rows []csv.Row, onErr func(line int, err error)) []model.Payment {
	out := make([]model.Payment, 0, len(rows))
	for _, r := range rows {
		id, err := requireField(r, "order_id")
		if err != nil {
			report(onErr, r.Line, err)
			continue
		}
		value, err := parseFloat(r, "payment_value")
		if err != nil {
			report(onErr, r.Line, err)
			continue
		}
		out = append(out, model.Payment{
			OrderID: id,
			Type:    r.Fields["payment_type"],
			Value:   value,
		})
	}
	return out
}

// DecodeItems converts raw rows into OrderItem entities.
func DecodeItems(rows []csv.Row, onErr func(line int, err error)) []model.OrderItem {
	out := make([]model.OrderItem, 0, len(rows))
	for _, r := range rows {
		id, err := requireField(r, "order_id")
		if err != nil {
			report(onErr, r.Line, err)
			continue
		}
		price, err := parseFloat(r, "price")
		if err != nil {
			report(onErr, r.Line, err)
			continue
		}
		freight, err := parseFloat(r, "freight_value")
		if err != nil {
			report(onErr, r.Line, err)
			continue
		}
		out = append(out, model.OrderItem{OrderID: id, Price: price, Freight: freight})
	}
	return out
}

// DecodeReviews converts raw rows into Review entities.
func DecodeReviews(rows []csv.Row, onErr func(line int, err error)) []model.Review {
	out := make([]model.Review, 0, len(rows))
	for _, r := range rows {
		id, err := requireField(r, "order_id")
		if err != nil {
			report(onErr, r.Line, err)
			continue
		}
		score, err := parseFloat(r, "review_score")
		if err != nil {
			report(onErr, r.Line, err)
			continue
		}
		out = append(out, model.Review{OrderID: id, Score: score})
	}
	return out
}

func parseFloat(r csv.Row, name string) (float64, error) {
	s, err := requireField(r, name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

func report(onErr func(int, error), line int, err error) {
	if onErr != nil {
		onErr(line, err)
	}
}
