package mart

import "time"

// Delay status labels.
const (
	StatusDelayed = "Delayed"
	StatusOnTime  = "On Time"
)

// daysBetween returns the calendar-day difference to - from. Both operands
// are truncated to their calendar date first, so time-of-day components never
// influence the result (a 23:59 purchase delivered 00:01 two days later still
// counts two full days).
func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}

// DeliveryKPI derives the delivery lead time, the promised lead time, and the
// delay status from the three order timestamps. Callers guarantee all three
// are present; the qualification filter excludes undelivered orders before
// KPIs are computed.
//
// The delay comparison is strict: delivering exactly at the estimated instant
// is on time.
func DeliveryKPI(purchased, estimated, delivered time.Time) (deliveryDays, promisedDays int, status string) {
	deliveryDays = daysBetween(purchased, delivered)
	promisedDays = daysBetween(purchased, estimated)
	status = StatusOnTime
	if delivered.After(estimated) {
		status = StatusDelayed
	}
	return deliveryDays, promisedDays, status
}
