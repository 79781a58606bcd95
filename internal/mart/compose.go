package mart

import "ordermart/internal/model"

// Stats accounts for every order in the snapshot across the composition.
//
//	Orders == NoCustomer + NotQualified + Output
type Stats struct {
	Orders       int // orders in the snapshot
	NoCustomer   int // orders excluded because no customer row matched
	NotQualified int // orders failing the qualification predicate
	Output       int // analytics records emitted
}

// qualifies is the qualification predicate: only delivered orders with an
// actual delivery timestamp appear in the output. It inspects base-order
// fields only, so it is applied before the summary lookups without changing
// results.
func qualifies(o model.Order) bool {
	return o.Status == "delivered" && o.DeliveredAt != nil
}

// Compose joins the order/customer base relation with the three per-order
// summaries and derives the analytics fields.
//
// The base relation is an inner match on the order's customer id: an order
// whose customer is missing is silently excluded (counted in Stats). Each
// summary lookup is a left-outer match: a missing summary yields the zero
// defaults for the monetary fields and a nil review score. Because every
// summary map holds at most one entry per order id, the output cardinality
// never exceeds the base relation's.
func Compose(
	snap *model.Snapshot,
	payments map[string]PaymentSummary,
	items map[string]ItemSummary,
	reviews map[string]ReviewSummary,
) ([]model.AnalyticsRecord, Stats) {
	customers := make(map[string]model.Customer, len(snap.Customers))
	for _, c := range snap.Customers {
		customers[c.ID] = c
	}

	stats := Stats{Orders: len(snap.Orders)}
	out := make([]model.AnalyticsRecord, 0, len(snap.Orders))

	for _, o := range snap.Orders {
		if !qualifies(o) {
			stats.NotQualified++
			continue
		}
		cust, ok := customers[o.CustomerID]
		if !ok {
			stats.NoCustomer++
			continue
		}

		deliveryDays, promisedDays, delay := DeliveryKPI(o.PurchasedAt, o.EstimatedAt, *o.DeliveredAt)

		rec := model.AnalyticsRecord{
			OrderID:          o.ID,
			CustomerUniqueID: cust.UniqueID,
			OrderStatus:      o.Status,
			CustomerCity:     cust.City,
			CustomerState:    cust.State,
			Region:           RegionForState(cust.State),
			PurchasedAt:      o.PurchasedAt,
			DeliveredAt:      *o.DeliveredAt,
			EstimatedAt:      o.EstimatedAt,
			DeliveryDays:     deliveryDays,
			PromisedDays:     promisedDays,
			DelayStatus:      delay,
		}

		// Left-outer matches; absent monetary aggregates normalize to 0,
		// the review score stays nil when unknown.
		if s, ok := payments[o.ID]; ok {
			rec.TotalPayment = s.Total
			rec.PaymentMethods = s.Methods
		}
		if s, ok := items[o.ID]; ok {
			rec.TotalProducts = s.Products
			rec.TotalFreight = s.Freight
		}
		if s, ok := reviews[o.ID]; ok {
			mean := s.Mean
			rec.ReviewScore = &mean
		}

		out = append(out, rec)
	}

	stats.Output = len(out)
	return out, stats
}
