package domain

import "time"

// OrderStatus represents the lifecycle state of a purchase order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions.
// Completed and cancelled are terminal.
var validTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderCompleted, OrderCancelled},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// LineItem is one ordered position. LineTotalCents is derived from
// Quantity and UnitPriceCents and is never set by a caller.
type LineItem struct {
	InventoryID    string `json:"inventory_id" bson:"inventory_id"`
	ProductName    string `json:"product_name" bson:"product_name"`
	Quantity       int64  `json:"quantity" bson:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents" bson:"unit_price_cents"`
	LineTotalCents int64  `json:"line_total_cents" bson:"line_total_cents"`
}

// Order is a purchase order aggregate. TotalAmountCents is always the sum of
// the line totals; Recalculate is the only place derived amounts are computed.
type Order struct {
	ID               string      `json:"id" bson:"_id,omitempty"`
	SupplierID       string      `json:"supplier_id" bson:"supplier_id"`
	SupplierName     string      `json:"supplier_name,omitempty" bson:"supplier_name,omitempty"`
	Status           OrderStatus `json:"status" bson:"status"`
	OrderDate        time.Time   `json:"order_date" bson:"order_date"`
	Notes            string      `json:"notes,omitempty" bson:"notes,omitempty"`
	LineItems        []LineItem  `json:"line_items" bson:"line_items"`
	TotalAmountCents int64       `json:"total_amount_cents" bson:"total_amount_cents"`
	LastUpdated      time.Time   `json:"last_updated" bson:"last_updated"`
}

func (o Order) RecordID() string { return o.ID }

// CloneRecord returns a deep copy; the line item slice is not shared with
// the original.
func (o Order) CloneRecord() Order {
	clone := o
	clone.LineItems = make([]LineItem, len(o.LineItems))
	copy(clone.LineItems, o.LineItems)
	return clone
}

// Recalculate recomputes every LineTotalCents and TotalAmountCents from the
// line items. Integer minor units keep the sum exact.
func (o *Order) Recalculate() {
	var total int64
	for i := range o.LineItems {
		li := &o.LineItems[i]
		li.LineTotalCents = li.Quantity * li.UnitPriceCents
		total += li.LineTotalCents
	}
	o.TotalAmountCents = total
}
