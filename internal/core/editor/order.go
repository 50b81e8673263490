package editor

import (
	"github.com/rs/zerolog"

	"github.com/supplyline/scm-console/internal/core/domain"
	"github.com/supplyline/scm-console/internal/core/ports"
)

// OrderController extends the generic controller with line item operations.
// Every line item mutation recomputes the derived totals before the new state
// becomes observable; callers can never see line items and total disagree.
type OrderController struct {
	*Controller[domain.Order]
}

func NewOrderController(store ports.RecordStore[domain.Order], sess Session, log zerolog.Logger) *OrderController {
	return &OrderController{
		Controller: New("order", store, sess, OrderFields(), orderViolations, log),
	}
}

// AddLineItem appends one line to the working order. Rejected with a
// ValidationError when no product is selected or the quantity is not
// positive; the order is unchanged in that case. The line total and order
// total are recomputed atomically with the append.
func (c *OrderController) AddLineItem(item domain.LineItem) (domain.Order, error) {
	if !c.sess.HasPermission(domain.RoleUser) {
		var zero domain.Order
		return zero, domain.ErrPermissionDenied
	}

	var violations []domain.FieldViolation
	if item.InventoryID == "" {
		violations = append(violations, domain.FieldViolation{Field: "inventory_id", Message: "is required"})
	}
	if item.Quantity <= 0 {
		violations = append(violations, domain.FieldViolation{Field: "quantity", Message: "must be positive"})
	}
	if len(violations) > 0 {
		var zero domain.Order
		return zero, &domain.ValidationError{Violations: violations}
	}

	return c.mutate(func(o *domain.Order) {
		o.LineItems = append(o.LineItems, item)
		o.Recalculate()
	})
}

// RemoveLineItem deletes the line at index and recomputes the totals in the
// same step. An out-of-range index leaves the order unchanged.
func (c *OrderController) RemoveLineItem(index int) (domain.Order, error) {
	if !c.sess.HasPermission(domain.RoleUser) {
		var zero domain.Order
		return zero, domain.ErrPermissionDenied
	}

	return c.mutate(func(o *domain.Order) {
		if index < 0 || index >= len(o.LineItems) {
			return
		}
		o.LineItems = append(o.LineItems[:index], o.LineItems[index+1:]...)
		o.Recalculate()
	})
}
