// Package editor implements the record mutation controllers: one working
// copy per controller, field edits gated by role, derived values recomputed
// on every mutation, validation before commit.
package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/supplyline/scm-console/internal/core/domain"
)

// FieldKind selects the coercion applied to raw field input.
type FieldKind int

const (
	KindText FieldKind = iota
	KindInt
	KindMoney  // decimal input, stored as integer minor units
	KindRating // 0..5, halves allowed
)

// FieldSpec describes one editable field: how raw input is coerced, the
// minimum role allowed to edit it, and how it is read and written on the
// working copy.
type FieldSpec[T any] struct {
	Name     string
	Kind     FieldKind
	Required bool
	MinRole  domain.Role
	Set      func(*T, any)
	Get      func(*T) any
}

// coerce converts raw text input to the field's typed value.
func coerce(kind FieldKind, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	switch kind {
	case KindText:
		return raw, nil
	case KindInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("not an integer: %q", raw)
		}
		return n, nil
	case KindMoney:
		return parseCents(raw)
	case KindRating:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", raw)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("unknown field kind %d", kind)
	}
}

// parseCents converts decimal money input ("89.99", "120", "-3.5") to integer
// minor units without going through a float.
func parseCents(raw string) (int64, error) {
	s := raw
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("not an amount: %q", raw)
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount has more than two decimal places: %q", raw)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not an amount: %q", raw)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not an amount: %q", raw)
	}

	cents := w*100 + f
	if neg {
		cents = -cents
	}
	return cents, nil
}

// violationFor checks one field's current value against its spec.
func violationFor[T any](spec FieldSpec[T], rec *T) *domain.FieldViolation {
	v := spec.Get(rec)
	switch val := v.(type) {
	case string:
		if spec.Required && strings.TrimSpace(val) == "" {
			return &domain.FieldViolation{Field: spec.Name, Message: "is required"}
		}
	case int64:
		if val < 0 {
			return &domain.FieldViolation{Field: spec.Name, Message: "must be non-negative"}
		}
	case float64:
		if val < 0 || val > 5 {
			return &domain.FieldViolation{Field: spec.Name, Message: "must be between 0 and 5"}
		}
	}
	return nil
}

// InventoryFields is the field registry for inventory items. Role minimums
// mirror the edit policy: stock counts and shelf location are day-to-day user
// edits, catalogue identity and pricing are manager territory.
func InventoryFields() []FieldSpec[domain.InventoryItem] {
	return []FieldSpec[domain.InventoryItem]{
		{
			Name: "product_name", Kind: KindText, Required: true, MinRole: domain.RoleManager,
			Set: func(r *domain.InventoryItem, v any) { r.ProductName = v.(string) },
			Get: func(r *domain.InventoryItem) any { return r.ProductName },
		},
		{
			Name: "description", Kind: KindText, MinRole: domain.RoleManager,
			Set: func(r *domain.InventoryItem, v any) { r.Description = v.(string) },
			Get: func(r *domain.InventoryItem) any { return r.Description },
		},
		{
			Name: "category", Kind: KindText, MinRole: domain.RoleManager,
			Set: func(r *domain.InventoryItem, v any) { r.Category = v.(string) },
			Get: func(r *domain.InventoryItem) any { return r.Category },
		},
		{
			Name: "quantity", Kind: KindInt, MinRole: domain.RoleUser,
			Set: func(r *domain.InventoryItem, v any) { r.Quantity = v.(int64) },
			Get: func(r *domain.InventoryItem) any { return r.Quantity },
		},
		{
			Name: "unit_price", Kind: KindMoney, MinRole: domain.RoleManager,
			Set: func(r *domain.InventoryItem, v any) { r.UnitPriceCents = v.(int64) },
			Get: func(r *domain.InventoryItem) any { return r.UnitPriceCents },
		},
		{
			Name: "location", Kind: KindText, MinRole: domain.RoleUser,
			Set: func(r *domain.InventoryItem, v any) { r.Location = v.(string) },
			Get: func(r *domain.InventoryItem) any { return r.Location },
		},
	}
}

// SupplierFields is the field registry for suppliers. Vendor master data is
// manager-only across the board.
func SupplierFields() []FieldSpec[domain.Supplier] {
	return []FieldSpec[domain.Supplier]{
		{
			Name: "name", Kind: KindText, Required: true, MinRole: domain.RoleManager,
			Set: func(r *domain.Supplier, v any) { r.Name = v.(string) },
			Get: func(r *domain.Supplier) any { return r.Name },
		},
		{
			Name: "contact_person", Kind: KindText, Required: true, MinRole: domain.RoleManager,
			Set: func(r *domain.Supplier, v any) { r.ContactPerson = v.(string) },
			Get: func(r *domain.Supplier) any { return r.ContactPerson },
		},
		{
			Name: "email", Kind: KindText, Required: true, MinRole: domain.RoleManager,
			Set: func(r *domain.Supplier, v any) { r.Email = v.(string) },
			Get: func(r *domain.Supplier) any { return r.Email },
		},
		{
			Name: "phone", Kind: KindText, Required: true, MinRole: domain.RoleManager,
			Set: func(r *domain.Supplier, v any) { r.Phone = v.(string) },
			Get: func(r *domain.Supplier) any { return r.Phone },
		},
		{
			Name: "address", Kind: KindText, Required: true, MinRole: domain.RoleManager,
			Set: func(r *domain.Supplier, v any) { r.Address = v.(string) },
			Get: func(r *domain.Supplier) any { return r.Address },
		},
		{
			Name: "rating", Kind: KindRating, MinRole: domain.RoleManager,
			Set: func(r *domain.Supplier, v any) { r.Rating = v.(float64) },
			Get: func(r *domain.Supplier) any { return r.Rating },
		},
	}
}

// OrderFields is the field registry for purchase order headers. Line items
// are mutated through the dedicated operations on OrderController, never as
// plain fields.
func OrderFields() []FieldSpec[domain.Order] {
	return []FieldSpec[domain.Order]{
		{
			Name: "supplier_id", Kind: KindText, Required: true, MinRole: domain.RoleUser,
			Set: func(r *domain.Order, v any) { r.SupplierID = v.(string) },
			Get: func(r *domain.Order) any { return r.SupplierID },
		},
		{
			Name: "notes", Kind: KindText, MinRole: domain.RoleUser,
			Set: func(r *domain.Order, v any) { r.Notes = v.(string) },
			Get: func(r *domain.Order) any { return r.Notes },
		},
		{
			Name: "status", Kind: KindText, MinRole: domain.RoleManager,
			Set: func(r *domain.Order, v any) { r.Status = domain.OrderStatus(v.(string)) },
			Get: func(r *domain.Order) any { return string(r.Status) },
		},
	}
}

// supplierEmailViolation reports a malformed non-empty email. An empty email
// is already covered by the required check, so it is not double-reported.
func supplierEmailViolation(s *domain.Supplier) []domain.FieldViolation {
	if s.Email != "" && !strings.Contains(s.Email, "@") {
		return []domain.FieldViolation{{Field: "email", Message: "must be a valid email"}}
	}
	return nil
}

// orderViolations enforces the order-level rules: a selected supplier, at
// least one line, a known status, and sane line contents.
func orderViolations(o *domain.Order) []domain.FieldViolation {
	var out []domain.FieldViolation
	if len(o.LineItems) == 0 {
		out = append(out, domain.FieldViolation{Field: "line_items", Message: "must contain at least one item"})
	}
	switch o.Status {
	case "", domain.OrderPending, domain.OrderProcessing, domain.OrderCompleted, domain.OrderCancelled:
	default:
		out = append(out, domain.FieldViolation{Field: "status", Message: fmt.Sprintf("unknown status %q", o.Status)})
	}
	for i, li := range o.LineItems {
		if li.Quantity <= 0 {
			out = append(out, domain.FieldViolation{Field: fmt.Sprintf("line_items[%d].quantity", i), Message: "must be positive"})
		}
		if li.InventoryID == "" {
			out = append(out, domain.FieldViolation{Field: fmt.Sprintf("line_items[%d].inventory_id", i), Message: "is required"})
		}
	}
	return out
}
