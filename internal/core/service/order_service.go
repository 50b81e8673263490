package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/supplyline/scm-console/internal/core/domain"
	"github.com/supplyline/scm-console/internal/core/ports"
)

type OrderService struct {
	repo         ports.OrderRepository
	supplierRepo ports.SupplierRepository
	logger       zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, supplierRepo ports.SupplierRepository, logger zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, supplierRepo: supplierRepo, logger: logger}
}

func (s *OrderService) List(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.FindByID(ctx, id)
}

// Create persists a new order. Line totals and the order total are always
// recomputed here; amounts submitted by the caller are ignored.
func (s *OrderService) Create(ctx context.Context, input ports.OrderInput) (*domain.Order, error) {
	if err := validateOrder(input); err != nil {
		return nil, err
	}

	supplier, err := s.supplierRepo.FindByID(ctx, input.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("create order: supplier %s: %w", input.SupplierID, err)
	}

	status := input.Status
	if status == "" {
		status = domain.OrderPending
	}

	now := time.Now().UTC()
	order := &domain.Order{
		SupplierID:   supplier.ID,
		SupplierName: supplier.Name,
		Status:       status,
		OrderDate:    now,
		Notes:        input.Notes,
		LineItems:    toLineItems(input.LineItems),
		LastUpdated:  now,
	}
	order.Recalculate()

	if err := s.repo.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Msg("failed to create order")
		return nil, err
	}

	s.logger.Info().Str("id", order.ID).Str("supplier_id", order.SupplierID).
		Int64("total_cents", order.TotalAmountCents).Msg("order created")
	return order, nil
}

// Update replaces the editable fields of an order and recomputes the totals.
// Status changes must follow the order state machine.
func (s *OrderService) Update(ctx context.Context, id string, input ports.OrderInput) (*domain.Order, error) {
	if err := validateOrder(input); err != nil {
		return nil, err
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != "" && input.Status != order.Status {
		if !order.Status.CanTransitionTo(input.Status) {
			return nil, &domain.ValidationError{Violations: []domain.FieldViolation{{
				Field:   "status",
				Message: fmt.Sprintf("cannot change from %s to %s", order.Status, input.Status),
			}}}
		}
		order.Status = input.Status
	}

	if input.SupplierID != order.SupplierID {
		supplier, err := s.supplierRepo.FindByID(ctx, input.SupplierID)
		if err != nil {
			return nil, fmt.Errorf("update order: supplier %s: %w", input.SupplierID, err)
		}
		order.SupplierID = supplier.ID
		order.SupplierName = supplier.Name
	}

	order.Notes = input.Notes
	order.LineItems = toLineItems(input.LineItems)
	order.LastUpdated = time.Now().UTC()
	order.Recalculate()

	if err := s.repo.Update(ctx, order); err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to update order")
		return nil, err
	}
	return order, nil
}

// Delete removes an order. Requires at least the manager role.
func (s *OrderService) Delete(ctx context.Context, id string, actorRole domain.Role) error {
	if !actorRole.AtLeast(domain.RoleManager) {
		return fmt.Errorf("delete order %s: %w", id, domain.ErrPermissionDenied)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("id", id).Msg("order deleted")
	return nil
}

func toLineItems(inputs []ports.LineItemInput) []domain.LineItem {
	items := make([]domain.LineItem, len(inputs))
	for i, in := range inputs {
		items[i] = domain.LineItem{
			InventoryID:    in.InventoryID,
			ProductName:    in.ProductName,
			Quantity:       in.Quantity,
			UnitPriceCents: in.UnitPriceCents,
		}
	}
	return items
}

func validateOrder(input ports.OrderInput) error {
	var violations []domain.FieldViolation
	if input.SupplierID == "" {
		violations = append(violations, domain.FieldViolation{Field: "supplier_id", Message: "is required"})
	}
	if len(input.LineItems) == 0 {
		violations = append(violations, domain.FieldViolation{Field: "line_items", Message: "must contain at least one item"})
	}
	for i, li := range input.LineItems {
		if li.InventoryID == "" {
			violations = append(violations, domain.FieldViolation{Field: fmt.Sprintf("line_items[%d].inventory_id", i), Message: "is required"})
		}
		if li.Quantity <= 0 {
			violations = append(violations, domain.FieldViolation{Field: fmt.Sprintf("line_items[%d].quantity", i), Message: "must be positive"})
		}
		if li.UnitPriceCents < 0 {
			violations = append(violations, domain.FieldViolation{Field: fmt.Sprintf("line_items[%d].unit_price", i), Message: "must be non-negative"})
		}
	}
	if len(violations) > 0 {
		return &domain.ValidationError{Violations: violations}
	}
	return nil
}
