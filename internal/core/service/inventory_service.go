package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/supplyline/scm-console/internal/core/domain"
	"github.com/supplyline/scm-console/internal/core/ports"
)

type InventoryService struct {
	repo   ports.InventoryRepository
	logger zerolog.Logger
}

func NewInventoryService(repo ports.InventoryRepository, logger zerolog.Logger) *InventoryService {
	return &InventoryService{repo: repo, logger: logger}
}

func (s *InventoryService) List(ctx context.Context) ([]*domain.InventoryItem, error) {
	return s.repo.List(ctx)
}

func (s *InventoryService) Get(ctx context.Context, id string) (*domain.InventoryItem, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *InventoryService) Create(ctx context.Context, input ports.InventoryInput) (*domain.InventoryItem, error) {
	if err := validateInventory(input); err != nil {
		return nil, err
	}

	item := &domain.InventoryItem{
		ProductName:    input.ProductName,
		Description:    input.Description,
		Quantity:       input.Quantity,
		UnitPriceCents: input.UnitPriceCents,
		Category:       input.Category,
		Location:       input.Location,
		LastUpdated:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, item); err != nil {
		s.logger.Error().Err(err).Msg("failed to create inventory item")
		return nil, err
	}

	s.logger.Info().Str("id", item.ID).Str("product", item.ProductName).Msg("inventory item created")
	return item, nil
}

func (s *InventoryService) Update(ctx context.Context, id string, input ports.InventoryInput) (*domain.InventoryItem, error) {
	if err := validateInventory(input); err != nil {
		return nil, err
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item.ProductName = input.ProductName
	item.Description = input.Description
	item.Quantity = input.Quantity
	item.UnitPriceCents = input.UnitPriceCents
	item.Category = input.Category
	item.Location = input.Location
	item.LastUpdated = time.Now().UTC()

	if err := s.repo.Update(ctx, item); err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to update inventory item")
		return nil, err
	}
	return item, nil
}

// Delete removes an item. Requires at least the manager role.
func (s *InventoryService) Delete(ctx context.Context, id string, actorRole domain.Role) error {
	if !actorRole.AtLeast(domain.RoleManager) {
		return fmt.Errorf("delete inventory %s: %w", id, domain.ErrPermissionDenied)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("id", id).Msg("inventory item deleted")
	return nil
}

func validateInventory(input ports.InventoryInput) error {
	var violations []domain.FieldViolation
	if strings.TrimSpace(input.ProductName) == "" {
		violations = append(violations, domain.FieldViolation{Field: "product_name", Message: "is required"})
	}
	if input.Quantity < 0 {
		violations = append(violations, domain.FieldViolation{Field: "quantity", Message: "must be non-negative"})
	}
	if input.UnitPriceCents < 0 {
		violations = append(violations, domain.FieldViolation{Field: "unit_price", Message: "must be non-negative"})
	}
	if len(violations) > 0 {
		return &domain.ValidationError{Violations: violations}
	}
	return nil
}
