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

type SupplierService struct {
	repo   ports.SupplierRepository
	logger zerolog.Logger
}

func NewSupplierService(repo ports.SupplierRepository, logger zerolog.Logger) *SupplierService {
	return &SupplierService{repo: repo, logger: logger}
}

func (s *SupplierService) List(ctx context.Context) ([]*domain.Supplier, error) {
	return s.repo.List(ctx)
}

func (s *SupplierService) Get(ctx context.Context, id string) (*domain.Supplier, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *SupplierService) Create(ctx context.Context, input ports.SupplierInput) (*domain.Supplier, error) {
	if err := validateSupplier(input); err != nil {
		return nil, err
	}

	supplier := &domain.Supplier{
		Name:          input.Name,
		ContactPerson: input.ContactPerson,
		Email:         input.Email,
		Phone:         input.Phone,
		Address:       input.Address,
		Rating:        input.Rating,
		LastUpdated:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, supplier); err != nil {
		s.logger.Error().Err(err).Msg("failed to create supplier")
		return nil, err
	}

	s.logger.Info().Str("id", supplier.ID).Str("name", supplier.Name).Msg("supplier created")
	return supplier, nil
}

func (s *SupplierService) Update(ctx context.Context, id string, input ports.SupplierInput) (*domain.Supplier, error) {
	if err := validateSupplier(input); err != nil {
		return nil, err
	}

	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	supplier.Name = input.Name
	supplier.ContactPerson = input.ContactPerson
	supplier.Email = input.Email
	supplier.Phone = input.Phone
	supplier.Address = input.Address
	supplier.Rating = input.Rating
	supplier.LastUpdated = time.Now().UTC()

	if err := s.repo.Update(ctx, supplier); err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to update supplier")
		return nil, err
	}
	return supplier, nil
}

// Delete removes a supplier. Requires at least the manager role.
func (s *SupplierService) Delete(ctx context.Context, id string, actorRole domain.Role) error {
	if !actorRole.AtLeast(domain.RoleManager) {
		return fmt.Errorf("delete supplier %s: %w", id, domain.ErrPermissionDenied)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("id", id).Msg("supplier deleted")
	return nil
}

func validateSupplier(input ports.SupplierInput) error {
	var violations []domain.FieldViolation

	required := []struct{ field, value string }{
		{"name", input.Name},
		{"contact_person", input.ContactPerson},
		{"email", input.Email},
		{"phone", input.Phone},
		{"address", input.Address},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			violations = append(violations, domain.FieldViolation{Field: r.field, Message: "is required"})
		}
	}
	if input.Email != "" && !strings.Contains(input.Email, "@") {
		violations = append(violations, domain.FieldViolation{Field: "email", Message: "must be a valid email"})
	}
	if input.Rating < 0 || input.Rating > 5 {
		violations = append(violations, domain.FieldViolation{Field: "rating", Message: "must be between 0 and 5"})
	}

	if len(violations) > 0 {
		return &domain.ValidationError{Violations: violations}
	}
	return nil
}
