package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/supplyline/scm-console/internal/core/domain"
	"github.com/supplyline/scm-console/internal/core/ports"
)

type memSupplierRepo struct {
	suppliers map[string]*domain.Supplier
	nextID    int
}

func newMemSupplierRepo() *memSupplierRepo {
	return &memSupplierRepo{suppliers: make(map[string]*domain.Supplier)}
}

func (r *memSupplierRepo) List(context.Context) ([]*domain.Supplier, error) {
	out := make([]*domain.Supplier, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		clone := *s
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memSupplierRepo) FindByID(_ context.Context, id string) (*domain.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *memSupplierRepo) Create(_ context.Context, s *domain.Supplier) error {
	r.nextID++
	s.ID = string(rune('a' + r.nextID))
	clone := *s
	r.suppliers[s.ID] = &clone
	return nil
}

func (r *memSupplierRepo) Update(_ context.Context, s *domain.Supplier) error {
	if _, ok := r.suppliers[s.ID]; !ok {
		return domain.ErrNotFound
	}
	clone := *s
	r.suppliers[s.ID] = &clone
	return nil
}

func (r *memSupplierRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.suppliers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.suppliers, id)
	return nil
}

func validSupplierInput() ports.SupplierInput {
	return ports.SupplierInput{
		Name:          "ABC Electronics",
		ContactPerson: "John Smith",
		Email:         "john.smith@abcelectronics.com",
		Phone:         "+1-555-0123",
		Address:       "123 Tech Park",
		Rating:        4.5,
	}
}

func TestSupplierService_Create_Success(t *testing.T) {
	svc := NewSupplierService(newMemSupplierRepo(), zerolog.Nop())

	s, err := svc.Create(context.Background(), validSupplierInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if s.ID == "" {
		t.Fatalf("expected id assigned by repository")
	}
	if s.LastUpdated.IsZero() {
		t.Fatalf("expected last_updated to be stamped")
	}
}

func TestSupplierService_Create_MissingEmailIsSingleViolation(t *testing.T) {
	svc := NewSupplierService(newMemSupplierRepo(), zerolog.Nop())

	input := validSupplierInput()
	input.Email = ""
	_, err := svc.Create(context.Background(), input)

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Violations) != 1 {
		t.Fatalf("expected exactly one violation, got %v", ve.Violations)
	}
	if ve.Violations[0].Field != "email" || ve.Violations[0].Message != "is required" {
		t.Fatalf("unexpected violation: %+v", ve.Violations[0])
	}
}

func TestSupplierService_Create_AllViolationsReported(t *testing.T) {
	svc := NewSupplierService(newMemSupplierRepo(), zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.SupplierInput{Rating: 9})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	// five required fields plus the rating range
	if len(ve.Violations) != 6 {
		t.Fatalf("expected 6 violations, got %d: %v", len(ve.Violations), ve.Violations)
	}
}

func TestSupplierService_Create_BadEmailFormat(t *testing.T) {
	svc := NewSupplierService(newMemSupplierRepo(), zerolog.Nop())

	input := validSupplierInput()
	input.Email = "not-an-email"
	_, err := svc.Create(context.Background(), input)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Violations) != 1 || ve.Violations[0].Field != "email" {
		t.Fatalf("unexpected violations: %v", ve.Violations)
	}
}

func TestSupplierService_Delete_RequiresManager(t *testing.T) {
	repo := newMemSupplierRepo()
	svc := NewSupplierService(repo, zerolog.Nop())

	s, err := svc.Create(context.Background(), validSupplierInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), s.ID, domain.RoleUser); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if err := svc.Delete(context.Background(), s.ID, domain.RoleAdmin); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
}
