package ports

import (
	"context"

	"github.com/supplyline/scm-console/internal/core/domain"
)

// AuthService handles credential verification and account creation.
type AuthService interface {
	// Login verifies the password for the account registered under email and
	// returns a signed bearer token plus the identity.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
}

// RegisterInput carries all data needed to create a new account.
// When Role is zero the service falls back to its role assignment policy.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// InventoryInput carries the editable fields of an inventory item.
type InventoryInput struct {
	ProductName    string
	Description    string
	Quantity       int64
	UnitPriceCents int64
	Category       string
	Location       string
}

// InventoryService implements inventory CRUD with validation.
type InventoryService interface {
	List(ctx context.Context) ([]*domain.InventoryItem, error)
	Get(ctx context.Context, id string) (*domain.InventoryItem, error)
	Create(ctx context.Context, input InventoryInput) (*domain.InventoryItem, error)
	Update(ctx context.Context, id string, input InventoryInput) (*domain.InventoryItem, error)
	// Delete removes an item; the caller's role must be at least manager.
	Delete(ctx context.Context, id string, actorRole domain.Role) error
}

// SupplierInput carries the editable fields of a supplier.
type SupplierInput struct {
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	Rating        float64
}

// SupplierService implements supplier CRUD with validation.
type SupplierService interface {
	List(ctx context.Context) ([]*domain.Supplier, error)
	Get(ctx context.Context, id string) (*domain.Supplier, error)
	Create(ctx context.Context, input SupplierInput) (*domain.Supplier, error)
	Update(ctx context.Context, id string, input SupplierInput) (*domain.Supplier, error)
	Delete(ctx context.Context, id string, actorRole domain.Role) error
}

// LineItemInput is one ordered position as submitted by a caller. Line totals
// are derived server-side and never accepted from the wire.
type LineItemInput struct {
	InventoryID    string
	ProductName    string
	Quantity       int64
	UnitPriceCents int64
}

// OrderInput carries the editable fields of a purchase order.
type OrderInput struct {
	SupplierID string
	Status     domain.OrderStatus
	Notes      string
	LineItems  []LineItemInput
}

// OrderService implements purchase order CRUD. All derived amounts are
// recomputed on every write.
type OrderService interface {
	List(ctx context.Context) ([]*domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	Create(ctx context.Context, input OrderInput) (*domain.Order, error)
	Update(ctx context.Context, id string, input OrderInput) (*domain.Order, error)
	Delete(ctx context.Context, id string, actorRole domain.Role) error
}

// ActivityService records and reads the audit trail.
type ActivityService interface {
	// Record appends one entry. Failures are logged and swallowed by callers;
	// an audit write never aborts the action that produced it.
	Record(ctx context.Context, entry domain.ActivityEntry) error
	Recent(ctx context.Context, filter ListActivityFilter) ([]*domain.ActivityEntry, error)
}
