package ports

import (
	"context"
	"time"

	"github.com/supplyline/scm-console/internal/core/domain"
)

// UserRepository defines the interface for user authentication persistence.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// InventoryRepository defines persistence operations for inventory items.
type InventoryRepository interface {
	List(ctx context.Context) ([]*domain.InventoryItem, error)
	FindByID(ctx context.Context, id string) (*domain.InventoryItem, error)
	Create(ctx context.Context, item *domain.InventoryItem) error
	Update(ctx context.Context, item *domain.InventoryItem) error
	Delete(ctx context.Context, id string) error
}

// SupplierRepository defines persistence operations for suppliers.
type SupplierRepository interface {
	List(ctx context.Context) ([]*domain.Supplier, error)
	FindByID(ctx context.Context, id string) (*domain.Supplier, error)
	Create(ctx context.Context, s *domain.Supplier) error
	Update(ctx context.Context, s *domain.Supplier) error
	Delete(ctx context.Context, id string) error
}

// OrderRepository defines persistence operations for purchase orders.
type OrderRepository interface {
	List(ctx context.Context) ([]*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	Create(ctx context.Context, o *domain.Order) error
	Update(ctx context.Context, o *domain.Order) error
	Delete(ctx context.Context, id string) error
}

// ListActivityFilter carries query parameters for reading the audit trail.
type ListActivityFilter struct {
	ActorID string    // optional: scope to one actor
	Action  string    // optional: filter by action verb
	Since   time.Time // optional: timestamp >= Since
	Limit   int       // max rows (capped by service)
}

// ActivityRepository persists the append-only audit trail. No update or
// delete operations exist on purpose.
type ActivityRepository interface {
	Append(ctx context.Context, entry *domain.ActivityEntry) error
	List(ctx context.Context, filter ListActivityFilter) ([]*domain.ActivityEntry, error)
}
