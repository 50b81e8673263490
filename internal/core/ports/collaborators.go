package ports

import (
	"context"

	"github.com/supplyline/scm-console/internal/core/domain"
)

// RecordStore is the remote data collaborator contract for one record type.
// Implementations translate transport and status-coded failures into the
// domain error taxonomy (*domain.RemoteError, domain.ErrNotFound,
// domain.ErrPermissionDenied).
type RecordStore[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, record T) (T, error)
	Update(ctx context.Context, id string, record T) (T, error)
	Delete(ctx context.Context, id string) error
}

// Authenticator verifies credentials and tokens against an identity backend.
type Authenticator interface {
	// Login exchanges credentials for a bearer token and the identity it
	// represents. Fails with domain.ErrInvalidCredentials or *domain.RemoteError.
	Login(ctx context.Context, email, password string) (token string, identity *domain.User, err error)
	// Validate resolves a previously issued token back to an identity.
	Validate(ctx context.Context, token string) (*domain.User, error)
}

// CredentialStore persists a single opaque bearer token across restarts.
// Load returns ("", nil) when no token is stored.
type CredentialStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

// AuditSink accepts append-only activity entries. Delivery is best-effort;
// callers never treat a sink failure as a failure of their own action.
type AuditSink interface {
	Append(ctx context.Context, entry domain.ActivityEntry) error
}

// RolePolicy decides which role an identity is assigned when no identity
// backend holds one, e.g. in local demo mode. Kept as an interface so the
// assignment rule is swappable rather than baked in.
type RolePolicy interface {
	RoleFor(email string) domain.Role
}

// RolePolicyFunc adapts a plain function to a RolePolicy.
type RolePolicyFunc func(email string) domain.Role

func (f RolePolicyFunc) RoleFor(email string) domain.Role { return f(email) }
