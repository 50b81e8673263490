package session

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/supplyline/scm-console/internal/core/domain"
	"github.com/supplyline/scm-console/internal/core/ports"
)

// AdminPolicy assigns every account the admin role. This is the local-mode
// default; deployments that want finer assignment inject their own policy.
var AdminPolicy = ports.RolePolicyFunc(func(string) domain.Role { return domain.RoleAdmin })

// LocalAuthenticator is an offline Authenticator for running the console
// without an identity backend. Any non-empty credentials are accepted and the
// role comes from the injected policy. Not for production use.
type LocalAuthenticator struct {
	policy ports.RolePolicy
}

func NewLocalAuthenticator(policy ports.RolePolicy) *LocalAuthenticator {
	if policy == nil {
		policy = AdminPolicy
	}
	return &LocalAuthenticator{policy: policy}
}

func (a *LocalAuthenticator) Login(_ context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}
	return uuid.NewString(), a.identityFor(email), nil
}

// Validate accepts any previously issued token. Local mode keeps no token
// registry, so the restored identity is the standing local account.
func (a *LocalAuthenticator) Validate(_ context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrInvalidCredentials
	}
	return a.identityFor("local@scm-console"), nil
}

func (a *LocalAuthenticator) identityFor(email string) *domain.User {
	name := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		name = email[:at]
	}
	return &domain.User{
		ID:    "local-" + name,
		Name:  name,
		Email: email,
		Role:  a.policy.RoleFor(email),
	}
}
