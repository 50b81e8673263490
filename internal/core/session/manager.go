// Package session owns the authenticated identity and credential for the
// running process, answers role-based permission checks, and feeds the
// activity audit trail.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/supplyline/scm-console/internal/core/domain"
	"github.com/supplyline/scm-console/internal/core/ports"
)

// maxTrailEntries bounds the local audit buffer; the oldest entries are
// dropped once the sink has had its chance to receive them.
const maxTrailEntries = 256

// Manager is the session/authorization manager. It holds at most one live
// session; identity and credential are always set and cleared together.
type Manager struct {
	auth  ports.Authenticator
	creds ports.CredentialStore
	sink  ports.AuditSink
	log   zerolog.Logger

	mu         sync.Mutex
	identity   *domain.User
	credential string
	trail      []domain.ActivityEntry
}

func NewManager(auth ports.Authenticator, creds ports.CredentialStore, sink ports.AuditSink, log zerolog.Logger) *Manager {
	return &Manager{auth: auth, creds: creds, sink: sink, log: log}
}

// Login authenticates against the identity backend and establishes a new
// session. On failure the previous session, if any, is left untouched.
func (m *Manager) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	token, identity, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	m.mu.Lock()
	m.identity = identity
	m.credential = token
	m.mu.Unlock()

	if err := m.creds.Save(token); err != nil {
		// The session is live regardless; it just will not survive a restart.
		m.log.Warn().Err(err).Msg("failed to persist credential")
	}

	m.RecordActivity("login", map[string]any{"email": email})
	m.log.Info().Str("user_id", identity.ID).Str("role", identity.Role.String()).Msg("session established")

	return m.Current(), nil
}

// Restore reconstructs a session from a persisted credential. A missing
// credential is not an error; a credential the backend rejects is discarded
// and reported as "no session" rather than surfaced to the caller.
func (m *Manager) Restore(ctx context.Context) (*domain.Session, error) {
	token, err := m.creds.Load()
	if err != nil {
		m.log.Warn().Err(err).Msg("credential store unreadable, starting logged out")
		return nil, nil
	}
	if token == "" {
		return nil, nil
	}

	identity, err := m.auth.Validate(ctx, token)
	if err != nil {
		m.log.Info().Err(err).Msg("stored credential rejected, clearing it")
		if clearErr := m.creds.Clear(); clearErr != nil {
			m.log.Warn().Err(clearErr).Msg("failed to clear stale credential")
		}
		return nil, nil
	}

	m.mu.Lock()
	m.identity = identity
	m.credential = token
	m.mu.Unlock()

	m.log.Info().Str("user_id", identity.ID).Msg("session restored")
	return m.Current(), nil
}

// Logout clears identity and credential together. Calling it on an already
// logged-out manager is a no-op.
func (m *Manager) Logout() {
	m.mu.Lock()
	loggedIn := m.identity != nil
	m.mu.Unlock()
	if !loggedIn {
		return
	}

	// Record while the actor is still known.
	m.RecordActivity("logout", nil)

	m.mu.Lock()
	m.identity = nil
	m.credential = ""
	m.mu.Unlock()

	if err := m.creds.Clear(); err != nil {
		m.log.Warn().Err(err).Msg("failed to clear persisted credential")
	}
}

// Current returns a snapshot of the live session, or nil when logged out.
func (m *Manager) Current() *domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.identity == nil {
		return nil
	}
	identity := *m.identity
	return &domain.Session{Identity: &identity, Credential: m.credential}
}

// Credential returns the live bearer token, or "" when logged out.
func (m *Manager) Credential() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.credential
}

// HasPermission reports whether the current identity's role grants the
// required role. Always false when logged out. No side effects.
func (m *Manager) HasPermission(required domain.Role) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.identity == nil {
		return false
	}
	return m.identity.Role.AtLeast(required)
}

// RecordActivity appends one entry to the audit trail and forwards it to the
// sink. Best effort: it never fails and never blocks the caller's action.
func (m *Manager) RecordActivity(action string, details map[string]any) {
	entry := domain.ActivityEntry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		ActorID:   domain.SystemActor,
		Action:    action,
		Details:   details,
	}

	m.mu.Lock()
	if m.identity != nil {
		entry.ActorID = m.identity.ID
	}
	m.trail = append(m.trail, entry)
	if len(m.trail) > maxTrailEntries {
		m.trail = m.trail[len(m.trail)-maxTrailEntries:]
	}
	m.mu.Unlock()

	if err := m.sink.Append(context.Background(), entry); err != nil {
		m.log.Warn().Err(err).Str("action", action).Msg("audit sink rejected entry")
	}
}

// Trail returns a copy of the locally buffered audit entries, oldest first.
func (m *Manager) Trail() []domain.ActivityEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.ActivityEntry, len(m.trail))
	copy(out, m.trail)
	return out
}
