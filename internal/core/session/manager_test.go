package session

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supplyline/scm-console/internal/core/domain"
)

type stubAuthenticator struct {
	token    string
	identity *domain.User
	loginErr error
	validErr error
}

func (a *stubAuthenticator) Login(context.Context, string, string) (string, *domain.User, error) {
	if a.loginErr != nil {
		return "", nil, a.loginErr
	}
	id := *a.identity
	return a.token, &id, nil
}

func (a *stubAuthenticator) Validate(context.Context, string) (*domain.User, error) {
	if a.validErr != nil {
		return nil, a.validErr
	}
	id := *a.identity
	return &id, nil
}

type memCredStore struct {
	token   string
	loadErr error
}

func (s *memCredStore) Save(token string) error { s.token = token; return nil }
func (s *memCredStore) Load() (string, error)   { return s.token, s.loadErr }
func (s *memCredStore) Clear() error            { s.token = ""; return nil }

type captureSink struct {
	entries []domain.ActivityEntry
	err     error
}

func (s *captureSink) Append(_ context.Context, e domain.ActivityEntry) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, e)
	return nil
}

func newTestManager(auth *stubAuthenticator, creds *memCredStore, sink *captureSink) *Manager {
	return NewManager(auth, creds, sink, zerolog.Nop())
}

func managerUser(role domain.Role) *domain.User {
	return &domain.User{ID: "u-1", Name: "Alice", Email: "alice@example.com", Role: role}
}

func TestManager_Login_Success(t *testing.T) {
	auth := &stubAuthenticator{token: "tok-1", identity: managerUser(domain.RoleManager)}
	creds := &memCredStore{}
	sink := &captureSink{}
	m := newTestManager(auth, creds, sink)

	sess, err := m.Login(context.Background(), "alice@example.com", "pw")
	require.NoError(t, err)
	require.True(t, sess.Authenticated())
	assert.Equal(t, "tok-1", sess.Credential)
	assert.Equal(t, "tok-1", creds.token, "credential should be persisted")

	require.Len(t, sink.entries, 1)
	assert.Equal(t, "login", sink.entries[0].Action)
	assert.Equal(t, "u-1", sink.entries[0].ActorID)
}

func TestManager_Login_FailureLeavesPreviousSession(t *testing.T) {
	auth := &stubAuthenticator{token: "tok-1", identity: managerUser(domain.RoleUser)}
	creds := &memCredStore{}
	m := newTestManager(auth, creds, &captureSink{})

	// no prior session: failed login establishes nothing
	auth.loginErr = domain.ErrInvalidCredentials
	_, err := m.Login(context.Background(), "a@x.com", "wrong")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Nil(t, m.Current())

	// successful login, then a failed one: prior session untouched
	auth.loginErr = nil
	_, err = m.Login(context.Background(), "a@x.com", "right")
	require.NoError(t, err)

	auth.loginErr = errors.New("backend unreachable")
	_, err = m.Login(context.Background(), "a@x.com", "right")
	require.Error(t, err)
	require.NotNil(t, m.Current())
	assert.Equal(t, "tok-1", m.Current().Credential)
}

func TestManager_Logout_Idempotent(t *testing.T) {
	auth := &stubAuthenticator{token: "tok-1", identity: managerUser(domain.RoleAdmin)}
	creds := &memCredStore{}
	sink := &captureSink{}
	m := newTestManager(auth, creds, sink)

	_, err := m.Login(context.Background(), "alice@example.com", "pw")
	require.NoError(t, err)

	m.Logout()
	assert.Nil(t, m.Current())
	assert.Empty(t, creds.token)
	assert.False(t, m.HasPermission(domain.RoleUser))

	before := len(sink.entries)
	m.Logout() // no-op
	assert.Nil(t, m.Current())
	assert.Len(t, sink.entries, before, "second logout must not log again")
}

func TestManager_HasPermission_Monotonic(t *testing.T) {
	for _, held := range []domain.Role{domain.RoleUser, domain.RoleManager, domain.RoleAdmin} {
		auth := &stubAuthenticator{token: "t", identity: managerUser(held)}
		m := newTestManager(auth, &memCredStore{}, &captureSink{})
		_, err := m.Login(context.Background(), "a@x.com", "pw")
		require.NoError(t, err)

		for _, required := range []domain.Role{domain.RoleUser, domain.RoleManager, domain.RoleAdmin} {
			assert.Equal(t, held >= required, m.HasPermission(required),
				"held=%s required=%s", held, required)
		}
	}
}

func TestManager_HasPermission_Unauthenticated(t *testing.T) {
	m := newTestManager(&stubAuthenticator{}, &memCredStore{}, &captureSink{})
	assert.False(t, m.HasPermission(domain.RoleUser))
}

func TestManager_Restore(t *testing.T) {
	identity := managerUser(domain.RoleManager)

	t.Run("no stored credential", func(t *testing.T) {
		m := newTestManager(&stubAuthenticator{identity: identity}, &memCredStore{}, &captureSink{})
		sess, err := m.Restore(context.Background())
		require.NoError(t, err)
		assert.Nil(t, sess)
	})

	t.Run("valid credential", func(t *testing.T) {
		creds := &memCredStore{token: "stored-tok"}
		m := newTestManager(&stubAuthenticator{identity: identity}, creds, &captureSink{})
		sess, err := m.Restore(context.Background())
		require.NoError(t, err)
		require.True(t, sess.Authenticated())
		assert.Equal(t, "stored-tok", sess.Credential)
	})

	t.Run("rejected credential is silent and cleared", func(t *testing.T) {
		creds := &memCredStore{token: "stale-tok"}
		auth := &stubAuthenticator{identity: identity, validErr: domain.ErrTokenExpired}
		m := newTestManager(auth, creds, &captureSink{})
		sess, err := m.Restore(context.Background())
		require.NoError(t, err)
		assert.Nil(t, sess)
		assert.Empty(t, creds.token)
	})

	t.Run("unreadable store is silent", func(t *testing.T) {
		creds := &memCredStore{loadErr: errors.New("disk error")}
		m := newTestManager(&stubAuthenticator{identity: identity}, creds, &captureSink{})
		sess, err := m.Restore(context.Background())
		require.NoError(t, err)
		assert.Nil(t, sess)
	})
}

func TestManager_RecordActivity_BestEffort(t *testing.T) {
	auth := &stubAuthenticator{token: "t", identity: managerUser(domain.RoleUser)}
	sink := &captureSink{err: errors.New("collector down")}
	m := newTestManager(auth, &memCredStore{}, sink)

	_, err := m.Login(context.Background(), "a@x.com", "pw")
	require.NoError(t, err)

	// sink failure must not surface; the local trail still grows
	m.RecordActivity("view", map[string]any{"page": "inventory"})
	trail := m.Trail()
	require.Len(t, trail, 2) // login + view
	assert.Equal(t, "view", trail[1].Action)
	assert.Equal(t, "u-1", trail[1].ActorID)
	assert.False(t, trail[1].Timestamp.IsZero())
}

func TestManager_Trail_Bounded(t *testing.T) {
	auth := &stubAuthenticator{token: "t", identity: managerUser(domain.RoleUser)}
	m := newTestManager(auth, &memCredStore{}, &captureSink{})
	for i := 0; i < maxTrailEntries+50; i++ {
		m.RecordActivity("tick", nil)
	}
	assert.Len(t, m.Trail(), maxTrailEntries)
}

func TestLocalAuthenticator(t *testing.T) {
	auth := NewLocalAuthenticator(nil)

	_, _, err := auth.Login(context.Background(), "", "pw")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	token, identity, err := auth.Login(context.Background(), "demo@example.com", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "demo", identity.Name)
	assert.Equal(t, domain.RoleAdmin, identity.Role, "default policy is first-class admin")

	restored, err := auth.Validate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, restored.Role)
}
