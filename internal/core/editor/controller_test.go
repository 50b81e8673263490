package editor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supplyline/scm-console/internal/core/domain"
)

// memStore is an in-memory RecordStore with failure injection and hooks for
// exercising in-flight behaviour.
type memStore[T cloneable[T]] struct {
	mu      sync.Mutex
	records map[string]T

	getErr    error
	updateErr error
	deleteErr error

	getHook    func(id string) // runs inside Get, before the lookup
	updateHook func()          // runs inside Update, before the write

	gets, creates, updates, deletes int
}

func newMemStore[T cloneable[T]](records ...T) *memStore[T] {
	s := &memStore[T]{records: make(map[string]T)}
	for _, r := range records {
		s.records[r.RecordID()] = r
	}
	return s
}

func (s *memStore[T]) List(context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r.CloneRecord())
	}
	return out, nil
}

func (s *memStore[T]) Get(_ context.Context, id string) (T, error) {
	if s.getHook != nil {
		s.getHook(id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	var zero T
	if s.getErr != nil {
		return zero, s.getErr
	}
	r, ok := s.records[id]
	if !ok {
		return zero, domain.ErrNotFound
	}
	return r.CloneRecord(), nil
}

func (s *memStore[T]) Create(_ context.Context, record T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	s.records["generated-id"] = record
	return record.CloneRecord(), nil
}

func (s *memStore[T]) Update(_ context.Context, id string, record T) (T, error) {
	if s.updateHook != nil {
		s.updateHook()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++
	var zero T
	if s.updateErr != nil {
		return zero, s.updateErr
	}
	s.records[id] = record
	return record.CloneRecord(), nil
}

func (s *memStore[T]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes++
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.records, id)
	return nil
}

func (s *memStore[T]) remoteCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creates + s.updates + s.deletes
}

// fakeSession grants a fixed role and captures recorded activity.
type fakeSession struct {
	mu      sync.Mutex
	role    domain.Role
	actions []string
}

func (s *fakeSession) HasPermission(required domain.Role) bool {
	return s.role != 0 && s.role.AtLeast(required)
}

func (s *fakeSession) RecordActivity(action string, _ map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, action)
}

func (s *fakeSession) recorded() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.actions...)
}

func sampleItem() domain.InventoryItem {
	return domain.InventoryItem{
		ID:             "inv-1",
		ProductName:    "Microprocessor A1",
		Description:    "High-performance CPU",
		Quantity:       150,
		UnitPriceCents: 8999,
		Category:       "Electronics",
		Location:       "Warehouse A",
	}
}

func TestController_Load(t *testing.T) {
	store := newMemStore(sampleItem())
	sess := &fakeSession{role: domain.RoleUser}
	c := NewInventoryController(store, sess, zerolog.Nop())

	rec, err := c.Load(context.Background(), "inv-1")
	require.NoError(t, err)
	assert.Equal(t, "Microprocessor A1", rec.ProductName)
	assert.Equal(t, []string{"view"}, sess.recorded())

	_, err = c.Load(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestController_SetField_PermissionGate(t *testing.T) {
	store := newMemStore(sampleItem())
	sess := &fakeSession{role: domain.RoleUser}
	c := NewInventoryController(store, sess, zerolog.Nop())

	_, err := c.Load(context.Background(), "inv-1")
	require.NoError(t, err)
	before, _ := c.Working()

	// unit_price requires manager; a user edit must change nothing
	got, err := c.SetField("unit_price", "10")
	require.ErrorIs(t, err, domain.ErrPermissionDenied)
	assert.Equal(t, before, got, "working copy must be returned unchanged")
	after, _ := c.Working()
	assert.Equal(t, before, after)

	// quantity requires only user
	got, err = c.SetField("quantity", "42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.Quantity)
}

func TestController_SetField_Coercion(t *testing.T) {
	store := newMemStore(sampleItem())
	sess := &fakeSession{role: domain.RoleManager}
	c := NewInventoryController(store, sess, zerolog.Nop())
	_, err := c.Load(context.Background(), "inv-1")
	require.NoError(t, err)

	got, err := c.SetField("unit_price", "120.50")
	require.NoError(t, err)
	assert.Equal(t, int64(12050), got.UnitPriceCents)

	// non-numeric input is staged, not applied, and surfaces at validate time
	got, err = c.SetField("quantity", "lots")
	require.NoError(t, err)
	assert.Equal(t, int64(150), got.Quantity, "previous value kept")

	violations := c.Validate()
	require.Len(t, violations, 1)
	assert.Equal(t, "quantity", violations[0].Field)

	// valid input clears the staged failure
	_, err = c.SetField("quantity", "7")
	require.NoError(t, err)
	assert.Empty(t, c.Validate())
}

func TestController_SetField_UnknownField(t *testing.T) {
	store := newMemStore(sampleItem())
	c := NewInventoryController(store, &fakeSession{role: domain.RoleAdmin}, zerolog.Nop())
	_, err := c.Load(context.Background(), "inv-1")
	require.NoError(t, err)

	_, err = c.SetField("tracking_number", "x")
	require.Error(t, err)
}

func TestController_Validate_ReportsAllViolations(t *testing.T) {
	store := newMemStore[domain.Supplier]()
	sess := &fakeSession{role: domain.RoleManager}
	c := NewSupplierController(store, sess, zerolog.Nop())
	c.Begin(domain.Supplier{})

	violations := c.Validate()
	// name, contact_person, email, phone, address all missing
	assert.Len(t, violations, 5)
}

func TestController_Commit_ValidationFailureSkipsRemote(t *testing.T) {
	supplier := domain.Supplier{
		ID: "sup-1", Name: "ABC Electronics", ContactPerson: "John Smith",
		Phone: "+1-555-0123", Address: "123 Tech Park",
	}
	store := newMemStore(supplier)
	sess := &fakeSession{role: domain.RoleManager}
	c := NewSupplierController(store, sess, zerolog.Nop())
	_, err := c.Load(context.Background(), "sup-1")
	require.NoError(t, err)

	_, err = c.Commit(context.Background())
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Violations, 1, "only the missing email may be reported")
	assert.Equal(t, "email", ve.Violations[0].Field)
	assert.Equal(t, 0, store.remoteCalls(), "no remote call on validation failure")
}

func TestController_Commit_Success(t *testing.T) {
	store := newMemStore(sampleItem())
	sess := &fakeSession{role: domain.RoleManager}
	c := NewInventoryController(store, sess, zerolog.Nop())
	_, err := c.Load(context.Background(), "inv-1")
	require.NoError(t, err)

	_, err = c.SetField("quantity", "99")
	require.NoError(t, err)

	committed, err := c.Commit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(99), committed.Quantity)
	assert.Equal(t, 1, store.updates)
	assert.Contains(t, sess.recorded(), "update")

	stored, _ := store.Get(context.Background(), "inv-1")
	assert.Equal(t, int64(99), stored.Quantity)
}

func TestController_Commit_CreatesWhenNoID(t *testing.T) {
	store := newMemStore[domain.InventoryItem]()
	sess := &fakeSession{role: domain.RoleManager}
	c := NewInventoryController(store, sess, zerolog.Nop())
	c.Begin(domain.InventoryItem{ProductName: "New Widget", Quantity: 1, UnitPriceCents: 500})

	_, err := c.Commit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, store.creates)
	assert.Equal(t, 0, store.updates)
	assert.Contains(t, sess.recorded(), "create")
}

func TestController_Commit_RemoteFailureKeepsWorkingCopy(t *testing.T) {
	store := newMemStore(sampleItem())
	store.updateErr = &domain.RemoteError{Op: "update", Retryable: true, Err: errors.New("connection refused")}
	sess := &fakeSession{role: domain.RoleManager}
	c := NewInventoryController(store, sess, zerolog.Nop())
	_, err := c.Load(context.Background(), "inv-1")
	require.NoError(t, err)
	_, err = c.SetField("quantity", "5")
	require.NoError(t, err)

	_, err = c.Commit(context.Background())
	var re *domain.RemoteError
	require.ErrorAs(t, err, &re)
	assert.True(t, re.Retryable)

	working, ok := c.Working()
	require.True(t, ok)
	assert.Equal(t, int64(5), working.Quantity, "edit survives the failed commit")

	// retrying the same commit succeeds once the store recovers
	store.updateErr = nil
	committed, err := c.Commit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), committed.Quantity)
}

func TestController_Commit_SingleFlight(t *testing.T) {
	store := newMemStore(sampleItem())
	release := make(chan struct{})
	store.updateHook = func() { <-release }
	sess := &fakeSession{role: domain.RoleManager}
	c := NewInventoryController(store, sess, zerolog.Nop())
	_, err := c.Load(context.Background(), "inv-1")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := c.Commit(context.Background())
		done <- err
	}()

	require.Eventually(t, c.Pending, time.Second, time.Millisecond)

	_, err = c.Commit(context.Background())
	require.ErrorIs(t, err, domain.ErrCommitInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, c.Pending())
	assert.Equal(t, 1, store.updates, "second commit must not reach the store")
}

func TestController_Load_StaleResultDiscarded(t *testing.T) {
	first := sampleItem()
	second := sampleItem()
	second.ID = "inv-2"
	second.ProductName = "SSD 500GB"
	store := newMemStore(first, second)

	release := make(chan struct{})
	store.getHook = func(id string) {
		if id == "inv-1" {
			<-release
		}
	}

	sess := &fakeSession{role: domain.RoleUser}
	c := NewInventoryController(store, sess, zerolog.Nop())

	done := make(chan error, 1)
	go func() {
		_, err := c.Load(context.Background(), "inv-1")
		done <- err
	}()

	// second load initiated while the first is still in flight
	time.Sleep(10 * time.Millisecond)
	rec, err := c.Load(context.Background(), "inv-2")
	require.NoError(t, err)
	assert.Equal(t, "SSD 500GB", rec.ProductName)

	close(release)
	require.ErrorIs(t, <-done, ErrLoadSuperseded)

	working, ok := c.Working()
	require.True(t, ok)
	assert.Equal(t, "inv-2", working.ID, "state reflects the last initiated load")
}

func TestController_Cancel_DiscardsInFlightLoad(t *testing.T) {
	store := newMemStore(sampleItem())
	release := make(chan struct{})
	store.getHook = func(string) { <-release }

	c := NewInventoryController(store, &fakeSession{role: domain.RoleUser}, zerolog.Nop())

	done := make(chan error, 1)
	go func() {
		_, err := c.Load(context.Background(), "inv-1")
		done <- err
	}()

	time.Sleep(10 * time.Millisecond)
	c.Cancel()
	close(release)

	require.ErrorIs(t, <-done, ErrLoadSuperseded)
	_, ok := c.Working()
	assert.False(t, ok, "cancelled load must not establish a working copy")
}

func TestController_Delete(t *testing.T) {
	store := newMemStore(sampleItem())
	sess := &fakeSession{role: domain.RoleUser}
	c := NewInventoryController(store, sess, zerolog.Nop())
	_, err := c.LoadList(context.Background())
	require.NoError(t, err)

	err = c.Delete(context.Background(), "inv-1")
	require.ErrorIs(t, err, domain.ErrPermissionDenied)
	assert.Equal(t, 0, store.deletes, "permission failure must not reach the store")

	sess.role = domain.RoleManager
	err = c.Delete(context.Background(), "inv-1")
	require.NoError(t, err)
	assert.Empty(t, c.Records(), "deleted record leaves the local projection")
	assert.Contains(t, sess.recorded(), "delete")
}

func TestParseCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"89.99", 8999, true},
		{"120", 12000, true},
		{"0.5", 50, true},
		{"-3.50", -350, true},
		{".25", 25, true},
		{"1.999", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := parseCents(tc.in)
		if tc.ok {
			require.NoError(t, err, "parseCents(%q)", tc.in)
			assert.Equal(t, tc.want, got, "parseCents(%q)", tc.in)
		} else {
			assert.Error(t, err, "parseCents(%q)", tc.in)
		}
	}
}
