package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/supplyline/scm-console/internal/core/domain"
	"github.com/supplyline/scm-console/internal/core/ports"
)

// ErrLoadSuperseded is returned to a load whose result arrived after a newer
// load (or a cancellation) replaced it. The stale result is discarded.
var ErrLoadSuperseded = errors.New("load superseded")

// Session is the slice of the session manager a controller needs: permission
// checks before each gated edit, and the audit trail for mutating actions.
type Session interface {
	HasPermission(required domain.Role) bool
	RecordActivity(action string, details map[string]any)
}

// Record is any editable record type.
type Record interface {
	RecordID() string
}

// cloneable ties a record type to its deep-copy, so working copies never
// alias committed state.
type cloneable[T any] interface {
	Record
	CloneRecord() T
}

// Controller holds one working copy of a record and applies edits to it.
// All operations are safe for concurrent use, but the intended discipline is
// a single caller driving edits sequentially; the locking exists to enforce
// single-flight commits and stale-load discarding.
type Controller[T cloneable[T]] struct {
	entity string
	store  ports.RecordStore[T]
	sess   Session
	fields map[string]FieldSpec[T]
	extra  func(*T) []domain.FieldViolation
	log    zerolog.Logger

	mu         sync.Mutex
	loaded     bool
	working    T
	committed  T
	invalid    map[string]string // raw input that failed coercion, keyed by field
	records    []T               // local list projection
	loadSeq    uint64
	committing bool
}

// New builds a controller for one record type. extra may be nil; when set it
// contributes record-level violations on top of the per-field checks.
func New[T cloneable[T]](entity string, store ports.RecordStore[T], sess Session, fields []FieldSpec[T], extra func(*T) []domain.FieldViolation, log zerolog.Logger) *Controller[T] {
	byName := make(map[string]FieldSpec[T], len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}
	return &Controller[T]{
		entity:  entity,
		store:   store,
		sess:    sess,
		fields:  byName,
		extra:   extra,
		invalid: make(map[string]string),
		log:     log,
	}
}

// NewInventoryController builds a controller for inventory items.
func NewInventoryController(store ports.RecordStore[domain.InventoryItem], sess Session, log zerolog.Logger) *Controller[domain.InventoryItem] {
	return New("inventory", store, sess, InventoryFields(), nil, log)
}

// NewSupplierController builds a controller for suppliers.
func NewSupplierController(store ports.RecordStore[domain.Supplier], sess Session, log zerolog.Logger) *Controller[domain.Supplier] {
	return New("supplier", store, sess, SupplierFields(), supplierEmailViolation, log)
}

// Load fetches the record and establishes it as the working copy. If another
// Load or Cancel happens while the fetch is in flight, the result is
// discarded and ErrLoadSuperseded is returned; the controller state then
// reflects the last initiated load, never a race winner.
func (c *Controller[T]) Load(ctx context.Context, id string) (T, error) {
	c.mu.Lock()
	c.loadSeq++
	seq := c.loadSeq
	c.mu.Unlock()

	var zero T
	rec, err := c.store.Get(ctx, id)

	c.mu.Lock()
	if seq != c.loadSeq {
		c.mu.Unlock()
		return zero, ErrLoadSuperseded
	}
	if err != nil {
		c.mu.Unlock()
		return zero, fmt.Errorf("load %s %s: %w", c.entity, id, err)
	}
	c.committed = rec.CloneRecord()
	c.working = rec.CloneRecord()
	c.loaded = true
	c.invalid = make(map[string]string)
	c.mu.Unlock()

	c.sess.RecordActivity("view", map[string]any{"entity": c.entity, "id": id})
	return rec.CloneRecord(), nil
}

// Cancel discards the result of any in-flight load, e.g. when the caller
// navigates away from the record view.
func (c *Controller[T]) Cancel() {
	c.mu.Lock()
	c.loadSeq++
	c.mu.Unlock()
}

// Begin establishes rec as a fresh working copy without a remote fetch.
// Commit will create rather than update when the record carries no id.
func (c *Controller[T]) Begin(rec T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadSeq++
	c.committed = rec.CloneRecord()
	c.working = rec.CloneRecord()
	c.loaded = true
	c.invalid = make(map[string]string)
}

// Working returns a copy of the current working copy.
func (c *Controller[T]) Working() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		var zero T
		return zero, false
	}
	return c.working.CloneRecord(), true
}

// Pending reports whether a commit is in flight.
func (c *Controller[T]) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.committing
}

// SetField applies one edit to the working copy. The permission gate runs
// first: an insufficient role leaves the working copy untouched and returns
// domain.ErrPermissionDenied. Raw input that fails numeric coercion is staged
// and reported by Validate, so typing stays responsive; the working copy
// keeps its previous value until valid input arrives.
func (c *Controller[T]) SetField(name, raw string) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	if !c.loaded {
		return zero, domain.ErrNoWorkingCopy
	}

	spec, ok := c.fields[name]
	if !ok {
		return c.working.CloneRecord(), fmt.Errorf("unknown field %q on %s", name, c.entity)
	}
	if !c.sess.HasPermission(spec.MinRole) {
		return c.working.CloneRecord(), fmt.Errorf("edit %s.%s: %w", c.entity, name, domain.ErrPermissionDenied)
	}

	v, err := coerce(spec.Kind, raw)
	if err != nil {
		c.invalid[name] = raw
		return c.working.CloneRecord(), nil
	}

	delete(c.invalid, name)
	spec.Set(&c.working, v)
	return c.working.CloneRecord(), nil
}

// Validate returns every violation on the working copy: staged inputs that
// never coerced, missing required fields, negative numerics, and the
// record-level rules. An empty slice means the copy is fit to commit.
func (c *Controller[T]) Validate() []domain.FieldViolation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateLocked()
}

func (c *Controller[T]) validateLocked() []domain.FieldViolation {
	var out []domain.FieldViolation
	for name, raw := range c.invalid {
		out = append(out, domain.FieldViolation{Field: name, Message: fmt.Sprintf("invalid value %q", raw)})
	}
	for _, spec := range c.fields {
		if _, staged := c.invalid[spec.Name]; staged {
			continue
		}
		if v := violationFor(spec, &c.working); v != nil {
			out = append(out, *v)
		}
	}
	if c.extra != nil {
		out = append(out, c.extra(&c.working)...)
	}
	return out
}

// Commit validates the working copy and persists it. On any violation it
// fails without contacting the store. Only one commit may be in flight at a
// time; a second call while one is pending fails with ErrCommitInFlight.
// On remote failure the working copy is untouched so the caller can retry.
func (c *Controller[T]) Commit(ctx context.Context) (T, error) {
	var zero T

	c.mu.Lock()
	if !c.loaded {
		c.mu.Unlock()
		return zero, domain.ErrNoWorkingCopy
	}
	if c.committing {
		c.mu.Unlock()
		return zero, domain.ErrCommitInFlight
	}
	if violations := c.validateLocked(); len(violations) > 0 {
		c.mu.Unlock()
		return zero, &domain.ValidationError{Violations: violations}
	}
	c.committing = true
	snapshot := c.working.CloneRecord()
	creating := snapshot.RecordID() == ""
	c.mu.Unlock()

	var persisted T
	var err error
	if creating {
		persisted, err = c.store.Create(ctx, snapshot)
	} else {
		persisted, err = c.store.Update(ctx, snapshot.RecordID(), snapshot)
	}

	c.mu.Lock()
	c.committing = false
	if err != nil {
		c.mu.Unlock()
		c.log.Error().Err(err).Str("entity", c.entity).Msg("commit failed")
		return zero, fmt.Errorf("commit %s: %w", c.entity, err)
	}
	c.committed = persisted.CloneRecord()
	c.working = persisted.CloneRecord()
	c.mu.Unlock()

	action := "update"
	if creating {
		action = "create"
	}
	c.sess.RecordActivity(action, map[string]any{"entity": c.entity, "id": persisted.RecordID()})
	return persisted.CloneRecord(), nil
}

// LoadList fetches the list projection for this record type.
func (c *Controller[T]) LoadList(ctx context.Context) ([]T, error) {
	records, err := c.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.entity, err)
	}
	c.mu.Lock()
	c.records = records
	c.mu.Unlock()
	return records, nil
}

// Records returns the cached list projection.
func (c *Controller[T]) Records() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.records))
	copy(out, c.records)
	return out
}

// Delete removes a record. Deletion is a manager-level action; the check runs
// before any remote call. On success the record leaves the local projection
// and the action is logged.
func (c *Controller[T]) Delete(ctx context.Context, id string) error {
	if !c.sess.HasPermission(domain.RoleManager) {
		return fmt.Errorf("delete %s %s: %w", c.entity, id, domain.ErrPermissionDenied)
	}
	if err := c.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete %s %s: %w", c.entity, id, err)
	}

	c.mu.Lock()
	kept := c.records[:0]
	for _, r := range c.records {
		if r.RecordID() != id {
			kept = append(kept, r)
		}
	}
	c.records = kept
	c.mu.Unlock()

	c.sess.RecordActivity("delete", map[string]any{"entity": c.entity, "id": id})
	return nil
}

// mutate applies fn to the working copy under the lock. Used by the order
// controller so a line item change and its recalculation are one atomic step.
func (c *Controller[T]) mutate(fn func(*T)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	if !c.loaded {
		return zero, domain.ErrNoWorkingCopy
	}
	fn(&c.working)
	return c.working.CloneRecord(), nil
}
