// Package table implements the generic CRUD orchestrator.  A Table owns the
// canonical in-memory collection of loaded records for one entity kind and
// mediates every create, view, edit and delete through an edit session, the
// entity's repository, and the optional conflict and cascade hooks supplied
// at construction.
package table

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/avelik/schedesk/internal/bus"
	"github.com/avelik/schedesk/internal/form"
	"github.com/avelik/schedesk/internal/model"
	"github.com/avelik/schedesk/internal/repository"
)

// ErrSessionOpen is returned when a second edit session is requested while
// one is already open on the table.  At most one session exists per table.
var ErrSessionOpen = errors.New("table: an edit session is already open")

// ErrNotFound is returned when a write affected no rows.
var ErrNotFound = errors.New("table: record not found")

// Filter narrows a select query; see repository.Filter. A nil Filter
// selects everything.
type Filter = repository.Filter

// Repository is the per-entity persistence contract.  Insert returns the
// generated id (zero means the insert did not take effect); Update and
// Delete return the affected row count.
type Repository[T model.Model[T]] interface {
	Select(ctx context.Context, f *Filter) ([]T, error)
	Insert(ctx context.Context, rec T) (uint64, error)
	Update(ctx context.Context, rec T) (int64, error)
	Delete(ctx context.Context, id uint64) (int64, error)
}

// Config bundles the capabilities a Table needs for its entity kind.
// CanPersist, DeleteDependencies, Bus and DeletedEvent are optional.
type Config[T model.Model[T]] struct {
	Repo      Repository[T]
	Validator *model.Validator
	// New returns a blank record for Create mode.
	New func() T
	// CanPersist is the conflict hook, re-executed before every insert or
	// update.  A non-nil error blocks the write and keeps the session open.
	CanPersist func(ctx context.Context, rec T) error
	// DeleteDependencies removes dependent records before a delete.  A
	// non-nil error aborts the parent delete.
	DeleteDependencies func(ctx context.Context, rec T) error
	// Bus and DeletedEvent wire cascade invalidation: DeletedEvent is
	// published after each confirmed delete.
	Bus          *bus.Bus
	DeletedEvent bus.Event
}

// Table holds the canonical ordered collection for one entity kind.  Order
// is load order; edits merge in place and never re-sort.  Tables are shared
// across request goroutines; mu guards the collection, the active filter
// and the single-flight session slot.
type Table[T model.Model[T]] struct {
	cfg Config[T]

	mu      sync.Mutex
	records []T
	session *form.Session[T]
	filter  *Filter
}

// New constructs a Table from its capability bundle.
func New[T model.Model[T]](cfg Config[T]) *Table[T] {
	return &Table[T]{cfg: cfg}
}

// Records returns a snapshot of the canonical collection in load order.
// The slice is the caller's to iterate; the records themselves are shared.
func (t *Table[T]) Records() []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]T, len(t.records))
	copy(out, t.records)
	return out
}

// Get returns the loaded record with the given id, or the zero value.
func (t *Table[T]) Get(id uint64) T {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, r := range t.records {
		if r.RecordID() == id {
			return r
		}
	}
	var zero T
	return zero
}

// SetFilter replaces the active filter.  It applies on the next Load and
// stays active across reloads until replaced or cleared with nil.
func (t *Table[T]) SetFilter(f *Filter) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.filter = f
}

// Filter returns the currently active filter, nil when none.
func (t *Table[T]) Filter() *Filter {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.filter
}

// Load clears the collection and repopulates it from the repository using
// the currently active filter.  It is idempotent and safe to call
// repeatedly, including from a cascade-invalidation handler.  The lock is
// held across the select so a reload cannot interleave with a commit.
func (t *Table[T]) Load(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	recs, err := t.cfg.Repo.Select(ctx, t.filter)
	if err != nil {
		return err
	}
	t.records = recs
	return nil
}

// SubscribeReload registers a bus handler that reloads the table whenever
// the given event is published.  Load errors are logged; the stale view
// remains until the next successful reload.
func (t *Table[T]) SubscribeReload(e bus.Event) {
	t.cfg.Bus.Subscribe(e, func() {
		if err := t.Load(context.Background()); err != nil {
			log.Printf("table: reload on %s failed: %v", e, err)
		}
	})
}

// HasOpenSession reports whether an edit session currently holds the
// single-flight guard.
func (t *Table[T]) HasOpenSession() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session != nil
}

// Add opens a Create-mode session over a blank record.  When the session
// commits, the conflict hook runs, the record is inserted, and on success
// the record (now carrying its generated id) is appended to the collection.
// An insert that reports a zero id is treated as failed and not appended.
func (t *Table[T]) Add(ctx context.Context, surface form.Surface) (*form.Session[T], error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session != nil {
		return nil, ErrSessionOpen
	}
	s := form.Open(form.Create, t.cfg.New(), surface, t.cfg.Validator, func(rec T) error {
		t.mu.Lock()
		defer t.mu.Unlock()
		if isZero(rec) { // cancelled
			t.session = nil
			return nil
		}
		if err := t.canPersist(ctx, rec); err != nil {
			return err
		}
		id, err := t.cfg.Repo.Insert(ctx, rec)
		if err != nil {
			log.Printf("table: insert failed: %v", err)
			return err
		}
		if id != 0 {
			rec.SetRecordID(id)
			t.records = append(t.records, rec)
		}
		t.session = nil
		return nil
	})
	t.session = s
	return s, nil
}

// View opens a Read-mode session over a copy of the record.  The surface is
// populated and disabled; there are no persistence side effects.
func (t *Table[T]) View(record T, surface form.Surface) (*form.Session[T], error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session != nil {
		return nil, ErrSessionOpen
	}
	s := form.Open(form.Read, record.Copy(), surface, t.cfg.Validator, func(T) error {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.session = nil
		return nil
	})
	t.session = s
	return s, nil
}

// Edit opens an Update-mode session over a defensive copy of the record.
// When the session commits, the conflict hook runs, the row is updated, and
// on a confirmed update every attribute is merged back into the original
// collection row so other live references observe the change.
func (t *Table[T]) Edit(ctx context.Context, record T, surface form.Surface) (*form.Session[T], error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session != nil {
		return nil, ErrSessionOpen
	}
	s := form.Open(form.Update, record.Copy(), surface, t.cfg.Validator, func(updated T) error {
		t.mu.Lock()
		defer t.mu.Unlock()
		if isZero(updated) { // cancelled
			t.session = nil
			return nil
		}
		if err := t.canPersist(ctx, updated); err != nil {
			return err
		}
		n, err := t.cfg.Repo.Update(ctx, updated)
		if err != nil {
			log.Printf("table: update failed: %v", err)
			return err
		}
		if n == 1 {
			record.ApplyChanges(updated)
		}
		t.session = nil
		return nil
	})
	t.session = s
	return s, nil
}

// Delete removes the record: dependencies first via the cascade hook, then
// the row itself.  On a confirmed deletion the record's id is reset to
// zero, the record leaves the collection, and the table's deletion event is
// published.  A delete that affects no rows returns ErrNotFound.
func (t *Table[T]) Delete(ctx context.Context, record T) error {
	if err := t.deleteRecord(ctx, record); err != nil {
		return err
	}
	// Published after the lock is released so a subscriber is free to
	// reload this table.
	if t.cfg.Bus != nil && t.cfg.DeletedEvent != "" {
		t.cfg.Bus.Publish(t.cfg.DeletedEvent)
	}
	return nil
}

func (t *Table[T]) deleteRecord(ctx context.Context, record T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cfg.DeleteDependencies != nil {
		if err := t.cfg.DeleteDependencies(ctx, record); err != nil {
			log.Printf("table: cascade delete failed: %v", err)
			return err
		}
	}
	n, err := t.cfg.Repo.Delete(ctx, record.RecordID())
	if err != nil {
		log.Printf("table: delete failed: %v", err)
		return err
	}
	if n != 1 {
		return ErrNotFound
	}
	record.SetRecordID(0)
	t.remove(record)
	return nil
}

func (t *Table[T]) canPersist(ctx context.Context, rec T) error {
	if t.cfg.CanPersist == nil {
		return nil
	}
	return t.cfg.CanPersist(ctx, rec)
}

func (t *Table[T]) remove(record T) {
	for i, r := range t.records {
		if any(r) == any(record) {
			t.records = append(t.records[:i], t.records[i+1:]...)
			return
		}
	}
}

// isZero reports whether rec is the zero value, i.e. a nil record pointer
// handed to a completion callback by Cancel.
func isZero[T model.Model[T]](rec T) bool {
	var zero T
	return any(rec) == any(zero)
}
