package repo

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/Alijeyrad/stomatology_backend/internal/entity"
)

// memTable is one record type inside a memDB. Rows are stored as *T behind
// any so that tables of different types can reach each other for display
// lookups and reference clearing.
type memTable struct {
	rows   map[int]any
	nextID int
	value  func(row any, column string) any
	// orphan clears every reference in row that points at (kind, id).
	orphan func(row any, kind entity.Kind, id int)
}

// memDB is an in-process store shared by all memory repositories of a
// Client. A single mutex guards every table so uniqueness checks and writes
// are atomic.
type memDB struct {
	mu     sync.RWMutex
	tables map[entity.Kind]*memTable
}

func newMemDB() *memDB {
	return &memDB{tables: make(map[entity.Kind]*memTable)}
}

// lookup returns column of row (kind, id). Callers hold db.mu.
func (db *memDB) lookup(kind entity.Kind, id int, column string) (any, bool) {
	t, ok := db.tables[kind]
	if !ok {
		return nil, false
	}
	row, ok := t.rows[id]
	if !ok {
		return nil, false
	}
	return t.value(row, column), true
}

type memRepo[T any] struct {
	db   *memDB
	desc *Descriptor[T]
}

// newMemory registers desc in db and returns its repository.
func newMemory[T any](db *memDB, desc *Descriptor[T]) Repository[T] {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.tables[desc.Kind] = &memTable{
		rows:  make(map[int]any),
		value: func(row any, column string) any { return desc.Value(row.(*T), column) },
		orphan: func(row any, kind entity.Kind, id int) {
			rec := row.(*T)
			for _, ref := range desc.Refs {
				if ref.Target != kind {
					continue
				}
				if cur := ref.Get(rec); cur != nil && *cur == id {
					ref.Set(rec, nil)
				}
			}
		},
	}
	return &memRepo[T]{db: db, desc: desc}
}

func (r *memRepo[T]) table() *memTable { return r.db.tables[r.desc.Kind] }

// stored returns a copy of rec without display values.
func (r *memRepo[T]) stored(rec *T) *T {
	cp := *rec
	for _, ref := range r.desc.Refs {
		if v := ref.Get(&cp); v != nil {
			id := *v
			ref.Set(&cp, &id)
		}
		if ref.SetDisplay != nil {
			ref.SetDisplay(&cp, nil)
		}
	}
	return &cp
}

// view returns a copy of row with display values resolved. Callers hold a
// read lock.
func (r *memRepo[T]) view(row *T) T {
	cp := *r.stored(row)
	for _, ref := range r.desc.Refs {
		if ref.SetDisplay == nil {
			continue
		}
		id := ref.Get(&cp)
		if id == nil {
			continue
		}
		if v, ok := r.db.lookup(ref.Target, *id, ref.Display); ok {
			if s, ok := v.(string); ok {
				ref.SetDisplay(&cp, &s)
			}
		}
	}
	return cp
}

// check enforces unique columns and reference targets. Callers hold the
// write lock.
func (r *memRepo[T]) check(rec *T) error {
	id := r.desc.ID(rec)
	for _, col := range r.desc.Unique {
		want := r.desc.Value(rec, col)
		for rowID, row := range r.table().rows {
			if rowID != id && r.desc.Value(row.(*T), col) == want {
				return &DuplicateError{Field: col}
			}
		}
	}
	for _, ref := range r.desc.Refs {
		target := ref.Get(rec)
		if target == nil {
			continue
		}
		if _, ok := r.db.lookup(ref.Target, *target, "id"); !ok {
			return fmt.Errorf("%s.%s=%d: %w", r.desc.Table, ref.Column, *target, ErrReference)
		}
	}
	return nil
}

func (r *memRepo[T]) Create(_ context.Context, rec *T) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	t := r.table()
	r.desc.SetID(rec, 0)
	if err := r.check(rec); err != nil {
		return err
	}
	t.nextID++
	r.desc.SetID(rec, t.nextID)
	t.rows[t.nextID] = r.stored(rec)
	return nil
}

func (r *memRepo[T]) Update(_ context.Context, rec *T) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	t := r.table()
	id := r.desc.ID(rec)
	if _, ok := t.rows[id]; !ok {
		return ErrNotFound
	}
	if err := r.check(rec); err != nil {
		return err
	}
	t.rows[id] = r.stored(rec)
	return nil
}

func (r *memRepo[T]) Delete(_ context.Context, id int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	t := r.table()
	if _, ok := t.rows[id]; !ok {
		return ErrNotFound
	}
	delete(t.rows, id)

	for _, other := range r.db.tables {
		for _, row := range other.rows {
			other.orphan(row, r.desc.Kind, id)
		}
	}
	return nil
}

func (r *memRepo[T]) Get(_ context.Context, id int) (*T, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	row, ok := r.table().rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := r.view(row.(*T))
	return &out, nil
}

func (r *memRepo[T]) List(_ context.Context) ([]T, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	t := r.table()
	ids := make([]int, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	if r.desc.NewestFirst {
		slices.Reverse(ids)
	}

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.view(t.rows[id].(*T)))
	}
	return out, nil
}

func (r *memRepo[T]) Search(ctx context.Context, q string) ([]T, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return r.desc.Search.Filter(all, q), nil
}

func (r *memRepo[T]) Exists(_ context.Context, id int) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	_, ok := r.table().rows[id]
	return ok, nil
}

func (r *memRepo[T]) ExistsWith(_ context.Context, column string, value any, excludeID int) (bool, error) {
	if !r.desc.hasColumn(column) {
		return false, fmt.Errorf("%s: unknown column %q", r.desc.Table, column)
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for id, row := range r.table().rows {
		if id != excludeID && r.desc.Value(row.(*T), column) == value {
			return true, nil
		}
	}
	return false, nil
}
