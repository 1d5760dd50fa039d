// Package resource implements the create, edit, delete and search workflow
// shared by every clinic record type.
package resource

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/Alijeyrad/stomatology_backend/internal/entity"
	"github.com/Alijeyrad/stomatology_backend/internal/repo"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

// FormField describes one input of an add or edit form.
type FormField struct {
	Name       string          `json:"name"`
	Type       string          `json:"type"` // text | number | date | time | select
	Required   bool            `json:"required"`
	EmptyLabel string          `json:"empty_label,omitempty"`
	Choices    []entity.Choice `json:"choices,omitempty"`

	// ChoicesFrom fills Choices with every record of that kind.
	ChoicesFrom entity.Kind `json:"-"`
}

// Form is the descriptor returned for GET add and GET edit.
type Form struct {
	Kind   entity.Kind `json:"kind"`
	Fields []FormField `json:"fields"`
	Record any         `json:"record,omitempty"`
}

// RefRule validates a reference field.
type RefRule[T any] struct {
	Field   string
	Target  entity.Kind
	Get     func(*T) *int
	Message string // shown when the reference is missing
}

// UniqueRule rejects a value already held by another record of the same type.
type UniqueRule[T any] struct {
	Field   string
	Value   func(*T) any
	Message string
}

// Rules are the per-type hooks the generic workflow runs before persisting.
type Rules[T any] struct {
	// Normalize cleans raw input before validation.
	Normalize func(*T)
	// Check reports failures the struct tags cannot express.
	Check func(*T) map[string]string
	Refs  []RefRule[T]
	// Finalize rewrites validated values into their stored form.
	Finalize func(*T)
	Unique   []UniqueRule[T]
	Form     []FormField
}

// Lookup resolves records across types.
type Lookup interface {
	Exists(ctx context.Context, kind entity.Kind, id int) (bool, error)
	Choices(ctx context.Context, kind entity.Kind) ([]entity.Choice, error)
}

// Record is the pointer form of a clinic record type.
type Record[T any] interface {
	*T
	entity.Record
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service[T any] interface {
	Kind() entity.Kind
	// Search returns every record matching q in default order. An empty q
	// lists everything.
	Search(ctx context.Context, q string) ([]T, error)
	Get(ctx context.Context, id int) (*T, error)
	Create(ctx context.Context, rec *T) error
	// Update replaces the record with the given id.
	Update(ctx context.Context, id int, rec *T) error
	Delete(ctx context.Context, id int) error
	// Form describes the inputs for rec, or for a new record when rec is nil.
	Form(ctx context.Context, rec *T) (*Form, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type service[T any, P Record[T]] struct {
	kind   entity.Kind
	store  repo.Repository[T]
	lookup Lookup
	rules  *Rules[T]
}

func New[T any, P Record[T]](kind entity.Kind, store repo.Repository[T], lookup Lookup, rules *Rules[T]) Service[T] {
	if rules == nil {
		rules = &Rules[T]{}
	}
	return &service[T, P]{kind: kind, store: store, lookup: lookup, rules: rules}
}

func (s *service[T, P]) Kind() entity.Kind { return s.kind }

func (s *service[T, P]) Search(ctx context.Context, q string) ([]T, error) {
	items, err := s.store.Search(ctx, q)
	if err != nil {
		return nil, &StoreError{Op: fmt.Sprintf("search %s", s.kind), Err: err}
	}
	return lo.UniqBy(items, func(item T) int { return P(&item).GetID() }), nil
}

func (s *service[T, P]) Get(ctx context.Context, id int) (*T, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.mapError("get", err)
	}
	return rec, nil
}

func (s *service[T, P]) Create(ctx context.Context, rec *T) error {
	P(rec).SetID(0)
	if err := s.validate(ctx, rec, 0); err != nil {
		return err
	}
	if err := s.store.Create(ctx, rec); err != nil {
		return s.mapError("create", err)
	}
	return nil
}

func (s *service[T, P]) Update(ctx context.Context, id int, rec *T) error {
	ok, err := s.store.Exists(ctx, id)
	if err != nil {
		return s.mapError("update", err)
	}
	if !ok {
		return ErrNotFound
	}

	P(rec).SetID(id)
	if err := s.validate(ctx, rec, id); err != nil {
		return err
	}
	if err := s.store.Update(ctx, rec); err != nil {
		return s.mapError("update", err)
	}
	return nil
}

func (s *service[T, P]) Delete(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return s.mapError("delete", err)
	}
	return nil
}

func (s *service[T, P]) Form(ctx context.Context, rec *T) (*Form, error) {
	fields := make([]FormField, len(s.rules.Form))
	copy(fields, s.rules.Form)

	for i, f := range fields {
		if f.ChoicesFrom == "" {
			continue
		}
		choices, err := s.lookup.Choices(ctx, f.ChoicesFrom)
		if err != nil {
			return nil, &StoreError{Op: fmt.Sprintf("choices %s", f.ChoicesFrom), Err: err}
		}
		fields[i].Choices = choices
	}

	form := &Form{Kind: s.kind, Fields: fields}
	if rec != nil {
		form.Record = rec
	}
	return form, nil
}

// validate runs every rule and reports all field failures at once. Nothing
// is written when it fails.
func (s *service[T, P]) validate(ctx context.Context, rec *T, selfID int) error {
	r := s.rules
	if r.Normalize != nil {
		r.Normalize(rec)
	}

	fields := validateFields(rec)
	if r.Check != nil {
		for name, msg := range r.Check(rec) {
			if _, ok := fields[name]; !ok {
				fields[name] = msg
			}
		}
	}

	for _, ref := range r.Refs {
		id := ref.Get(rec)
		if id == nil {
			fields[ref.Field] = ref.Message
			continue
		}
		ok, err := s.lookup.Exists(ctx, ref.Target, *id)
		if err != nil {
			return &StoreError{Op: fmt.Sprintf("lookup %s", ref.Target), Err: err}
		}
		if !ok {
			fields[ref.Field] = msgInvalidChoice
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	if r.Finalize != nil {
		r.Finalize(rec)
	}

	for _, u := range r.Unique {
		taken, err := s.store.ExistsWith(ctx, u.Field, u.Value(rec), selfID)
		if err != nil {
			return &StoreError{Op: fmt.Sprintf("check %s", u.Field), Err: err}
		}
		if taken {
			return &DuplicateError{Field: u.Field, Message: u.Message}
		}
	}
	return nil
}

func (s *service[T, P]) mapError(op string, err error) error {
	var dup *repo.DuplicateError
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return ErrNotFound
	case errors.As(err, &dup):
		return &DuplicateError{Field: dup.Field, Message: s.uniqueMessage(dup.Field)}
	case errors.Is(err, repo.ErrReference):
		return &ValidationError{Fields: map[string]string{"__all__": msgInvalidChoice}}
	}
	return &StoreError{Op: fmt.Sprintf("%s %s", op, s.kind), Err: err}
}

func (s *service[T, P]) uniqueMessage(field string) string {
	for _, u := range s.rules.Unique {
		if u.Field == field {
			return u.Message
		}
	}
	return "Значение уже используется"
}
