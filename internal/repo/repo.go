// Package repo persists clinic records. Every record type is described once
// by a Descriptor; the PostgreSQL and in-memory backends interpret the same
// descriptors.
package repo

import (
	"context"

	"github.com/Alijeyrad/stomatology_backend/internal/entity"
	"github.com/Alijeyrad/stomatology_backend/internal/search"
)

// Repository is the store for one record type.
type Repository[T any] interface {
	// Create inserts rec and sets its ID.
	Create(ctx context.Context, rec *T) error
	// Update overwrites every writable column of the row with rec's ID.
	Update(ctx context.Context, rec *T) error
	// Delete removes the row. References to it are cleared, never cascaded.
	Delete(ctx context.Context, id int) error
	Get(ctx context.Context, id int) (*T, error)
	// List returns all rows in the default order.
	List(ctx context.Context) ([]T, error)
	// Search returns the rows matching q in the default order. An empty q
	// behaves like List.
	Search(ctx context.Context, q string) ([]T, error)
	Exists(ctx context.Context, id int) (bool, error)
	// ExistsWith reports whether a row other than excludeID has column = value.
	ExistsWith(ctx context.Context, column string, value any, excludeID int) (bool, error)
}

// Ref is a nullable many-to-one reference column.
type Ref[T any] struct {
	Column string
	Target entity.Kind
	Get    func(*T) *int
	Set    func(*T, *int)

	// Display, when set, is the target column shown next to the reference,
	// selected under the alias As and stored with SetDisplay.
	Display    string
	As         string
	SetDisplay func(*T, *string)
}

// Descriptor maps a record type onto its table.
type Descriptor[T any] struct {
	Kind  entity.Kind
	Table string
	// Columns are the writable columns, excluding id.
	Columns []string
	// Values returns rec's values in Columns order.
	Values func(rec *T) []any
	ID     func(rec *T) int
	SetID  func(rec *T, id int)
	// Value returns a single column value; used for uniqueness checks and
	// display lookups by the memory backend.
	Value func(rec *T, column string) any

	Refs   []Ref[T]
	Unique []string
	// NewestFirst orders listings by descending id.
	NewestFirst bool
	Search      search.Config[T]
}

func (d *Descriptor[T]) isUnique(column string) bool {
	for _, c := range d.Unique {
		if c == column {
			return true
		}
	}
	return false
}

func (d *Descriptor[T]) hasColumn(column string) bool {
	if column == "id" {
		return true
	}
	for _, c := range d.Columns {
		if c == column {
			return true
		}
	}
	return false
}
