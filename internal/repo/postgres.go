package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/lib/pq"
)

// PostgreSQL error codes mapped onto repository errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type pgRepo[T any] struct {
	drv  *entsql.Driver
	desc *Descriptor[T]
}

// NewPostgres returns a Repository backed by the given ent SQL driver.
func NewPostgres[T any](drv *entsql.Driver, desc *Descriptor[T]) Repository[T] {
	return &pgRepo[T]{drv: drv, desc: desc}
}

func (r *pgRepo[T]) builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.Postgres)
}

// selector selects the table's columns plus the display columns of its
// references. Referenced tables are aliased to their own names because the
// search expressions address them that way.
func (r *pgRepo[T]) selector() *entsql.Selector {
	b := r.builder()
	t := b.Table(r.desc.Table)
	s := b.Select(t.Columns(append([]string{"id"}, r.desc.Columns...)...)...).From(t)
	for _, ref := range r.desc.Refs {
		if ref.Display == "" {
			continue
		}
		name := tableOf[ref.Target]
		j := b.Table(name).As(name)
		s.LeftJoin(j).On(t.C(ref.Column), j.C("id"))
		s.AppendSelectAs(j.C(ref.Display), ref.As)
	}
	if r.desc.NewestFirst {
		s.OrderBy(entsql.Desc(t.C("id")))
	} else {
		s.OrderBy(entsql.Asc(t.C("id")))
	}
	return s
}

func (r *pgRepo[T]) query(ctx context.Context, s *entsql.Selector) ([]T, error) {
	query, args := s.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query %s: %w", r.desc.Table, err)
	}
	defer rows.Close()

	var out []T
	if err := entsql.ScanSlice(rows, &out); err != nil {
		return nil, fmt.Errorf("scan %s: %w", r.desc.Table, err)
	}
	return out, nil
}

func (r *pgRepo[T]) Create(ctx context.Context, rec *T) error {
	query, args := r.builder().
		Insert(r.desc.Table).
		Columns(r.desc.Columns...).
		Values(r.desc.Values(rec)...).
		Returning("id").
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return r.mapError("insert", err)
	}
	defer rows.Close()

	id, err := entsql.ScanInt(rows)
	if err != nil {
		return r.mapError("insert", err)
	}
	r.desc.SetID(rec, id)
	return nil
}

func (r *pgRepo[T]) Update(ctx context.Context, rec *T) error {
	u := r.builder().Update(r.desc.Table)
	for i, v := range r.desc.Values(rec) {
		u.Set(r.desc.Columns[i], v)
	}
	query, args := u.Where(entsql.EQ("id", r.desc.ID(rec))).Query()

	var res entsql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return r.mapError("update", err)
	}
	return affected(res)
}

func (r *pgRepo[T]) Delete(ctx context.Context, id int) error {
	query, args := r.builder().
		Delete(r.desc.Table).
		Where(entsql.EQ("id", id)).
		Query()

	var res entsql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return r.mapError("delete", err)
	}
	return affected(res)
}

func (r *pgRepo[T]) Get(ctx context.Context, id int) (*T, error) {
	s := r.selector()
	s.Where(entsql.EQ(s.C("id"), id))
	out, err := r.query(ctx, s)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return &out[0], nil
}

func (r *pgRepo[T]) List(ctx context.Context) ([]T, error) {
	return r.query(ctx, r.selector())
}

func (r *pgRepo[T]) Search(ctx context.Context, q string) ([]T, error) {
	s := r.selector()
	if p := r.desc.Search.Predicate(q); p != nil {
		s.Where(p)
	}
	return r.query(ctx, s)
}

func (r *pgRepo[T]) Exists(ctx context.Context, id int) (bool, error) {
	return r.exists(ctx, entsql.EQ("id", id))
}

func (r *pgRepo[T]) ExistsWith(ctx context.Context, column string, value any, excludeID int) (bool, error) {
	if !r.desc.hasColumn(column) {
		return false, fmt.Errorf("%s: unknown column %q", r.desc.Table, column)
	}
	return r.exists(ctx, entsql.And(entsql.EQ(column, value), entsql.NEQ("id", excludeID)))
}

func (r *pgRepo[T]) exists(ctx context.Context, p *entsql.Predicate) (bool, error) {
	query, args := r.builder().
		Select("id").
		From(r.builder().Table(r.desc.Table)).
		Where(p).
		Limit(1).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return false, fmt.Errorf("query %s: %w", r.desc.Table, err)
	}
	defer rows.Close()

	found := rows.Next()
	return found, rows.Err()
}

// mapError translates constraint violations into repository errors.
func (r *pgRepo[T]) mapError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgUniqueViolation:
			return &DuplicateError{Field: r.uniqueField(pqErr.Constraint)}
		case pgForeignKeyViolation:
			return fmt.Errorf("%s %s: %w", op, r.desc.Table, ErrReference)
		}
	}
	return fmt.Errorf("%s %s: %w", op, r.desc.Table, err)
}

func (r *pgRepo[T]) uniqueField(constraint string) string {
	for _, col := range r.desc.Unique {
		if strings.Contains(constraint, col) {
			return col
		}
	}
	if len(r.desc.Unique) > 0 {
		return r.desc.Unique[0]
	}
	return constraint
}

func affected(res entsql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
