// Package search decides which clinic records match a free-text query.
//
// Each record type has a declarative Config. The same Config yields a SQL
// predicate for PostgreSQL (pg_trgm plus full-text search) and an in-process
// matcher with the same semantics for the memory store.
package search

import (
	"math"
	"strconv"
	"strings"
)

// Field is one searchable value. SQL is the expression evaluated by
// PostgreSQL and Value its in-process equivalent. Value reports false when
// the expression cannot be computed for a record (missing reference,
// out-of-range day, unset time); such a field contributes nothing.
type Field[T any] struct {
	SQL   string
	Value func(*T) (string, bool)
}

// Score includes a record when the greatest trigram similarity across Fields
// exceeds Threshold.
type Score[T any] struct {
	Fields    []Field[T]
	Threshold float64
}

// Numeric includes a record when the field equals the query parsed as a
// number.
type Numeric[T any] struct {
	SQL   string
	Value func(*T) (float64, bool)
}

// Config describes how one record type is searched. A record matches when
// any clause matches.
type Config[T any] struct {
	// Document fields feed the full-text clause.
	Document []Field[T]
	Scores   []Score[T]
	// Contains fields match case-insensitive substrings of the query.
	Contains []Field[T]
	Numeric  []Numeric[T]
}

// Normalize trims q. An empty result means "no filter".
func Normalize(q string) string {
	return strings.TrimSpace(q)
}

// ParseNumber reads q as a decimal number, accepting a comma as the decimal
// separator.
func ParseNumber(q string) (float64, bool) {
	q = strings.ReplaceAll(Normalize(q), ",", ".")
	if q == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(q, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Match reports whether rec satisfies q. An empty query matches everything.
func (c Config[T]) Match(rec *T, q string) bool {
	q = Normalize(q)
	if q == "" {
		return true
	}

	if len(c.Document) > 0 && matchDocument(values(rec, c.Document), q) {
		return true
	}

	for _, s := range c.Scores {
		best, ok := 0.0, false
		for _, f := range s.Fields {
			v, has := f.Value(rec)
			if !has {
				continue
			}
			best, ok = math.Max(best, Similarity(v, q)), true
		}
		if ok && best > s.Threshold {
			return true
		}
	}

	needle := strings.ToLower(q)
	for _, f := range c.Contains {
		if v, ok := f.Value(rec); ok && strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}

	if n, ok := ParseNumber(q); ok {
		for _, f := range c.Numeric {
			if v, has := f.Value(rec); has && v == n {
				return true
			}
		}
	}

	return false
}

// Filter keeps the items matching q, preserving their order.
func (c Config[T]) Filter(items []T, q string) []T {
	if Normalize(q) == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for i := range items {
		if c.Match(&items[i], q) {
			out = append(out, items[i])
		}
	}
	return out
}

func values[T any](rec *T, fields []Field[T]) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if v, ok := f.Value(rec); ok {
			out = append(out, v)
		}
	}
	return out
}
