package search

import (
	"strconv"
	"strings"

	"entgo.io/ent/dialect/sql"
)

// Predicate renders the query as a WHERE clause. It returns nil for an empty
// query so callers can skip filtering.
//
// Similarity of a NULL expression is NULL, which GREATEST ignores and a
// comparison treats as not matching, so derived values that cannot be
// computed drop out the same way they do in Match.
func (c Config[T]) Predicate(q string) *sql.Predicate {
	q = Normalize(q)
	if q == "" {
		return nil
	}

	var preds []*sql.Predicate

	if len(c.Document) > 0 {
		preds = append(preds, sql.P(func(b *sql.Builder) {
			b.WriteString("to_tsvector('simple', ")
			for i, f := range c.Document {
				if i > 0 {
					b.WriteString(" || ' ' || ")
				}
				b.WriteString("coalesce(").WriteString(f.SQL).WriteString(", '')")
			}
			b.WriteString(") @@ plainto_tsquery('simple', ").Arg(q).WriteString(")")
		}))
	}

	for _, s := range c.Scores {
		if len(s.Fields) == 0 {
			continue
		}
		preds = append(preds, sql.P(func(b *sql.Builder) {
			if len(s.Fields) > 1 {
				b.WriteString("GREATEST(")
			}
			for i, f := range s.Fields {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString("similarity(").WriteString(f.SQL).WriteString(", ").Arg(q).WriteString(")")
			}
			if len(s.Fields) > 1 {
				b.WriteString(")")
			}
			b.WriteString(" > ").WriteString(strconv.FormatFloat(s.Threshold, 'f', -1, 64))
		}))
	}

	for _, f := range c.Contains {
		preds = append(preds, sql.P(func(b *sql.Builder) {
			b.WriteString(f.SQL).WriteString(" ILIKE ").Arg("%" + escapeLike(q) + "%")
		}))
	}

	if n, ok := ParseNumber(q); ok {
		for _, f := range c.Numeric {
			preds = append(preds, sql.P(func(b *sql.Builder) {
				b.WriteString(f.SQL).WriteString(" = ").Arg(n)
			}))
		}
	}

	switch len(preds) {
	case 0:
		return sql.False()
	case 1:
		return preds[0]
	default:
		return sql.Or(preds...)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
