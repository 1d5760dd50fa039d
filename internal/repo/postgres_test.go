package repo

import (
	"errors"
	"strings"
	"testing"

	"github.com/lib/pq"
)

func TestPostgresSelector(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "schedule joins doctor",
			query: selectorQuery(ScheduleDescriptor),
			want: []string{
				`FROM "shedule"`,
				`LEFT JOIN "doctor" AS "doctor" ON "shedule"."doctor_id" = "doctor"."id"`,
				`"doctor"."full_name" AS "doctor_name"`,
				`ORDER BY "shedule"."id" ASC`,
			},
		},
		{
			name:  "reception joins patient and doctor",
			query: selectorQuery(ReceptionDescriptor),
			want: []string{
				`LEFT JOIN "patient" AS "patient"`,
				`LEFT JOIN "doctor" AS "doctor"`,
				`ORDER BY "reception"."id" DESC`,
			},
		},
		{
			name:  "service rendered joins service only",
			query: selectorQuery(ServiceRenderedDescriptor),
			want: []string{
				`"service"."service_name" AS "service_name"`,
				`"service_rendered"."number_reception_id"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, w := range tt.want {
				if !strings.Contains(tt.query, w) {
					t.Errorf("query %q does not contain %q", tt.query, w)
				}
			}
		})
	}

	if q := selectorQuery(ServiceRenderedDescriptor); strings.Contains(q, `JOIN "reception"`) {
		t.Errorf("reception reference has no display column and must not be joined: %q", q)
	}
}

func TestPostgresMapError(t *testing.T) {
	r := &pgRepo[struct{}]{desc: &Descriptor[struct{}]{Table: "doctor", Unique: []string{"phone_number"}}}

	err := r.mapError("insert", &pq.Error{Code: "23505", Constraint: "doctor_phone_number_key"})
	var dup *DuplicateError
	if !errors.As(err, &dup) || dup.Field != "phone_number" {
		t.Fatalf("unique violation mapped to %v", err)
	}

	err = r.mapError("insert", &pq.Error{Code: "23503"})
	if !errors.Is(err, ErrReference) {
		t.Fatalf("foreign key violation mapped to %v", err)
	}

	other := errors.New("connection reset")
	if err := r.mapError("insert", other); !errors.Is(err, other) {
		t.Fatalf("unrelated error lost: %v", err)
	}
}

func selectorQuery[T any](desc *Descriptor[T]) string {
	q, _ := (&pgRepo[T]{desc: desc}).selector().Query()
	return q
}
