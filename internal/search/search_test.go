package search

import (
	"slices"
	"strings"
	"testing"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql"

	"github.com/Alijeyrad/stomatology_backend/internal/entity"
)

func ptr[T any](v T) *T { return &v }

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{in: "5000", want: 5000, wantOK: true},
		{in: " 1250,5 ", want: 1250.5, wantOK: true},
		{in: "12.75", want: 12.75, wantOK: true},
		{in: "", wantOK: false},
		{in: "пломба", wantOK: false},
		{in: "NaN", wantOK: false},
		{in: "inf", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseNumber(tt.in)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("ParseNumber(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDoctorSearch(t *testing.T) {
	doctors := []entity.Doctor{
		{ID: 1, FullName: "Иванов Иван Иванович", PhoneNumber: "+79616448504", OfficeNumber: "101"},
		{ID: 2, FullName: "Петров Пётр Петрович", PhoneNumber: "+79031234567", OfficeNumber: "202"},
	}

	tests := []struct {
		q    string
		want []int
	}{
		{q: "", want: []int{1, 2}},
		{q: "   ", want: []int{1, 2}},
		{q: "Иванов", want: []int{1}},
		{q: "петро", want: []int{2}},
		{q: "202", want: []int{2}},
		{q: "+7903123", want: []int{2}},
		{q: "стоматолог", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			got := ids(Doctor.Filter(doctors, tt.q), func(d entity.Doctor) int { return d.ID })
			if !slices.Equal(got, tt.want) {
				t.Errorf("Filter(%q) = %v, want %v", tt.q, got, tt.want)
			}
		})
	}
}

func TestPatientContainment(t *testing.T) {
	patients := []entity.Patient{
		{ID: 1, FullName: "Сидоров Сидор Сидорович", PhoneNumber: "+79990001122", PatientAddress: "ул.Октябрьская д.15 кв.8"},
		{ID: 2, FullName: "Кузнецова Анна Сергеевна", PhoneNumber: "+79990003344", PatientAddress: "пр.Мира д.3"},
	}

	got := ids(Patient.Filter(patients, "ктябр"), func(p entity.Patient) int { return p.ID })
	if !slices.Equal(got, []int{1}) {
		t.Errorf("substring search = %v, want [1]", got)
	}

	got = ids(Patient.Filter(patients, "0003344"), func(p entity.Patient) int { return p.ID })
	if !slices.Equal(got, []int{2}) {
		t.Errorf("phone substring search = %v, want [2]", got)
	}
}

func TestServiceSearchByCost(t *testing.T) {
	services := []entity.Service{
		{ID: 1, ServiceName: "Пломба", Cost: 5000},
		{ID: 2, ServiceName: "Удаление зуба", Cost: 5000},
		{ID: 3, ServiceName: "Чистка", Cost: 1200},
	}

	got := ids(Service.Filter(services, "5000"), func(s entity.Service) int { return s.ID })
	if !slices.Equal(got, []int{1, 2}) {
		t.Errorf("cost search = %v, want [1 2]", got)
	}

	got = ids(Service.Filter(services, "пломбы"), func(s entity.Service) int { return s.ID })
	if !slices.Equal(got, []int{1}) {
		t.Errorf("fuzzy name search = %v, want [1]", got)
	}
}

func TestScheduleSearchDegrades(t *testing.T) {
	schedules := []entity.Schedule{
		{ID: 1, DayWeek: 3, DoctorName: ptr("Иванов Иван Иванович"), StartReception: entity.NewTimeOfDay(9, 0, 0)},
		{ID: 2, DayWeek: 3},
		{ID: 3, DayWeek: 9},
		{ID: 4, DayWeek: 1, DoctorName: ptr("Петров Пётр Петрович")},
	}

	got := ids(Schedule.Filter(schedules, "среда"), func(s entity.Schedule) int { return s.ID })
	if !slices.Equal(got, []int{1, 2}) {
		t.Errorf("day search = %v, want [1 2]", got)
	}

	got = ids(Schedule.Filter(schedules, "петров"), func(s entity.Schedule) int { return s.ID })
	if !slices.Equal(got, []int{4}) {
		t.Errorf("doctor search = %v, want [4]", got)
	}
}

func TestReceptionSearchByDate(t *testing.T) {
	receptions := []entity.Reception{
		{ID: 2, DateReception: entity.NewDate(2024, 5, 2), TimeReception: entity.NewTimeOfDay(10, 30, 0), PatientName: ptr("Сидоров Сидор Сидорович")},
		{ID: 1, DateReception: entity.NewDate(2023, 11, 20)},
	}

	got := ids(Reception.Filter(receptions, "2024-05-02"), func(r entity.Reception) int { return r.ID })
	if !slices.Equal(got, []int{2}) {
		t.Errorf("date search = %v, want [2]", got)
	}

	got = ids(Reception.Filter(receptions, "сидоров"), func(r entity.Reception) int { return r.ID })
	if !slices.Equal(got, []int{2}) {
		t.Errorf("patient search = %v, want [2]", got)
	}
}

func TestServiceRenderedSearch(t *testing.T) {
	rendered := []entity.ServiceRendered{
		{ID: 2, ServiceName: ptr("Пломба"), NumberReceptionID: ptr(17), Quantity: 2},
		{ID: 1, Quantity: 0},
	}

	got := ids(ServiceRendered.Filter(rendered, "пломба"), func(s entity.ServiceRendered) int { return s.ID })
	if !slices.Equal(got, []int{2}) {
		t.Errorf("service search = %v, want [2]", got)
	}

	got = ids(ServiceRendered.Filter(rendered, "17"), func(s entity.ServiceRendered) int { return s.ID })
	if !slices.Equal(got, []int{2}) {
		t.Errorf("reception id search = %v, want [2]", got)
	}
}

func TestPredicate(t *testing.T) {
	if p := Doctor.Predicate("  "); p != nil {
		t.Fatal("empty query should not produce a predicate")
	}

	query, args := sql.Dialect(dialect.Postgres).
		Select("*").
		From(sql.Table("doctor")).
		Where(Doctor.Predicate("Иванов")).
		Query()

	for _, fragment := range []string{
		`to_tsvector('simple', coalesce("doctor"."full_name", '') || ' ' || coalesce("doctor"."phone_number", '')`,
		`@@ plainto_tsquery('simple', $1)`,
		`similarity("doctor"."full_name", $2) > 0.1`,
		`similarity("doctor"."phone_number", $3) > 0.25`,
		` OR `,
	} {
		if !strings.Contains(query, fragment) {
			t.Errorf("query %q does not contain %q", query, fragment)
		}
	}
	if len(args) != 3 {
		t.Errorf("args = %v, want 3", args)
	}
}

func TestPredicateNumericAndContains(t *testing.T) {
	query, args := sql.Dialect(dialect.Postgres).
		Select("*").
		From(sql.Table("service")).
		Where(Service.Predicate("5000")).
		Query()
	if !strings.Contains(query, `"service"."cost" = $3`) {
		t.Errorf("query %q lacks cost equality", query)
	}
	if len(args) != 3 || args[2] != float64(5000) {
		t.Errorf("args = %v", args)
	}

	query, _ = sql.Dialect(dialect.Postgres).
		Select("*").
		From(sql.Table("service")).
		Where(Service.Predicate("пломба")).
		Query()
	if strings.Contains(query, `"service"."cost" =`) {
		t.Errorf("non-numeric query should not compare cost: %q", query)
	}

	_, args = sql.Dialect(dialect.Postgres).
		Select("*").
		From(sql.Table("patient")).
		Where(Patient.Predicate("50%_off")).
		Query()
	if !slices.Contains(args, any(`%50\%\_off%`)) {
		t.Errorf("ILIKE argument not escaped: %v", args)
	}
}

func TestScheduleGreatest(t *testing.T) {
	query, _ := sql.Dialect(dialect.Postgres).
		Select("*").
		From(sql.Table("shedule")).
		Where(Schedule.Predicate("среда")).
		Query()
	if !strings.Contains(query, "GREATEST(similarity(CASE") || !strings.Contains(query, ") > 0.2") {
		t.Errorf("unexpected schedule predicate %q", query)
	}
}

func ids[T any](items []T, id func(T) int) []int {
	var out []int
	for _, it := range items {
		out = append(out, id(it))
	}
	return out
}
