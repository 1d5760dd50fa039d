package search

import (
	"strconv"

	"github.com/Alijeyrad/stomatology_backend/internal/entity"
)

// SQL expressions below assume the listing query selects each table under
// its own name, with referenced tables LEFT JOINed as "doctor", "patient"
// and "service".

func text[T any](expr string, get func(*T) string) Field[T] {
	return Field[T]{SQL: expr, Value: func(rec *T) (string, bool) { return get(rec), true }}
}

func optional[T any](expr string, get func(*T) *string) Field[T] {
	return Field[T]{SQL: expr, Value: func(rec *T) (string, bool) {
		v := get(rec)
		if v == nil {
			return "", false
		}
		return *v, true
	}}
}

var (
	doctorFullName = text(`"doctor"."full_name"`, func(d *entity.Doctor) string { return d.FullName })
	doctorPhone    = text(`"doctor"."phone_number"`, func(d *entity.Doctor) string { return d.PhoneNumber })
	doctorOffice   = text(`"doctor"."office_number"`, func(d *entity.Doctor) string { return d.OfficeNumber })
)

var Doctor = Config[entity.Doctor]{
	Document: []Field[entity.Doctor]{doctorFullName, doctorPhone, doctorOffice},
	Scores: []Score[entity.Doctor]{
		{Fields: []Field[entity.Doctor]{doctorFullName}, Threshold: 0.1},
		{Fields: []Field[entity.Doctor]{doctorPhone}, Threshold: 0.25},
	},
}

var (
	patientFullName = text(`"patient"."full_name"`, func(p *entity.Patient) string { return p.FullName })
	patientPhone    = text(`"patient"."phone_number"`, func(p *entity.Patient) string { return p.PhoneNumber })
	patientAddress  = text(`"patient"."patient_address"`, func(p *entity.Patient) string { return p.PatientAddress })
)

var Patient = Config[entity.Patient]{
	Document: []Field[entity.Patient]{patientFullName, patientPhone, patientAddress},
	Scores: []Score[entity.Patient]{
		{Fields: []Field[entity.Patient]{patientFullName, patientPhone, patientAddress}, Threshold: 0.6},
	},
	Contains: []Field[entity.Patient]{patientFullName, patientPhone, patientAddress},
}

const dayNameSQL = `CASE "shedule"."day_week"` +
	` WHEN 1 THEN 'понедельник' WHEN 2 THEN 'вторник' WHEN 3 THEN 'среда'` +
	` WHEN 4 THEN 'четверг' WHEN 5 THEN 'пятница' WHEN 6 THEN 'суббота'` +
	` WHEN 7 THEN 'воскресенье' END`

var (
	scheduleDoctorName = optional(`"doctor"."full_name"`, func(s *entity.Schedule) *string { return s.DoctorName })
	scheduleDayName    = Field[entity.Schedule]{
		SQL:   dayNameSQL,
		Value: func(s *entity.Schedule) (string, bool) { return s.DayWeek.Name() },
	}
	scheduleStart = Field[entity.Schedule]{
		SQL:   `"shedule"."start_reception"::text`,
		Value: func(s *entity.Schedule) (string, bool) { return timeText(s.StartReception) },
	}
)

var Schedule = Config[entity.Schedule]{
	Document: []Field[entity.Schedule]{scheduleDoctorName},
	Scores: []Score[entity.Schedule]{
		{Fields: []Field[entity.Schedule]{scheduleDayName, scheduleDoctorName, scheduleStart}, Threshold: 0.2},
	},
}

var serviceName = text(`"service"."service_name"`, func(s *entity.Service) string { return s.ServiceName })

var Service = Config[entity.Service]{
	Document: []Field[entity.Service]{serviceName},
	Scores: []Score[entity.Service]{
		{Fields: []Field[entity.Service]{serviceName}, Threshold: 0.25},
	},
	Numeric: []Numeric[entity.Service]{
		{SQL: `"service"."cost"`, Value: func(s *entity.Service) (float64, bool) { return s.Cost, true }},
	},
}

var (
	renderedServiceName = optional(`"service"."service_name"`, func(s *entity.ServiceRendered) *string { return s.ServiceName })
	renderedReception   = Field[entity.ServiceRendered]{
		SQL:   `"service_rendered"."number_reception_id"::text`,
		Value: func(s *entity.ServiceRendered) (string, bool) { return intText(s.NumberReceptionID) },
	}
	renderedQuantity = text(`"service_rendered"."quantity"::text`, func(s *entity.ServiceRendered) string {
		return strconv.Itoa(s.Quantity)
	})
)

var ServiceRendered = Config[entity.ServiceRendered]{
	Document: []Field[entity.ServiceRendered]{renderedServiceName},
	Scores: []Score[entity.ServiceRendered]{
		{Fields: []Field[entity.ServiceRendered]{renderedServiceName}, Threshold: 0.25},
		{Fields: []Field[entity.ServiceRendered]{renderedReception}, Threshold: 0.25},
		{Fields: []Field[entity.ServiceRendered]{renderedQuantity}, Threshold: 0.25},
	},
}

var (
	receptionPatientName = optional(`"patient"."full_name"`, func(r *entity.Reception) *string { return r.PatientName })
	receptionDoctorName  = optional(`"doctor"."full_name"`, func(r *entity.Reception) *string { return r.DoctorName })
	receptionDate        = Field[entity.Reception]{
		SQL: `"reception"."date_reception"::text`,
		Value: func(r *entity.Reception) (string, bool) {
			if r.DateReception.IsZero() {
				return "", false
			}
			return r.DateReception.String(), true
		},
	}
	receptionTime = Field[entity.Reception]{
		SQL:   `"reception"."time_reception"::text`,
		Value: func(r *entity.Reception) (string, bool) { return timeText(r.TimeReception) },
	}
)

var Reception = Config[entity.Reception]{
	Document: []Field[entity.Reception]{receptionPatientName, receptionDoctorName},
	Scores: []Score[entity.Reception]{
		{
			Fields:    []Field[entity.Reception]{receptionPatientName, receptionDoctorName, receptionDate, receptionTime},
			Threshold: 0.4,
		},
	},
}

func timeText(t entity.TimeOfDay) (string, bool) {
	if t.IsZero() {
		return "", false
	}
	return t.String(), true
}

func intText(v *int) (string, bool) {
	if v == nil {
		return "", false
	}
	return strconv.Itoa(*v), true
}
