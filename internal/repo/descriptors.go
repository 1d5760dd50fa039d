package repo

import (
	"github.com/Alijeyrad/stomatology_backend/internal/entity"
	"github.com/Alijeyrad/stomatology_backend/internal/schema"
	"github.com/Alijeyrad/stomatology_backend/internal/search"
)

// tableOf maps a kind to its table name.
var tableOf = map[entity.Kind]string{
	entity.KindDoctor:          schema.DoctorTableName,
	entity.KindPatient:         schema.PatientTableName,
	entity.KindSchedule:        schema.ScheduleTableName,
	entity.KindService:         schema.ServiceTableName,
	entity.KindReception:       schema.ReceptionTableName,
	entity.KindServiceRendered: schema.ServiceRenderedTableName,
}

var DoctorDescriptor = &Descriptor[entity.Doctor]{
	Kind:    entity.KindDoctor,
	Table:   schema.DoctorTableName,
	Columns: []string{"full_name", "phone_number", "office_number"},
	Values: func(d *entity.Doctor) []any {
		return []any{d.FullName, d.PhoneNumber, d.OfficeNumber}
	},
	ID:    func(d *entity.Doctor) int { return d.ID },
	SetID: func(d *entity.Doctor, id int) { d.ID = id },
	Value: func(d *entity.Doctor, column string) any {
		switch column {
		case "id":
			return d.ID
		case "full_name":
			return d.FullName
		case "phone_number":
			return d.PhoneNumber
		case "office_number":
			return d.OfficeNumber
		}
		return nil
	},
	Unique: []string{"phone_number"},
	Search: search.Doctor,
}

var PatientDescriptor = &Descriptor[entity.Patient]{
	Kind:    entity.KindPatient,
	Table:   schema.PatientTableName,
	Columns: []string{"full_name", "phone_number", "patient_address"},
	Values: func(p *entity.Patient) []any {
		return []any{p.FullName, p.PhoneNumber, p.PatientAddress}
	},
	ID:    func(p *entity.Patient) int { return p.ID },
	SetID: func(p *entity.Patient, id int) { p.ID = id },
	Value: func(p *entity.Patient, column string) any {
		switch column {
		case "id":
			return p.ID
		case "full_name":
			return p.FullName
		case "phone_number":
			return p.PhoneNumber
		case "patient_address":
			return p.PatientAddress
		}
		return nil
	},
	Unique: []string{"phone_number"},
	Search: search.Patient,
}

var ScheduleDescriptor = &Descriptor[entity.Schedule]{
	Kind:    entity.KindSchedule,
	Table:   schema.ScheduleTableName,
	Columns: []string{"doctor_id", "day_week", "start_reception", "end_reception"},
	Values: func(s *entity.Schedule) []any {
		return []any{s.DoctorID, int(s.DayWeek), s.StartReception, s.EndReception}
	},
	ID:    func(s *entity.Schedule) int { return s.ID },
	SetID: func(s *entity.Schedule, id int) { s.ID = id },
	Value: func(s *entity.Schedule, column string) any {
		switch column {
		case "id":
			return s.ID
		case "doctor_id":
			return s.DoctorID
		case "day_week":
			return int(s.DayWeek)
		}
		return nil
	},
	Refs: []Ref[entity.Schedule]{
		{
			Column:     "doctor_id",
			Target:     entity.KindDoctor,
			Get:        func(s *entity.Schedule) *int { return s.DoctorID },
			Set:        func(s *entity.Schedule, id *int) { s.DoctorID = id },
			Display:    "full_name",
			As:         "doctor_name",
			SetDisplay: func(s *entity.Schedule, name *string) { s.DoctorName = name },
		},
	},
	Search: search.Schedule,
}

var ServiceDescriptor = &Descriptor[entity.Service]{
	Kind:    entity.KindService,
	Table:   schema.ServiceTableName,
	Columns: []string{"service_name", "cost"},
	Values: func(s *entity.Service) []any {
		return []any{s.ServiceName, s.Cost}
	},
	ID:    func(s *entity.Service) int { return s.ID },
	SetID: func(s *entity.Service, id int) { s.ID = id },
	Value: func(s *entity.Service, column string) any {
		switch column {
		case "id":
			return s.ID
		case "service_name":
			return s.ServiceName
		case "cost":
			return s.Cost
		}
		return nil
	},
	Search: search.Service,
}

var ReceptionDescriptor = &Descriptor[entity.Reception]{
	Kind:    entity.KindReception,
	Table:   schema.ReceptionTableName,
	Columns: []string{"date_reception", "time_reception", "patient_id", "doctor_id"},
	Values: func(r *entity.Reception) []any {
		return []any{r.DateReception, r.TimeReception, r.PatientID, r.DoctorID}
	},
	ID:    func(r *entity.Reception) int { return r.ID },
	SetID: func(r *entity.Reception, id int) { r.ID = id },
	Value: func(r *entity.Reception, column string) any {
		switch column {
		case "id":
			return r.ID
		case "patient_id":
			return r.PatientID
		case "doctor_id":
			return r.DoctorID
		}
		return nil
	},
	Refs: []Ref[entity.Reception]{
		{
			Column:     "patient_id",
			Target:     entity.KindPatient,
			Get:        func(r *entity.Reception) *int { return r.PatientID },
			Set:        func(r *entity.Reception, id *int) { r.PatientID = id },
			Display:    "full_name",
			As:         "patient_name",
			SetDisplay: func(r *entity.Reception, name *string) { r.PatientName = name },
		},
		{
			Column:     "doctor_id",
			Target:     entity.KindDoctor,
			Get:        func(r *entity.Reception) *int { return r.DoctorID },
			Set:        func(r *entity.Reception, id *int) { r.DoctorID = id },
			Display:    "full_name",
			As:         "doctor_name",
			SetDisplay: func(r *entity.Reception, name *string) { r.DoctorName = name },
		},
	},
	NewestFirst: true,
	Search:      search.Reception,
}

var ServiceRenderedDescriptor = &Descriptor[entity.ServiceRendered]{
	Kind:    entity.KindServiceRendered,
	Table:   schema.ServiceRenderedTableName,
	Columns: []string{"service_id", "number_reception_id", "quantity"},
	Values: func(s *entity.ServiceRendered) []any {
		return []any{s.ServiceID, s.NumberReceptionID, s.Quantity}
	},
	ID:    func(s *entity.ServiceRendered) int { return s.ID },
	SetID: func(s *entity.ServiceRendered, id int) { s.ID = id },
	Value: func(s *entity.ServiceRendered, column string) any {
		switch column {
		case "id":
			return s.ID
		case "service_id":
			return s.ServiceID
		case "number_reception_id":
			return s.NumberReceptionID
		case "quantity":
			return s.Quantity
		}
		return nil
	},
	Refs: []Ref[entity.ServiceRendered]{
		{
			Column:     "service_id",
			Target:     entity.KindService,
			Get:        func(s *entity.ServiceRendered) *int { return s.ServiceID },
			Set:        func(s *entity.ServiceRendered, id *int) { s.ServiceID = id },
			Display:    "service_name",
			As:         "service_name",
			SetDisplay: func(s *entity.ServiceRendered, name *string) { s.ServiceName = name },
		},
		{
			Column: "number_reception_id",
			Target: entity.KindReception,
			Get:    func(s *entity.ServiceRendered) *int { return s.NumberReceptionID },
			Set:    func(s *entity.ServiceRendered, id *int) { s.NumberReceptionID = id },
		},
	},
	NewestFirst: true,
	Search:      search.ServiceRendered,
}
