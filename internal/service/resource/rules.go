package resource

import (
	"strings"

	"github.com/Alijeyrad/stomatology_backend/internal/entity"
	"github.com/Alijeyrad/stomatology_backend/pkg/phone"
)

const (
	msgChooseDoctor    = "Выберите врача"
	msgChoosePatient   = "Выберите пациента"
	msgChooseService   = "Выберите услугу"
	msgChooseReception = "Выберите прием"
	msgChooseDay       = "Выберите день недели"
)

func normalizePhone(s string) string {
	if n, err := phone.Normalize(s); err == nil {
		return n
	}
	return s
}

var DoctorRules = &Rules[entity.Doctor]{
	Normalize: func(d *entity.Doctor) {
		d.FullName = strings.TrimSpace(d.FullName)
		d.PhoneNumber = strings.TrimSpace(d.PhoneNumber)
		d.OfficeNumber = strings.TrimSpace(d.OfficeNumber)
	},
	Finalize: func(d *entity.Doctor) {
		d.PhoneNumber = normalizePhone(d.PhoneNumber)
	},
	Unique: []UniqueRule[entity.Doctor]{
		{Field: "phone_number", Value: func(d *entity.Doctor) any { return d.PhoneNumber }, Message: msgPhoneTaken},
	},
	Form: []FormField{
		{Name: "full_name", Type: "text", Required: true},
		{Name: "phone_number", Type: "text", Required: true},
		{Name: "office_number", Type: "text"},
	},
}

var PatientRules = &Rules[entity.Patient]{
	Normalize: func(p *entity.Patient) {
		p.FullName = strings.TrimSpace(p.FullName)
		p.PhoneNumber = strings.TrimSpace(p.PhoneNumber)
		p.PatientAddress = strings.TrimSpace(p.PatientAddress)
	},
	Finalize: func(p *entity.Patient) {
		p.PhoneNumber = normalizePhone(p.PhoneNumber)
	},
	Unique: []UniqueRule[entity.Patient]{
		{Field: "phone_number", Value: func(p *entity.Patient) any { return p.PhoneNumber }, Message: msgPhoneTaken},
	},
	Form: []FormField{
		{Name: "full_name", Type: "text", Required: true},
		{Name: "phone_number", Type: "text", Required: true},
		{Name: "patient_address", Type: "text"},
	},
}

var ScheduleRules = &Rules[entity.Schedule]{
	Check: func(s *entity.Schedule) map[string]string {
		fields := map[string]string{}
		if s.StartReception.IsZero() {
			fields["start_reception"] = msgRequired
		}
		if s.EndReception.IsZero() {
			fields["end_reception"] = msgRequired
		}
		return fields
	},
	Refs: []RefRule[entity.Schedule]{
		{Field: "doctor_id", Target: entity.KindDoctor, Get: func(s *entity.Schedule) *int { return s.DoctorID }, Message: msgChooseDoctor},
	},
	Form: []FormField{
		{Name: "doctor_id", Type: "select", Required: true, EmptyLabel: msgChooseDoctor, ChoicesFrom: entity.KindDoctor},
		{Name: "day_week", Type: "select", Required: true, EmptyLabel: msgChooseDay, Choices: entity.WeekdayChoices()},
		{Name: "start_reception", Type: "time", Required: true},
		{Name: "end_reception", Type: "time", Required: true},
	},
}

var ServiceRules = &Rules[entity.Service]{
	Normalize: func(s *entity.Service) {
		s.ServiceName = strings.TrimSpace(s.ServiceName)
	},
	Form: []FormField{
		{Name: "service_name", Type: "text", Required: true},
		{Name: "cost", Type: "number", Required: true},
	},
}

var ReceptionRules = &Rules[entity.Reception]{
	Check: func(r *entity.Reception) map[string]string {
		fields := map[string]string{}
		if r.DateReception.IsZero() {
			fields["date_reception"] = msgRequired
		}
		if r.TimeReception.IsZero() {
			fields["time_reception"] = msgRequired
		}
		return fields
	},
	Refs: []RefRule[entity.Reception]{
		{Field: "patient_id", Target: entity.KindPatient, Get: func(r *entity.Reception) *int { return r.PatientID }, Message: msgChoosePatient},
		{Field: "doctor_id", Target: entity.KindDoctor, Get: func(r *entity.Reception) *int { return r.DoctorID }, Message: msgChooseDoctor},
	},
	Form: []FormField{
		{Name: "date_reception", Type: "date", Required: true},
		{Name: "time_reception", Type: "time", Required: true},
		{Name: "patient_id", Type: "select", Required: true, EmptyLabel: msgChoosePatient, ChoicesFrom: entity.KindPatient},
		{Name: "doctor_id", Type: "select", Required: true, EmptyLabel: msgChooseDoctor, ChoicesFrom: entity.KindDoctor},
	},
}

var ServiceRenderedRules = &Rules[entity.ServiceRendered]{
	Refs: []RefRule[entity.ServiceRendered]{
		{Field: "service_id", Target: entity.KindService, Get: func(s *entity.ServiceRendered) *int { return s.ServiceID }, Message: msgChooseService},
		{Field: "number_reception_id", Target: entity.KindReception, Get: func(s *entity.ServiceRendered) *int { return s.NumberReceptionID }, Message: msgChooseReception},
	},
	Form: []FormField{
		{Name: "service_id", Type: "select", Required: true, EmptyLabel: msgChooseService, ChoicesFrom: entity.KindService},
		{Name: "quantity", Type: "number"},
		{Name: "number_reception_id", Type: "select", Required: true, EmptyLabel: msgChooseReception, ChoicesFrom: entity.KindReception},
	},
}
