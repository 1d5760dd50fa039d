package entity

import (
	"fmt"
	"strconv"
)

// Record is implemented by every clinic record type.
type Record interface {
	GetID() int
	SetID(id int)
	Label() string
}

type Doctor struct {
	ID           int    `json:"id" form:"id" sql:"id" valid:"-"`
	FullName     string `json:"full_name" form:"full_name" sql:"full_name" valid:"required~Введите полное ФИО!,fullname~Введите полное ФИО!,runelength(1|100)~Не более 100 символов"`
	PhoneNumber  string `json:"phone_number" form:"phone_number" sql:"phone_number" valid:"required~Введите номер в формате +7XXXXXXXXXX!,phone~Введите номер в формате +7XXXXXXXXXX!"`
	OfficeNumber string `json:"office_number" form:"office_number" sql:"office_number" valid:"runelength(1|10)~Не более 10 символов"`
}

func (d *Doctor) GetID() int { return d.ID }
func (d *Doctor) SetID(id int) { d.ID = id }
func (d *Doctor) Label() string { return d.FullName }

type Patient struct {
	ID             int    `json:"id" form:"id" sql:"id" valid:"-"`
	FullName       string `json:"full_name" form:"full_name" sql:"full_name" valid:"required~Введите полное ФИО!,fullname~Введите полное ФИО!,runelength(1|100)~Не более 100 символов"`
	PhoneNumber    string `json:"phone_number" form:"phone_number" sql:"phone_number" valid:"required~Введите номер в формате +7XXXXXXXXXX!,phone~Введите номер в формате +7XXXXXXXXXX!"`
	PatientAddress string `json:"patient_address" form:"patient_address" sql:"patient_address" valid:"runelength(1|100)~Не более 100 символов"`
}

func (p *Patient) GetID() int { return p.ID }
func (p *Patient) SetID(id int) { p.ID = id }
func (p *Patient) Label() string { return p.FullName }

// Schedule is one weekly working slot of a doctor. DoctorName is resolved on
// read and never written.
type Schedule struct {
	ID             int       `json:"id" form:"id" sql:"id" valid:"-"`
	DoctorID       *int      `json:"doctor_id" form:"doctor_id" sql:"doctor_id" valid:"-"`
	DayWeek        Weekday   `json:"day_week" form:"day_week" sql:"day_week" valid:"required~Выберите день недели,range(1|7)~Выберите день недели"`
	StartReception TimeOfDay `json:"start_reception" form:"start_reception" sql:"start_reception" valid:"-"`
	EndReception   TimeOfDay `json:"end_reception" form:"end_reception" sql:"end_reception" valid:"-"`

	DoctorName *string `json:"doctor_name,omitempty" form:"-" sql:"doctor_name" valid:"-"`
}

func (s *Schedule) GetID() int { return s.ID }
func (s *Schedule) SetID(id int) { s.ID = id }

func (s *Schedule) Label() string {
	day, _ := s.DayWeek.Title()
	return deref(s.DoctorName) + " - " + day
}

type Service struct {
	ID          int     `json:"id" form:"id" sql:"id" valid:"-"`
	ServiceName string  `json:"service_name" form:"service_name" sql:"service_name" valid:"required~Введите название услуги,runelength(1|50)~Не более 50 символов"`
	Cost        float64 `json:"cost" form:"cost" sql:"cost" valid:"nonnegative~Введите положительное число!"`
}

func (s *Service) GetID() int { return s.ID }
func (s *Service) SetID(id int) { s.ID = id }

func (s *Service) Label() string {
	return fmt.Sprintf("%s(%sруб.)", s.ServiceName, FormatCost(s.Cost))
}

// Reception is a single visit of a patient to a doctor.
type Reception struct {
	ID            int       `json:"id" form:"id" sql:"id" valid:"-"`
	DateReception Date      `json:"date_reception" form:"date_reception" sql:"date_reception" valid:"-"`
	TimeReception TimeOfDay `json:"time_reception" form:"time_reception" sql:"time_reception" valid:"-"`
	PatientID     *int      `json:"patient_id" form:"patient_id" sql:"patient_id" valid:"-"`
	DoctorID      *int      `json:"doctor_id" form:"doctor_id" sql:"doctor_id" valid:"-"`

	PatientName *string `json:"patient_name,omitempty" form:"-" sql:"patient_name" valid:"-"`
	DoctorName  *string `json:"doctor_name,omitempty" form:"-" sql:"doctor_name" valid:"-"`
}

func (r *Reception) GetID() int { return r.ID }
func (r *Reception) SetID(id int) { r.ID = id }

func (r *Reception) Label() string {
	return fmt.Sprintf("%d (%s %s)", r.ID, r.DateReception, r.TimeReception)
}

// ServiceRendered records a quantity of a service performed during a reception.
type ServiceRendered struct {
	ID                int  `json:"id" form:"id" sql:"id" valid:"-"`
	ServiceID         *int `json:"service_id" form:"service_id" sql:"service_id" valid:"-"`
	NumberReceptionID *int `json:"number_reception_id" form:"number_reception_id" sql:"number_reception_id" valid:"-"`
	Quantity          int  `json:"quantity" form:"quantity" sql:"quantity" valid:"nonnegative~Введите положительное число!"`

	ServiceName *string `json:"service_name,omitempty" form:"-" sql:"service_name" valid:"-"`
}

func (s *ServiceRendered) GetID() int { return s.ID }
func (s *ServiceRendered) SetID(id int) { s.ID = id }

func (s *ServiceRendered) Label() string {
	return fmt.Sprintf("%d (%s(%d))", s.ID, deref(s.ServiceName), s.Quantity)
}

// FormatCost renders a cost without a trailing fractional zero.
func FormatCost(cost float64) string {
	return strconv.FormatFloat(cost, 'f', -1, 64)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
