package resource

import (
	"github.com/Alijeyrad/stomatology_backend/internal/entity"
	"github.com/Alijeyrad/stomatology_backend/internal/repo"
)

// Services bundles the workflow of every record type over one repository
// client.
type Services struct {
	Doctor          Service[entity.Doctor]
	Patient         Service[entity.Patient]
	Schedule        Service[entity.Schedule]
	Service         Service[entity.Service]
	Reception       Service[entity.Reception]
	ServiceRendered Service[entity.ServiceRendered]
}

func NewServices(client *repo.Client) *Services {
	return &Services{
		Doctor:          New[entity.Doctor](entity.KindDoctor, client.Doctor, client, DoctorRules),
		Patient:         New[entity.Patient](entity.KindPatient, client.Patient, client, PatientRules),
		Schedule:        New[entity.Schedule](entity.KindSchedule, client.Schedule, client, ScheduleRules),
		Service:         New[entity.Service](entity.KindService, client.Service, client, ServiceRules),
		Reception:       New[entity.Reception](entity.KindReception, client.Reception, client, ReceptionRules),
		ServiceRendered: New[entity.ServiceRendered](entity.KindServiceRendered, client.ServiceRendered, client, ServiceRenderedRules),
	}
}
