package repo

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/samber/lo"

	"github.com/Alijeyrad/stomatology_backend/internal/entity"
)

// Client groups the repositories of every record type.
type Client struct {
	Doctor          Repository[entity.Doctor]
	Patient         Repository[entity.Patient]
	Schedule        Repository[entity.Schedule]
	Service         Repository[entity.Service]
	Reception       Repository[entity.Reception]
	ServiceRendered Repository[entity.ServiceRendered]

	close func() error
}

// NewClient returns a Client backed by PostgreSQL.
func NewClient(drv *entsql.Driver) *Client {
	return &Client{
		Doctor:          NewPostgres(drv, DoctorDescriptor),
		Patient:         NewPostgres(drv, PatientDescriptor),
		Schedule:        NewPostgres(drv, ScheduleDescriptor),
		Service:         NewPostgres(drv, ServiceDescriptor),
		Reception:       NewPostgres(drv, ReceptionDescriptor),
		ServiceRendered: NewPostgres(drv, ServiceRenderedDescriptor),
		close:           drv.Close,
	}
}

// NewMemoryClient returns a Client whose repositories share one in-process
// store. Data is lost when the process exits.
func NewMemoryClient() *Client {
	db := newMemDB()
	return &Client{
		Doctor:          newMemory(db, DoctorDescriptor),
		Patient:         newMemory(db, PatientDescriptor),
		Schedule:        newMemory(db, ScheduleDescriptor),
		Service:         newMemory(db, ServiceDescriptor),
		Reception:       newMemory(db, ReceptionDescriptor),
		ServiceRendered: newMemory(db, ServiceRenderedDescriptor),
		close:           func() error { return nil },
	}
}

func (c *Client) Close() error {
	return c.close()
}

// Exists reports whether a record of the given kind exists.
func (c *Client) Exists(ctx context.Context, kind entity.Kind, id int) (bool, error) {
	switch kind {
	case entity.KindDoctor:
		return c.Doctor.Exists(ctx, id)
	case entity.KindPatient:
		return c.Patient.Exists(ctx, id)
	case entity.KindSchedule:
		return c.Schedule.Exists(ctx, id)
	case entity.KindService:
		return c.Service.Exists(ctx, id)
	case entity.KindReception:
		return c.Reception.Exists(ctx, id)
	case entity.KindServiceRendered:
		return c.ServiceRendered.Exists(ctx, id)
	}
	return false, fmt.Errorf("unknown kind %q", kind)
}

// Choices lists every record of kind as a selectable value, in default order.
func (c *Client) Choices(ctx context.Context, kind entity.Kind) ([]entity.Choice, error) {
	switch kind {
	case entity.KindDoctor:
		return choices(ctx, c.Doctor)
	case entity.KindPatient:
		return choices(ctx, c.Patient)
	case entity.KindSchedule:
		return choices(ctx, c.Schedule)
	case entity.KindService:
		return choices(ctx, c.Service)
	case entity.KindReception:
		return choices(ctx, c.Reception)
	case entity.KindServiceRendered:
		return choices(ctx, c.ServiceRendered)
	}
	return nil, fmt.Errorf("unknown kind %q", kind)
}

func choices[T any, P interface {
	*T
	entity.Record
}](ctx context.Context, r Repository[T]) ([]entity.Choice, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(item T, _ int) entity.Choice {
		rec := P(&item)
		return entity.Choice{Value: rec.GetID(), Label: rec.Label()}
	}), nil
}
