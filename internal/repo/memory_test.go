package repo

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/stomatology_backend/internal/entity"
)

func newDoctor(name, phone string) *entity.Doctor {
	return &entity.Doctor{FullName: name, PhoneNumber: phone, OfficeNumber: "101"}
}

func TestMemoryCRUD(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryClient()
	defer c.Close()

	d := newDoctor("Иванов Иван Иванович", "+79616448504")
	require.NoError(t, c.Doctor.Create(ctx, d))
	assert.Equal(t, 1, d.ID)

	got, err := c.Doctor.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.FullName, got.FullName)

	got.OfficeNumber = "305"
	require.NoError(t, c.Doctor.Update(ctx, got))

	again, err := c.Doctor.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "305", again.OfficeNumber)

	require.NoError(t, c.Doctor.Delete(ctx, d.ID))
	_, err = c.Doctor.Get(ctx, d.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, c.Doctor.Delete(ctx, d.ID), ErrNotFound)
	assert.ErrorIs(t, c.Doctor.Update(ctx, d), ErrNotFound)
}

func TestMemoryUniquePhone(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryClient()

	first := newDoctor("Иванов Иван Иванович", "+79616448504")
	require.NoError(t, c.Doctor.Create(ctx, first))

	err := c.Doctor.Create(ctx, newDoctor("Петров Пётр Петрович", "+79616448504"))
	require.ErrorIs(t, err, ErrDuplicate)
	var dup *DuplicateError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "phone_number", dup.Field)

	// Resubmitting the record's own number is not a duplicate.
	first.FullName = "Иванов Иван Петрович"
	require.NoError(t, c.Doctor.Update(ctx, first))

	// Patients have their own namespace.
	require.NoError(t, c.Patient.Create(ctx, &entity.Patient{FullName: "Сидоров Сидор Сидорович", PhoneNumber: "+79616448504"}))

	taken, err := c.Doctor.ExistsWith(ctx, "phone_number", "+79616448504", first.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = c.Doctor.ExistsWith(ctx, "phone_number", "+79616448504", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	_, err = c.Doctor.ExistsWith(ctx, "password", "x", 0)
	assert.Error(t, err)
}

func TestMemoryConcurrentDuplicate(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryClient()

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = c.Patient.Create(ctx, &entity.Patient{FullName: "Сидоров Сидор Сидорович", PhoneNumber: "+79990001122"})
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrDuplicate)
	}
	assert.Equal(t, 1, succeeded)
}

func TestMemoryDeleteOrphansReferences(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryClient()

	p := &entity.Patient{FullName: "Сидоров Сидор Сидорович", PhoneNumber: "+79990001122"}
	require.NoError(t, c.Patient.Create(ctx, p))
	d := newDoctor("Иванов Иван Иванович", "+79616448504")
	require.NoError(t, c.Doctor.Create(ctx, d))

	r := &entity.Reception{
		DateReception: entity.NewDate(2024, 5, 2),
		TimeReception: entity.NewTimeOfDay(10, 30, 0),
		PatientID:     &p.ID,
		DoctorID:      &d.ID,
	}
	require.NoError(t, c.Reception.Create(ctx, r))

	got, err := c.Reception.Get(ctx, r.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PatientName)
	assert.Equal(t, p.FullName, *got.PatientName)

	require.NoError(t, c.Patient.Delete(ctx, p.ID))

	got, err = c.Reception.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Nil(t, got.PatientID)
	assert.Nil(t, got.PatientName)
	require.NotNil(t, got.DoctorID)
	assert.Equal(t, d.ID, *got.DoctorID)
}

func TestMemoryRejectsMissingReference(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryClient()

	missing := 42
	err := c.Schedule.Create(ctx, &entity.Schedule{DoctorID: &missing, DayWeek: 1})
	assert.ErrorIs(t, err, ErrReference)
}

func TestMemoryDefaultOrder(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryClient()

	for _, phone := range []string{"+79000000001", "+79000000002", "+79000000003"} {
		require.NoError(t, c.Doctor.Create(ctx, newDoctor("Иванов Иван Иванович", phone)))
	}
	doctors, err := c.Doctor.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, []int{doctors[0].ID, doctors[1].ID, doctors[2].ID})

	for i := 0; i < 3; i++ {
		require.NoError(t, c.Reception.Create(ctx, &entity.Reception{DateReception: entity.NewDate(2024, 1, i+1)}))
	}
	receptions, err := c.Reception.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 1}, []int{receptions[0].ID, receptions[1].ID, receptions[2].ID})
}

func TestMemorySearch(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryClient()

	for _, s := range []*entity.Service{
		{ServiceName: "Пломба", Cost: 5000},
		{ServiceName: "Удаление зуба", Cost: 5000},
		{ServiceName: "Чистка", Cost: 1200},
	} {
		require.NoError(t, c.Service.Create(ctx, s))
	}

	found, err := c.Service.Search(ctx, "5000")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	all, err := c.Service.Search(ctx, "")
	require.NoError(t, err)
	listed, err := c.Service.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, listed, all)
}

func TestClientChoicesAndExists(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryClient()

	s := &entity.Service{ServiceName: "Пломба", Cost: 5000}
	require.NoError(t, c.Service.Create(ctx, s))

	choices, err := c.Choices(ctx, entity.KindService)
	require.NoError(t, err)
	assert.Equal(t, []entity.Choice{{Value: s.ID, Label: "Пломба(5000руб.)"}}, choices)

	ok, err := c.Exists(ctx, entity.KindService, s.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Exists(ctx, entity.KindPatient, s.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = c.Exists(ctx, entity.Kind("invoice"), 1)
	assert.Error(t, err)
}
