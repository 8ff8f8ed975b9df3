package hospital

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelink/booking-api/internal/model"
	"github.com/carelink/booking-api/pkg/errors"
)

type doctorStore struct{ doctors map[uuid.UUID]*model.Doctor }

func (r *doctorStore) Create(_ context.Context, d *model.Doctor) error {
	d.ID = uuid.New()
	r.doctors[d.ID] = d
	return nil
}

func (r *doctorStore) Get(_ context.Context, id uuid.UUID) (*model.Doctor, error) {
	if d, ok := r.doctors[id]; ok {
		return d, nil
	}
	return nil, sql.ErrNoRows
}

func (r *doctorStore) GetByEmail(_ context.Context, email string) (*model.Doctor, error) {
	for _, d := range r.doctors {
		if d.Email == email {
			return d, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *doctorStore) ListByHospital(_ context.Context, hospitalID uuid.UUID) ([]*model.Doctor, error) {
	var out []*model.Doctor
	for _, d := range r.doctors {
		if d.HospitalID == hospitalID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *doctorStore) ListByHospitalAndSpecialization(context.Context, uuid.UUID, string) ([]*model.Doctor, error) {
	return nil, nil
}

func (r *doctorStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.doctors, id)
	return nil
}

func (r *doctorStore) DistinctSpecializations(context.Context) ([]string, error) { return nil, nil }
func (r *doctorStore) DistinctSpecializationsByHospital(context.Context, uuid.UUID) ([]string, error) {
	return nil, nil
}

type hospitalStore struct{ hospitals map[uuid.UUID]*model.Hospital }

func (r *hospitalStore) Create(_ context.Context, h *model.Hospital) error {
	h.ID = uuid.New()
	r.hospitals[h.ID] = h
	return nil
}

func (r *hospitalStore) Get(_ context.Context, id uuid.UUID) (*model.Hospital, error) {
	if h, ok := r.hospitals[id]; ok {
		return h, nil
	}
	return nil, sql.ErrNoRows
}

func (r *hospitalStore) GetByEmail(context.Context, string) (*model.Hospital, error) {
	return nil, sql.ErrNoRows
}
func (r *hospitalStore) List(context.Context) ([]*model.Hospital, error) { return nil, nil }
func (r *hospitalStore) ListBySpecialization(context.Context, string) ([]*model.Hospital, error) {
	return nil, nil
}

type countingInvalidator struct{ calls int }

func (i *countingInvalidator) Invalidate() { i.calls++ }

func newTestService() (*Service, *doctorStore, *countingInvalidator, uuid.UUID) {
	doctors := &doctorStore{doctors: make(map[uuid.UUID]*model.Doctor)}
	hospitals := &hospitalStore{hospitals: make(map[uuid.UUID]*model.Hospital)}
	invalidator := &countingInvalidator{}

	hospital := &model.Hospital{HospitalName: "City General"}
	_ = hospitals.Create(context.Background(), hospital)

	return NewService(doctors, hospitals, invalidator), doctors, invalidator, hospital.ID
}

func addDoctorRequest() *model.AddDoctorRequest {
	return &model.AddDoctorRequest{
		FullName:       "Dr. Asha Rao",
		Email:          "asha@citygeneral.example.com",
		Password:       "s3cret-pass",
		Specialization: "Cardiology",
	}
}

func TestAddDoctorAppliesDefaults(t *testing.T) {
	svc, doctors, invalidator, hospitalID := newTestService()

	id, err := svc.AddDoctor(context.Background(), hospitalID, addDoctorRequest())
	require.NoError(t, err)

	stored, err := doctors.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, hospitalID, stored.HospitalID)
	assert.Equal(t, "Not specified", stored.Experience)
	assert.Equal(t, 4.0, stored.Rating)
	assert.NotEmpty(t, stored.Image)
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
	assert.Equal(t, 1, invalidator.calls)
}

func TestAddDoctorKeepsProvidedFields(t *testing.T) {
	svc, doctors, _, hospitalID := newTestService()

	req := addDoctorRequest()
	req.Experience = "12 years"
	req.Rating = 4.8

	id, err := svc.AddDoctor(context.Background(), hospitalID, req)
	require.NoError(t, err)

	stored, err := doctors.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "12 years", stored.Experience)
	assert.Equal(t, 4.8, stored.Rating)
}

func TestAddDoctorDuplicateEmail(t *testing.T) {
	svc, _, _, hospitalID := newTestService()

	_, err := svc.AddDoctor(context.Background(), hospitalID, addDoctorRequest())
	require.NoError(t, err)

	_, err = svc.AddDoctor(context.Background(), hospitalID, addDoctorRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.KindInvalidRequest))
}

func TestAddDoctorUnknownHospital(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.AddDoctor(context.Background(), uuid.New(), addDoctorRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.KindNotFound))
}

func TestDeleteDoctor(t *testing.T) {
	svc, doctors, invalidator, hospitalID := newTestService()

	id, err := svc.AddDoctor(context.Background(), hospitalID, addDoctorRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDoctor(context.Background(), hospitalID, id))
	_, err = doctors.Get(context.Background(), id)
	assert.Equal(t, sql.ErrNoRows, err)
	assert.Equal(t, 2, invalidator.calls)
}

func TestDeleteDoctorForeignHospital(t *testing.T) {
	svc, doctors, _, hospitalID := newTestService()

	id, err := svc.AddDoctor(context.Background(), hospitalID, addDoctorRequest())
	require.NoError(t, err)

	err = svc.DeleteDoctor(context.Background(), uuid.New(), id)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.KindForbidden))

	// The roster is untouched.
	_, err = doctors.Get(context.Background(), id)
	assert.NoError(t, err)
}

func TestDeleteDoctorUnknown(t *testing.T) {
	svc, _, _, hospitalID := newTestService()

	err := svc.DeleteDoctor(context.Background(), hospitalID, uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.KindNotFound))
}
