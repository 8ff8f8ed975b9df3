package directory

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

type countingHospitalRepo struct {
	hospitals map[uuid.UUID]*model.Hospital
	listCalls int
}

func (r *countingHospitalRepo) Create(context.Context, *model.Hospital) error { return nil }

func (r *countingHospitalRepo) Get(_ context.Context, id uuid.UUID) (*model.Hospital, error) {
	if h, ok := r.hospitals[id]; ok {
		return h, nil
	}
	return nil, sql.ErrNoRows
}

func (r *countingHospitalRepo) GetByEmail(context.Context, string) (*model.Hospital, error) {
	return nil, sql.ErrNoRows
}

func (r *countingHospitalRepo) List(context.Context) ([]*model.Hospital, error) {
	r.listCalls++
	var out []*model.Hospital
	for _, h := range r.hospitals {
		out = append(out, h)
	}
	return out, nil
}

func (r *countingHospitalRepo) ListBySpecialization(_ context.Context, specialization string) ([]*model.Hospital, error) {
	var out []*model.Hospital
	for _, h := range r.hospitals {
		if h.OffersSpecialization(specialization) {
			out = append(out, h)
		}
	}
	return out, nil
}

type countingDoctorRepo struct {
	doctors       map[uuid.UUID]*model.Doctor
	distinctCalls int
}

func (r *countingDoctorRepo) Create(context.Context, *model.Doctor) error { return nil }
func (r *countingDoctorRepo) Get(context.Context, uuid.UUID) (*model.Doctor, error) {
	return nil, sql.ErrNoRows
}
func (r *countingDoctorRepo) GetByEmail(context.Context, string) (*model.Doctor, error) {
	return nil, sql.ErrNoRows
}
func (r *countingDoctorRepo) ListByHospital(context.Context, uuid.UUID) ([]*model.Doctor, error) {
	return nil, nil
}

func (r *countingDoctorRepo) ListByHospitalAndSpecialization(_ context.Context, hospitalID uuid.UUID, specialization string) ([]*model.Doctor, error) {
	var out []*model.Doctor
	for _, d := range r.doctors {
		if d.HospitalID == hospitalID && d.Specialization == specialization {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *countingDoctorRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (r *countingDoctorRepo) DistinctSpecializations(context.Context) ([]string, error) {
	r.distinctCalls++
	seen := make(map[string]bool)
	var out []string
	for _, d := range r.doctors {
		if !seen[d.Specialization] {
			seen[d.Specialization] = true
			out = append(out, d.Specialization)
		}
	}
	return out, nil
}

func (r *countingDoctorRepo) DistinctSpecializationsByHospital(_ context.Context, hospitalID uuid.UUID) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, d := range r.doctors {
		if d.HospitalID == hospitalID && !seen[d.Specialization] {
			seen[d.Specialization] = true
			out = append(out, d.Specialization)
		}
	}
	return out, nil
}

func newDirectory() (*Service, *countingHospitalRepo, *countingDoctorRepo, uuid.UUID) {
	hospitalID := uuid.New()
	hospitals := &countingHospitalRepo{hospitals: map[uuid.UUID]*model.Hospital{
		hospitalID: {
			Base:            model.Base{ID: hospitalID},
			HospitalName:    "City General",
			Specializations: []string{"Cardiology"},
			Rating:          4.5,
		},
	}}
	doctorID := uuid.New()
	doctors := &countingDoctorRepo{doctors: map[uuid.UUID]*model.Doctor{
		doctorID: {
			Base:           model.Base{ID: doctorID},
			FullName:       "Dr. Asha Rao",
			HospitalID:     hospitalID,
			Specialization: "Cardiology",
		},
	}}
	return NewService(hospitals, doctors), hospitals, doctors, hospitalID
}

func TestAllHospitalsCaches(t *testing.T) {
	svc, hospitals, _, _ := newDirectory()

	first, err := svc.AllHospitals(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "City General", first[0].Name)

	_, err = svc.AllHospitals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, hospitals.listCalls)
}

func TestInvalidateFlushesCache(t *testing.T) {
	svc, hospitals, _, _ := newDirectory()

	_, err := svc.AllHospitals(context.Background())
	require.NoError(t, err)

	svc.Invalidate()

	_, err = svc.AllHospitals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, hospitals.listCalls)
}

func TestAllSpecializationsCaches(t *testing.T) {
	svc, _, doctors, _ := newDirectory()

	specs, err := svc.AllSpecializations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Cardiology"}, specs)

	_, err = svc.AllSpecializations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, doctors.distinctCalls)
}

func TestHospitalsBySpecialization(t *testing.T) {
	svc, _, _, _ := newDirectory()

	matches, err := svc.HospitalsBySpecialization(context.Background(), "Cardiology")
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	none, err := svc.HospitalsBySpecialization(context.Background(), "Dermatology")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSpecializationsByHospital(t *testing.T) {
	svc, _, _, hospitalID := newDirectory()

	specs, err := svc.SpecializationsByHospital(context.Background(), hospitalID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cardiology"}, specs)

	_, err = svc.SpecializationsByHospital(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.KindNotFound))
}

func TestDoctorsByHospitalAndSpecialization(t *testing.T) {
	svc, _, _, hospitalID := newDirectory()

	matches, err := svc.DoctorsByHospitalAndSpecialization(context.Background(), hospitalID, "Cardiology")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Dr. Asha Rao", matches[0].Name)

	none, err := svc.DoctorsByHospitalAndSpecialization(context.Background(), hospitalID, "Neurology")
	require.NoError(t, err)
	assert.Empty(t, none)
}
