package directory

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/carelink/booking-api/internal/model"
	"github.com/carelink/booking-api/internal/repository"
	"github.com/carelink/booking-api/pkg/errors"
)

const (
	cacheTTL     = time.Minute
	cacheCleanup = 5 * time.Minute
)

// Service serves the public read-through directory: hospitals, offered
// specializations, and doctor rosters. No invariant lives here, so reads
// sit behind a short-TTL cache that staffing changes flush.
type Service struct {
	hospitalRepo repository.HospitalRepository
	doctorRepo   repository.DoctorRepository
	cache        *gocache.Cache
}

func NewService(hospitalRepo repository.HospitalRepository, doctorRepo repository.DoctorRepository) *Service {
	return &Service{
		hospitalRepo: hospitalRepo,
		doctorRepo:   doctorRepo,
		cache:        gocache.New(cacheTTL, cacheCleanup),
	}
}

// Invalidate flushes all cached directory reads.
func (s *Service) Invalidate() {
	s.cache.Flush()
}

func (s *Service) AllSpecializations(ctx context.Context) ([]string, error) {
	const key = "specializations"
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]string), nil
	}

	specializations, err := s.doctorRepo.DistinctSpecializations(ctx)
	if err != nil {
		return nil, errors.Storage(err)
	}
	s.cache.SetDefault(key, specializations)
	return specializations, nil
}

func (s *Service) AllHospitals(ctx context.Context) ([]model.HospitalSummary, error) {
	const key = "hospitals"
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]model.HospitalSummary), nil
	}

	hospitals, err := s.hospitalRepo.List(ctx)
	if err != nil {
		return nil, errors.Storage(err)
	}
	summaries := summarizeHospitals(hospitals)
	s.cache.SetDefault(key, summaries)
	return summaries, nil
}

func (s *Service) HospitalsBySpecialization(ctx context.Context, specialization string) ([]model.HospitalSummary, error) {
	key := "hospitals:" + specialization
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]model.HospitalSummary), nil
	}

	hospitals, err := s.hospitalRepo.ListBySpecialization(ctx, specialization)
	if err != nil {
		return nil, errors.Storage(err)
	}
	summaries := summarizeHospitals(hospitals)
	s.cache.SetDefault(key, summaries)
	return summaries, nil
}

// SpecializationsByHospital derives the offered set from the hospital's
// current roster rather than the denormalized hospital column.
func (s *Service) SpecializationsByHospital(ctx context.Context, hospitalID uuid.UUID) ([]string, error) {
	key := "specializations:" + hospitalID.String()
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]string), nil
	}

	if _, err := s.hospitalRepo.Get(ctx, hospitalID); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("Hospital", err)
		}
		return nil, errors.Storage(err)
	}

	specializations, err := s.doctorRepo.DistinctSpecializationsByHospital(ctx, hospitalID)
	if err != nil {
		return nil, errors.Storage(err)
	}
	s.cache.SetDefault(key, specializations)
	return specializations, nil
}

func (s *Service) DoctorsByHospitalAndSpecialization(ctx context.Context, hospitalID uuid.UUID, specialization string) ([]model.DoctorSummary, error) {
	key := fmt.Sprintf("doctors:%s:%s", hospitalID, specialization)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]model.DoctorSummary), nil
	}

	doctors, err := s.doctorRepo.ListByHospitalAndSpecialization(ctx, hospitalID, specialization)
	if err != nil {
		return nil, errors.Storage(err)
	}

	summaries := make([]model.DoctorSummary, 0, len(doctors))
	for _, d := range doctors {
		summaries = append(summaries, d.Summary())
	}
	s.cache.SetDefault(key, summaries)
	return summaries, nil
}

func summarizeHospitals(hospitals []*model.Hospital) []model.HospitalSummary {
	summaries := make([]model.HospitalSummary, 0, len(hospitals))
	for _, h := range hospitals {
		summaries = append(summaries, h.Summary())
	}
	return summaries
}
