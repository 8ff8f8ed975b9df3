package hospital

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/carelink/booking-api/internal/model"
	"github.com/carelink/booking-api/internal/repository"
	"github.com/carelink/booking-api/pkg/errors"
)

const (
	bcryptCost         = 12
	defaultExperience  = "Not specified"
	defaultRating      = 4.0
	defaultDoctorImage = "https://images.unsplash.com/photo-1559839734-2b71ea197ec2"
)

// Invalidator drops cached directory reads after a staffing change.
type Invalidator interface {
	Invalidate()
}

// Service handles hospital staffing: adding and removing doctors and the
// one-way union of new specializations into the hospital's offered set.
type Service struct {
	doctorRepo   repository.DoctorRepository
	hospitalRepo repository.HospitalRepository
	directory    Invalidator
}

func NewService(doctorRepo repository.DoctorRepository, hospitalRepo repository.HospitalRepository, directory Invalidator) *Service {
	return &Service{
		doctorRepo:   doctorRepo,
		hospitalRepo: hospitalRepo,
		directory:    directory,
	}
}

// AddDoctor creates a doctor under the hospital's authority. The
// hospital's specializations set grows by union; it never shrinks.
func (s *Service) AddDoctor(ctx context.Context, hospitalID uuid.UUID, req *model.AddDoctorRequest) (uuid.UUID, error) {
	if existing, _ := s.doctorRepo.GetByEmail(ctx, req.Email); existing != nil {
		return uuid.Nil, errors.InvalidRequest("Doctor already exists")
	}

	if _, err := s.hospitalRepo.Get(ctx, hospitalID); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, errors.NotFound("Hospital", err)
		}
		return uuid.Nil, errors.Storage(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return uuid.Nil, errors.Storage(err)
	}

	doctor := &model.Doctor{
		FullName:       req.FullName,
		Email:          req.Email,
		PasswordHash:   string(hash),
		HospitalID:     hospitalID,
		Specialization: req.Specialization,
		Experience:     req.Experience,
		Rating:         req.Rating,
		Image:          req.Image,
	}
	if doctor.Experience == "" {
		doctor.Experience = defaultExperience
	}
	if doctor.Rating == 0 {
		doctor.Rating = defaultRating
	}
	if doctor.Image == "" {
		doctor.Image = defaultDoctorImage
	}

	if err := s.doctorRepo.Create(ctx, doctor); err != nil {
		return uuid.Nil, errors.Storage(err)
	}

	if s.directory != nil {
		s.directory.Invalidate()
	}
	return doctor.ID, nil
}

func (s *Service) ListDoctors(ctx context.Context, hospitalID uuid.UUID) ([]*model.Doctor, error) {
	doctors, err := s.doctorRepo.ListByHospital(ctx, hospitalID)
	if err != nil {
		return nil, errors.Storage(err)
	}
	return doctors, nil
}

// DeleteDoctor removes a doctor from the hospital's roster. The offered
// specializations set is deliberately left untouched.
func (s *Service) DeleteDoctor(ctx context.Context, hospitalID, doctorID uuid.UUID) error {
	doctor, err := s.doctorRepo.Get(ctx, doctorID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NotFound("Doctor", err)
		}
		return errors.Storage(err)
	}
	if doctor.HospitalID != hospitalID {
		return errors.Forbidden("Doctor does not belong to this hospital")
	}

	if err := s.doctorRepo.Delete(ctx, doctorID); err != nil {
		return errors.Storage(err)
	}

	if s.directory != nil {
		s.directory.Invalidate()
	}
	return nil
}
