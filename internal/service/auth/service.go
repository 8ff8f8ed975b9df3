package auth

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/carelink/booking-api/internal/model"
	"github.com/carelink/booking-api/internal/repository"
	"github.com/carelink/booking-api/pkg/auth"
	"github.com/carelink/booking-api/pkg/errors"
)

const bcryptCost = 12

const (
	defaultHospitalImage = "https://images.unsplash.com/photo-1587351021759-3e566b6af7cc"
)

// Service is the credential-issuance collaborator: it registers actors
// and mints the signed identity claims the guard middleware verifies.
type Service struct {
	patientRepo  repository.PatientRepository
	doctorRepo   repository.DoctorRepository
	hospitalRepo repository.HospitalRepository
	tokens       auth.TokenService
}

func NewService(
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	hospitalRepo repository.HospitalRepository,
	tokens auth.TokenService,
) *Service {
	return &Service{
		patientRepo:  patientRepo,
		doctorRepo:   doctorRepo,
		hospitalRepo: hospitalRepo,
		tokens:       tokens,
	}
}

func (s *Service) RegisterPatient(ctx context.Context, req *model.RegisterPatientRequest) (uuid.UUID, error) {
	if existing, _ := s.patientRepo.GetByEmail(ctx, req.Email); existing != nil {
		return uuid.Nil, errors.InvalidRequest("Patient already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return uuid.Nil, errors.Storage(err)
	}

	patient := &model.Patient{
		FullName:      req.FullName,
		Email:         req.Email,
		PasswordHash:  string(hash),
		ContactNumber: req.ContactNumber,
	}
	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return uuid.Nil, errors.Storage(err)
	}
	return patient.ID, nil
}

func (s *Service) RegisterHospital(ctx context.Context, req *model.RegisterHospitalRequest) (uuid.UUID, error) {
	if existing, _ := s.hospitalRepo.GetByEmail(ctx, req.Email); existing != nil {
		return uuid.Nil, errors.InvalidRequest("Hospital already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return uuid.Nil, errors.Storage(err)
	}

	hospital := &model.Hospital{
		HospitalName:    req.HospitalName,
		Email:           req.Email,
		PasswordHash:    string(hash),
		Specializations: []string{},
		Image:           req.Image,
		Location:        req.Location,
		Rating:          4.5,
	}
	if hospital.Image == "" {
		hospital.Image = defaultHospitalImage
	}
	if hospital.Location == "" {
		hospital.Location = "Unknown"
	}
	if err := s.hospitalRepo.Create(ctx, hospital); err != nil {
		return uuid.Nil, errors.Storage(err)
	}
	return hospital.ID, nil
}

func (s *Service) LoginPatient(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	patient, err := s.patientRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, invalidCredentials(err)
	}
	return s.login(patient.ID, model.RolePatient, patient.PasswordHash, req.Password)
}

func (s *Service) LoginDoctor(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	doctor, err := s.doctorRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, invalidCredentials(err)
	}
	return s.login(doctor.ID, model.RoleDoctor, doctor.PasswordHash, req.Password)
}

func (s *Service) LoginHospital(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	hospital, err := s.hospitalRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, invalidCredentials(err)
	}
	return s.login(hospital.ID, model.RoleHospital, hospital.PasswordHash, req.Password)
}

func (s *Service) login(subjectID uuid.UUID, role model.Role, hash, password string) (*model.TokenResponse, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, invalidCredentials(err)
	}

	token, err := s.tokens.GenerateToken(subjectID, role)
	if err != nil {
		return nil, errors.Storage(err)
	}
	return &model.TokenResponse{Token: token, SubjectID: subjectID}, nil
}

// invalidCredentials keeps the response identical for unknown emails and
// wrong passwords.
func invalidCredentials(err error) error {
	if err != nil && !stderrors.Is(err, sql.ErrNoRows) && !stderrors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return errors.Storage(err)
	}
	return errors.Unauthenticated("Invalid credentials", err)
}
