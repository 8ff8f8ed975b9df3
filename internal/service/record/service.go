package record

import (
	"context"
	"database/sql"
	stderrors "errors"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/carelink/booking-api/internal/model"
	"github.com/carelink/booking-api/internal/repository"
	"github.com/carelink/booking-api/pkg/errors"
	"github.com/carelink/booking-api/pkg/metrics"
	"github.com/carelink/booking-api/pkg/storage"
)

// Service owns the patient-side health-record operations and the
// read-only correlation between a doctor's approved appointments and the
// corresponding patients' records.
type Service struct {
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	files           storage.FileStore
	metrics         *metrics.Metrics
}

func NewService(appointmentRepo repository.AppointmentRepository, patientRepo repository.PatientRepository, files storage.FileStore, m *metrics.Metrics) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		files:           files,
		metrics:         m,
	}
}

// PatientRecordsForDoctor resolves the deduplicated set of patients with
// an approved appointment for the doctor (optionally one calendar day)
// and projects each patient's record collection. It never mutates
// appointments or records.
func (s *Service) PatientRecordsForDoctor(ctx context.Context, doctorID uuid.UUID, dateStr string) ([]model.PatientRecords, error) {
	var dayStart, dayEnd *time.Time
	if dateStr != "" {
		date, err := model.ParseDate(dateStr)
		if err != nil {
			return nil, errors.InvalidRequest("Invalid date format. Use YYYY-MM-DD.")
		}
		start, end := model.DayBounds(date)
		dayStart, dayEnd = &start, &end
	}

	patientIDs, err := s.appointmentRepo.ApprovedPatientIDs(ctx, doctorID, dayStart, dayEnd)
	if err != nil {
		return nil, errors.Storage(err)
	}
	if len(patientIDs) == 0 {
		return []model.PatientRecords{}, nil
	}

	patients, err := s.patientRepo.GetByIDs(ctx, patientIDs)
	if err != nil {
		return nil, errors.Storage(err)
	}

	result := make([]model.PatientRecords, 0, len(patients))
	for _, patient := range patients {
		records, err := s.patientRepo.ListHealthRecords(ctx, patient.ID)
		if err != nil {
			return nil, errors.Storage(err)
		}

		projections := make([]model.HealthRecordProjection, 0, len(records))
		for _, r := range records {
			projections = append(projections, s.project(r))
		}
		result = append(result, model.PatientRecords{
			ID:            patient.ID.String(),
			Username:      patient.FullName,
			HealthRecords: projections,
		})
	}

	if s.metrics != nil {
		s.metrics.RecordsProjected.Inc()
	}
	return result, nil
}

func (s *Service) project(r *model.HealthRecord) model.HealthRecordProjection {
	report := model.NoReportMarker
	if r.FilePath != nil && *r.FilePath != "" {
		report = s.files.URL(*r.FilePath)
	}
	return model.HealthRecordProjection{
		Condition:        r.MedicalCondition,
		MonthsSinceStart: r.MonthsSince,
		Medications:      model.SplitMedications(r.CurrentMedications),
		Report:           report,
	}
}

// Profile returns the patient's account details.
func (s *Service) Profile(ctx context.Context, patientID uuid.UUID) (*model.Patient, error) {
	patient, err := s.patientRepo.Get(ctx, patientID)
	if err != nil {
		return nil, classify(err, "Patient")
	}
	return patient, nil
}

func (s *Service) ListHealthRecords(ctx context.Context, patientID uuid.UUID) ([]model.HealthRecordResponse, error) {
	if _, err := s.patientRepo.Get(ctx, patientID); err != nil {
		return nil, classify(err, "Patient")
	}

	records, err := s.patientRepo.ListHealthRecords(ctx, patientID)
	if err != nil {
		return nil, errors.Storage(err)
	}

	responses := make([]model.HealthRecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, toResponse(r))
	}
	return responses, nil
}

// AddHealthRecord stores a new record, optionally with an uploaded
// report file. If the insert fails after the file landed on disk, the
// file is removed so no unreferenced blob leaks.
func (s *Service) AddHealthRecord(ctx context.Context, patientID uuid.UUID, req *model.AddHealthRecordRequest, file *multipart.FileHeader) (*model.HealthRecordResponse, error) {
	if _, err := s.patientRepo.Get(ctx, patientID); err != nil {
		return nil, classify(err, "Patient")
	}

	record := &model.HealthRecord{
		PatientID:          patientID,
		MedicalCondition:   req.MedicalCondition,
		MonthsSince:        req.MonthsSince,
		CurrentMedications: req.CurrentMedications,
	}

	if file != nil {
		path, err := s.files.Save(file)
		if err != nil {
			return nil, errors.InvalidRequest(err.Error())
		}
		record.FileName = &file.Filename
		record.FilePath = &path
	}

	if err := s.patientRepo.AddHealthRecord(ctx, record); err != nil {
		if record.FilePath != nil {
			if rmErr := s.files.Remove(*record.FilePath); rmErr != nil {
				log.Error().Err(rmErr).Str("path", *record.FilePath).Msg("failed to clean up orphaned upload")
			}
		}
		return nil, errors.Storage(err)
	}

	resp := toResponse(record)
	return &resp, nil
}

func (s *Service) DeleteHealthRecord(ctx context.Context, patientID, recordID uuid.UUID) error {
	record, err := s.patientRepo.GetHealthRecord(ctx, patientID, recordID)
	if err != nil {
		return classify(err, "Health record")
	}

	if record.FilePath != nil && *record.FilePath != "" {
		if err := s.files.Remove(*record.FilePath); err != nil {
			log.Error().Err(err).Str("path", *record.FilePath).Msg("failed to remove stored report file")
		}
	}

	if err := s.patientRepo.DeleteHealthRecord(ctx, patientID, recordID); err != nil {
		return errors.Storage(err)
	}
	return nil
}

func toResponse(r *model.HealthRecord) model.HealthRecordResponse {
	return model.HealthRecordResponse{
		ID:                 r.ID.String(),
		MedicalCondition:   r.MedicalCondition,
		MonthsSince:        r.MonthsSince,
		CurrentMedications: r.CurrentMedications,
		Date:               r.Date.Format(model.DateLayout),
		FileName:           r.FileName,
		FilePath:           r.FilePath,
	}
}

func classify(err error, resource string) error {
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.NotFound(resource, err)
	}
	return errors.Storage(err)
}
