package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/carelink/booking-api/internal/model"
	"github.com/carelink/booking-api/internal/repository"
)

type patientRepository struct {
	BaseRepository
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{BaseRepository{db: db}}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (id, full_name, email, password_hash, contact_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	patient.ID = uuid.New()
	patient.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		patient.ID,
		patient.FullName,
		patient.Email,
		patient.PasswordHash,
		patient.ContactNumber,
		patient.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	query := `SELECT * FROM patients WHERE id = $1`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, id); err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) GetByEmail(ctx context.Context, email string) (*model.Patient, error) {
	query := `SELECT * FROM patients WHERE email = $1`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, email); err != nil {
		return nil, fmt.Errorf("failed to get patient by email: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Patient, error) {
	query := `SELECT * FROM patients WHERE id = ANY($1) ORDER BY full_name ASC`
	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("failed to get patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) AddHealthRecord(ctx context.Context, record *model.HealthRecord) error {
	query := `
		INSERT INTO health_records (id, patient_id, medical_condition, months_since,
			current_medications, date, file_name, file_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	record.ID = uuid.New()
	record.Date = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.PatientID,
		record.MedicalCondition,
		record.MonthsSince,
		record.CurrentMedications,
		record.Date,
		record.FileName,
		record.FilePath,
	)
	if err != nil {
		return fmt.Errorf("failed to add health record: %w", err)
	}
	return nil
}

func (r *patientRepository) ListHealthRecords(ctx context.Context, patientID uuid.UUID) ([]*model.HealthRecord, error) {
	query := `SELECT * FROM health_records WHERE patient_id = $1 ORDER BY date ASC`
	var records []*model.HealthRecord
	if err := r.db.SelectContext(ctx, &records, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list health records: %w", err)
	}
	return records, nil
}

func (r *patientRepository) GetHealthRecord(ctx context.Context, patientID, recordID uuid.UUID) (*model.HealthRecord, error) {
	query := `SELECT * FROM health_records WHERE id = $1 AND patient_id = $2`
	var record model.HealthRecord
	if err := r.db.GetContext(ctx, &record, query, recordID, patientID); err != nil {
		return nil, fmt.Errorf("failed to get health record: %w", err)
	}
	return &record, nil
}

func (r *patientRepository) DeleteHealthRecord(ctx context.Context, patientID, recordID uuid.UUID) error {
	query := `DELETE FROM health_records WHERE id = $1 AND patient_id = $2`
	result, err := r.db.ExecContext(ctx, query, recordID, patientID)
	if err != nil {
		return fmt.Errorf("failed to delete health record: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("health record not found")
	}
	return nil
}
