package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/carelink/booking-api/internal/model"
	"github.com/carelink/booking-api/internal/repository"
)

type doctorRepository struct {
	BaseRepository
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{BaseRepository{db: db}}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	doctor.ID = uuid.New()
	doctor.CreatedAt = time.Now()

	// Doctor insert and the hospital's specialization union commit
	// together; a doctor must never exist whose specialization the
	// hospital does not offer.
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		insert := `
			INSERT INTO doctors (id, full_name, email, password_hash, hospital_id,
				specialization, experience, rating, image, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`
		if _, err := tx.ExecContext(ctx, insert,
			doctor.ID,
			doctor.FullName,
			doctor.Email,
			doctor.PasswordHash,
			doctor.HospitalID,
			doctor.Specialization,
			doctor.Experience,
			doctor.Rating,
			doctor.Image,
			doctor.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to create doctor: %w", err)
		}

		union := `
			UPDATE hospitals
			SET specializations = array_append(specializations, $1)
			WHERE id = $2 AND NOT ($1 = ANY(specializations))
		`
		if _, err := tx.ExecContext(ctx, union, doctor.Specialization, doctor.HospitalID); err != nil {
			return fmt.Errorf("failed to extend hospital specializations: %w", err)
		}
		return nil
	})
}

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	query := `SELECT * FROM doctors WHERE id = $1`
	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, id); err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByEmail(ctx context.Context, email string) (*model.Doctor, error) {
	query := `SELECT * FROM doctors WHERE email = $1`
	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, email); err != nil {
		return nil, fmt.Errorf("failed to get doctor by email: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) ListByHospital(ctx context.Context, hospitalID uuid.UUID) ([]*model.Doctor, error) {
	query := `SELECT * FROM doctors WHERE hospital_id = $1 ORDER BY full_name ASC`
	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query, hospitalID); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) ListByHospitalAndSpecialization(ctx context.Context, hospitalID uuid.UUID, specialization string) ([]*model.Doctor, error) {
	query := `
		SELECT * FROM doctors
		WHERE hospital_id = $1 AND specialization = $2
		ORDER BY full_name ASC
	`
	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query, hospitalID, specialization); err != nil {
		return nil, fmt.Errorf("failed to list doctors by specialization: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM doctors WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("doctor not found")
	}
	return nil
}

func (r *doctorRepository) DistinctSpecializations(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT specialization FROM doctors
		WHERE btrim(specialization) <> ''
		ORDER BY specialization ASC
	`
	var specializations []string
	if err := r.db.SelectContext(ctx, &specializations, query); err != nil {
		return nil, fmt.Errorf("failed to list specializations: %w", err)
	}
	return specializations, nil
}

func (r *doctorRepository) DistinctSpecializationsByHospital(ctx context.Context, hospitalID uuid.UUID) ([]string, error) {
	query := `
		SELECT DISTINCT specialization FROM doctors
		WHERE hospital_id = $1 AND btrim(specialization) <> ''
		ORDER BY specialization ASC
	`
	var specializations []string
	if err := r.db.SelectContext(ctx, &specializations, query, hospitalID); err != nil {
		return nil, fmt.Errorf("failed to list hospital specializations: %w", err)
	}
	return specializations, nil
}
