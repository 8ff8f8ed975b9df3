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

type hospitalRepository struct {
	BaseRepository
}

func NewHospitalRepository(db *sqlx.DB) repository.HospitalRepository {
	return &hospitalRepository{BaseRepository{db: db}}
}

func (r *hospitalRepository) Create(ctx context.Context, hospital *model.Hospital) error {
	query := `
		INSERT INTO hospitals (id, hospital_name, email, password_hash, specializations, image, location, rating, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	hospital.ID = uuid.New()
	hospital.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		hospital.ID,
		hospital.HospitalName,
		hospital.Email,
		hospital.PasswordHash,
		hospital.Specializations,
		hospital.Image,
		hospital.Location,
		hospital.Rating,
		hospital.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create hospital: %w", err)
	}
	return nil
}

func (r *hospitalRepository) Get(ctx context.Context, id uuid.UUID) (*model.Hospital, error) {
	query := `SELECT * FROM hospitals WHERE id = $1`
	var hospital model.Hospital
	if err := r.db.GetContext(ctx, &hospital, query, id); err != nil {
		return nil, fmt.Errorf("failed to get hospital: %w", err)
	}
	return &hospital, nil
}

func (r *hospitalRepository) GetByEmail(ctx context.Context, email string) (*model.Hospital, error) {
	query := `SELECT * FROM hospitals WHERE email = $1`
	var hospital model.Hospital
	if err := r.db.GetContext(ctx, &hospital, query, email); err != nil {
		return nil, fmt.Errorf("failed to get hospital by email: %w", err)
	}
	return &hospital, nil
}

func (r *hospitalRepository) List(ctx context.Context) ([]*model.Hospital, error) {
	query := `SELECT * FROM hospitals ORDER BY hospital_name ASC`
	var hospitals []*model.Hospital
	if err := r.db.SelectContext(ctx, &hospitals, query); err != nil {
		return nil, fmt.Errorf("failed to list hospitals: %w", err)
	}
	return hospitals, nil
}

func (r *hospitalRepository) ListBySpecialization(ctx context.Context, specialization string) ([]*model.Hospital, error) {
	query := `SELECT * FROM hospitals WHERE $1 = ANY(specializations) ORDER BY hospital_name ASC`
	var hospitals []*model.Hospital
	if err := r.db.SelectContext(ctx, &hospitals, query, specialization); err != nil {
		return nil, fmt.Errorf("failed to list hospitals by specialization: %w", err)
	}
	return hospitals, nil
}
