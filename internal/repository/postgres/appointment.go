package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/carelink/booking-api/internal/model"
	"github.com/carelink/booking-api/internal/repository"
)

const uniqueViolation = "23505"

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{BaseRepository{db: db}}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, patient_id, patient_name, problem, specialization,
			hospital_id, doctor_id, date, time, mode, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	appointment.ID = uuid.New()
	appointment.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.PatientID,
		appointment.PatientName,
		appointment.Problem,
		appointment.Specialization,
		appointment.HospitalID,
		appointment.DoctorID,
		appointment.Date,
		appointment.Time,
		appointment.Mode,
		appointment.Status,
		appointment.CreatedAt,
	)
	if err != nil {
		// The partial unique index on open slots turns a lost race into a
		// clean conflict instead of a double booking.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return repository.ErrSlotTaken
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT id, patient_id, patient_name, problem, specialization,
			   hospital_id, doctor_id, date, time, mode, status, created_at
		FROM appointments
		WHERE id = $1
	`
	var appointment model.Appointment
	if err := r.db.GetContext(ctx, &appointment, query, id); err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) BookedSlots(ctx context.Context, hospitalID, doctorID uuid.UUID, date time.Time) ([]string, error) {
	query := `
		SELECT time FROM appointments
		WHERE hospital_id = $1 AND doctor_id = $2 AND date = $3
		AND status IN ('pending', 'approved')
	`
	var slots []string
	if err := r.db.SelectContext(ctx, &slots, query, hospitalID, doctorID, date); err != nil {
		return nil, fmt.Errorf("failed to get booked slots: %w", err)
	}
	return slots, nil
}

func (r *appointmentRepository) SlotTaken(ctx context.Context, hospitalID, doctorID uuid.UUID, date time.Time, timeLabel string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE hospital_id = $1 AND doctor_id = $2 AND date = $3 AND time = $4
			AND status IN ('pending', 'approved')
		)
	`
	var taken bool
	if err := r.db.GetContext(ctx, &taken, query, hospitalID, doctorID, date, timeLabel); err != nil {
		return false, fmt.Errorf("failed to check slot: %w", err)
	}
	return taken, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) (bool, error) {
	// Only pending rows transition; approved and rejected are terminal.
	query := `UPDATE appointments SET status = $1 WHERE id = $2 AND status = 'pending'`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return false, fmt.Errorf("failed to update appointment status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows == 1, nil
}

func (r *appointmentRepository) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.PatientAppointmentView, error) {
	query := `
		SELECT h.hospital_name, d.specialization, d.full_name AS doctor_name,
			   to_char(a.date, 'YYYY-MM-DD') AS date, a.time, a.status
		FROM appointments a
		JOIN hospitals h ON h.id = a.hospital_id
		JOIN doctors d ON d.id = a.doctor_id
		WHERE a.patient_id = $1
		ORDER BY a.created_at ASC
	`
	var views []*model.PatientAppointmentView
	if err := r.db.SelectContext(ctx, &views, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list patient appointments: %w", err)
	}
	return views, nil
}

func (r *appointmentRepository) ListForHospital(ctx context.Context, hospitalID uuid.UUID) ([]*model.HospitalAppointmentView, error) {
	query := `
		SELECT a.id, a.patient_name, d.full_name AS doctor_name, a.specialization,
			   to_char(a.date, 'YYYY-MM-DD') AS date, a.time, a.status
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		JOIN doctors d ON d.id = a.doctor_id
		WHERE a.hospital_id = $1
		ORDER BY a.created_at ASC
	`
	var views []*model.HospitalAppointmentView
	if err := r.db.SelectContext(ctx, &views, query, hospitalID); err != nil {
		return nil, fmt.Errorf("failed to list hospital appointments: %w", err)
	}
	return views, nil
}

func (r *appointmentRepository) ListApprovedForDoctor(ctx context.Context, doctorID uuid.UUID, dayStart, dayEnd *time.Time) ([]*model.DoctorAppointmentView, error) {
	query := `
		SELECT a.id, a.patient_name, to_char(a.date, 'YYYY-MM-DD') AS date, a.time, a.problem
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		JOIN hospitals h ON h.id = a.hospital_id
		WHERE a.doctor_id = $1 AND a.status = 'approved'
	`
	args := []interface{}{doctorID}
	if dayStart != nil && dayEnd != nil {
		query += " AND a.date >= $2 AND a.date <= $3"
		args = append(args, *dayStart, *dayEnd)
	}
	query += " ORDER BY a.date ASC, a.time ASC"

	var views []*model.DoctorAppointmentView
	if err := r.db.SelectContext(ctx, &views, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list doctor appointments: %w", err)
	}
	return views, nil
}

func (r *appointmentRepository) ApprovedPatientIDs(ctx context.Context, doctorID uuid.UUID, dayStart, dayEnd *time.Time) ([]uuid.UUID, error) {
	query := `
		SELECT DISTINCT patient_id FROM appointments
		WHERE doctor_id = $1 AND status = 'approved'
	`
	args := []interface{}{doctorID}
	if dayStart != nil && dayEnd != nil {
		query += " AND date >= $2 AND date <= $3"
		args = append(args, *dayStart, *dayEnd)
	}

	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("failed to resolve patients with approved appointments: %w", err)
	}
	return ids, nil
}
