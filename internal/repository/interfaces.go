package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/carelink/booking-api/internal/model"
)

// ErrSlotTaken is returned by AppointmentRepository.Create when the
// storage-level uniqueness guard rejects a second non-terminal booking
// for the same (hospital, doctor, date, time).
var ErrSlotTaken = errors.New("time slot already booked")

// All repository interfaces in one file
type (
	// AppointmentRepository is the only writer of appointment state.
	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		// BookedSlots returns the time labels held by non-terminal
		// appointments for the doctor+hospital+date.
		BookedSlots(ctx context.Context, hospitalID, doctorID uuid.UUID, date time.Time) ([]string, error)
		SlotTaken(ctx context.Context, hospitalID, doctorID uuid.UUID, date time.Time, timeLabel string) (bool, error)
		// UpdateStatus transitions a pending appointment; it reports false
		// when the row exists but is no longer pending.
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) (bool, error)
		ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.PatientAppointmentView, error)
		ListForHospital(ctx context.Context, hospitalID uuid.UUID) ([]*model.HospitalAppointmentView, error)
		ListApprovedForDoctor(ctx context.Context, doctorID uuid.UUID, dayStart, dayEnd *time.Time) ([]*model.DoctorAppointmentView, error)
		ApprovedPatientIDs(ctx context.Context, doctorID uuid.UUID, dayStart, dayEnd *time.Time) ([]uuid.UUID, error)
	}

	HospitalRepository interface {
		Create(ctx context.Context, hospital *model.Hospital) error
		Get(ctx context.Context, id uuid.UUID) (*model.Hospital, error)
		GetByEmail(ctx context.Context, email string) (*model.Hospital, error)
		List(ctx context.Context) ([]*model.Hospital, error)
		ListBySpecialization(ctx context.Context, specialization string) ([]*model.Hospital, error)
	}

	DoctorRepository interface {
		// Create inserts the doctor and unions their specialization into
		// the hospital's offered set in one transaction.
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
		GetByEmail(ctx context.Context, email string) (*model.Doctor, error)
		ListByHospital(ctx context.Context, hospitalID uuid.UUID) ([]*model.Doctor, error)
		ListByHospitalAndSpecialization(ctx context.Context, hospitalID uuid.UUID, specialization string) ([]*model.Doctor, error)
		Delete(ctx context.Context, id uuid.UUID) error
		DistinctSpecializations(ctx context.Context) ([]string, error)
		DistinctSpecializationsByHospital(ctx context.Context, hospitalID uuid.UUID) ([]string, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		GetByEmail(ctx context.Context, email string) (*model.Patient, error)
		GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Patient, error)
		AddHealthRecord(ctx context.Context, record *model.HealthRecord) error
		ListHealthRecords(ctx context.Context, patientID uuid.UUID) ([]*model.HealthRecord, error)
		GetHealthRecord(ctx context.Context, patientID, recordID uuid.UUID) (*model.HealthRecord, error)
		DeleteHealthRecord(ctx context.Context, patientID, recordID uuid.UUID) error
	}
)
