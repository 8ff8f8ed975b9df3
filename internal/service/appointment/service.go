package appointment

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carelink/booking-api/internal/model"
	"github.com/carelink/booking-api/internal/repository"
	"github.com/carelink/booking-api/pkg/errors"
	"github.com/carelink/booking-api/pkg/lock"
	"github.com/carelink/booking-api/pkg/metrics"
)

// Service drives the appointment lifecycle: conflict-free booking and
// the one-way pending -> approved/rejected transition.
type Service struct {
	repo         repository.AppointmentRepository
	hospitalRepo repository.HospitalRepository
	doctorRepo   repository.DoctorRepository
	locker       lock.Locker
	metrics      *metrics.Metrics
}

func NewService(
	repo repository.AppointmentRepository,
	hospitalRepo repository.HospitalRepository,
	doctorRepo repository.DoctorRepository,
	locker lock.Locker,
	m *metrics.Metrics,
) *Service {
	return &Service{
		repo:         repo,
		hospitalRepo: hospitalRepo,
		doctorRepo:   doctorRepo,
		locker:       locker,
		metrics:      m,
	}
}

// Book creates a pending appointment for the patient, guaranteeing that
// no other non-terminal appointment holds the same slot.
func (s *Service) Book(ctx context.Context, patientID uuid.UUID, req *model.BookAppointmentRequest) (uuid.UUID, error) {
	date, err := model.ParseDate(req.Date)
	if err != nil {
		return uuid.Nil, errors.InvalidRequest("Invalid date format. Use YYYY-MM-DD.")
	}
	if !ValidSlot(req.Time) {
		return uuid.Nil, errors.InvalidRequest(fmt.Sprintf("invalid time slot %q", req.Time))
	}

	hospital, err := s.hospitalRepo.Get(ctx, req.HospitalID)
	if err != nil {
		return uuid.Nil, classify(err, "Hospital")
	}
	doctor, err := s.doctorRepo.Get(ctx, req.DoctorID)
	if err != nil {
		return uuid.Nil, classify(err, "Doctor")
	}

	if !hospital.OffersSpecialization(req.Specialization) || doctor.Specialization != req.Specialization {
		return uuid.Nil, errors.InvalidRequest("Specialization not available for this hospital or doctor")
	}

	// Critical section: the check-then-insert must be serialised per
	// slot; the partial unique index backstops lock holders that die
	// between check and commit.
	key := lock.SlotKey(req.HospitalID.String(), req.DoctorID.String(), req.Date, req.Time)
	release, err := s.locker.Acquire(ctx, key)
	if err != nil {
		return uuid.Nil, errors.Storage(err)
	}
	defer release()

	taken, err := s.repo.SlotTaken(ctx, req.HospitalID, req.DoctorID, date, req.Time)
	if err != nil {
		return uuid.Nil, errors.Storage(err)
	}
	if taken {
		s.countBooking("conflict")
		return uuid.Nil, errors.Conflict("Time slot already booked")
	}

	appointment := &model.Appointment{
		PatientID:      patientID,
		PatientName:    req.PatientName,
		Problem:        req.Problem,
		Specialization: req.Specialization,
		HospitalID:     req.HospitalID,
		DoctorID:       req.DoctorID,
		Date:           date,
		Time:           req.Time,
		Mode:           req.Mode,
		Status:         model.AppointmentStatusPending,
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		if stderrors.Is(err, repository.ErrSlotTaken) {
			s.countBooking("conflict")
			return uuid.Nil, errors.Conflict("Time slot already booked")
		}
		return uuid.Nil, errors.Storage(err)
	}

	s.countBooking("success")
	return appointment.ID, nil
}

// UpdateStatus applies the hospital's decision to a pending appointment.
// Approved and rejected are terminal; a second decision is a conflict.
func (s *Service) UpdateStatus(ctx context.Context, hospitalID, appointmentID uuid.UUID, decision model.StatusDecision) error {
	var target model.AppointmentStatus
	switch decision {
	case model.DecisionAccepted:
		target = model.AppointmentStatusApproved
	case model.DecisionRejected:
		target = model.AppointmentStatusRejected
	default:
		return errors.InvalidRequest(`Invalid status. Must be "Accepted" or "Rejected"`)
	}

	appointment, err := s.repo.Get(ctx, appointmentID)
	if err != nil {
		return classify(err, "Appointment")
	}
	if appointment.HospitalID != hospitalID {
		return errors.Forbidden("This appointment does not belong to your hospital")
	}

	ok, err := s.repo.UpdateStatus(ctx, appointmentID, target)
	if err != nil {
		return errors.Storage(err)
	}
	if !ok {
		return errors.Conflict("Appointment has already been finalized")
	}

	if s.metrics != nil {
		s.metrics.StatusDecisions.WithLabelValues(string(decision)).Inc()
	}
	return nil
}

// AvailableSlots recomputes the free labels for one doctor+hospital+date
// on every call; it is a pure read over committed appointment state.
func (s *Service) AvailableSlots(ctx context.Context, hospitalID, doctorID uuid.UUID, dateStr string) ([]string, error) {
	date, err := model.ParseDate(dateStr)
	if err != nil {
		return nil, errors.InvalidRequest("Invalid date format. Use YYYY-MM-DD.")
	}

	booked, err := s.repo.BookedSlots(ctx, hospitalID, doctorID, date)
	if err != nil {
		return nil, errors.Storage(err)
	}
	return subtractBooked(booked), nil
}

func (s *Service) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.PatientAppointmentView, error) {
	views, err := s.repo.ListForPatient(ctx, patientID)
	if err != nil {
		return nil, errors.Storage(err)
	}
	return views, nil
}

func (s *Service) ListForHospital(ctx context.Context, hospitalID uuid.UUID) ([]*model.HospitalAppointmentView, error) {
	views, err := s.repo.ListForHospital(ctx, hospitalID)
	if err != nil {
		return nil, errors.Storage(err)
	}
	return views, nil
}

// ListForDoctor returns the doctor's approved appointments, optionally
// restricted to one calendar day.
func (s *Service) ListForDoctor(ctx context.Context, doctorID uuid.UUID, dateStr string) ([]*model.DoctorAppointmentView, error) {
	dayStart, dayEnd, err := parseDayFilter(dateStr)
	if err != nil {
		return nil, err
	}

	views, err := s.repo.ListApprovedForDoctor(ctx, doctorID, dayStart, dayEnd)
	if err != nil {
		return nil, errors.Storage(err)
	}
	for _, v := range views {
		v.Status = "Confirmed"
	}
	return views, nil
}

func parseDayFilter(dateStr string) (*time.Time, *time.Time, error) {
	if dateStr == "" {
		return nil, nil, nil
	}
	date, err := model.ParseDate(dateStr)
	if err != nil {
		return nil, nil, errors.InvalidRequest("Invalid date format. Use YYYY-MM-DD.")
	}
	start, end := model.DayBounds(date)
	return &start, &end, nil
}

func (s *Service) countBooking(outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.BookingsTotal.WithLabelValues(outcome).Inc()
	if outcome == "conflict" {
		s.metrics.SlotConflicts.Inc()
	}
}

// classify maps a repository read error to the API taxonomy.
func classify(err error, resource string) error {
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.NotFound(resource, err)
	}
	return errors.Storage(err)
}
