package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending  AppointmentStatus = "pending"
	AppointmentStatusApproved AppointmentStatus = "approved"
	AppointmentStatusRejected AppointmentStatus = "rejected"
)

// Terminal reports whether the status can never change again. A rejected
// appointment frees its slot; pending and approved appointments hold it.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentStatusApproved || s == AppointmentStatusRejected
}

type AppointmentMode string

const (
	AppointmentModeInPerson AppointmentMode = "in-person"
	AppointmentModeVideo    AppointmentMode = "video"
)

// StatusDecision is the hospital's verdict on a pending appointment.
type StatusDecision string

const (
	DecisionAccepted StatusDecision = "Accepted"
	DecisionRejected StatusDecision = "Rejected"
)

// Appointment is one request to occupy a doctor's slot. PatientName and
// Specialization are snapshots of booking-time facts; the live doctor and
// hospital records may have moved on since.
type Appointment struct {
	Base
	PatientID      uuid.UUID         `db:"patient_id" json:"patient_id"`
	PatientName    string            `db:"patient_name" json:"patient_name"`
	Problem        string            `db:"problem" json:"problem"`
	Specialization string            `db:"specialization" json:"specialization"`
	HospitalID     uuid.UUID         `db:"hospital_id" json:"hospital_id"`
	DoctorID       uuid.UUID         `db:"doctor_id" json:"doctor_id"`
	Date           time.Time         `db:"date" json:"date"`
	Time           string            `db:"time" json:"time"`
	Mode           AppointmentMode   `db:"mode" json:"mode"`
	Status         AppointmentStatus `db:"status" json:"status"`
}

type BookAppointmentRequest struct {
	PatientName    string          `json:"patientName" binding:"required"`
	Problem        string          `json:"problem" binding:"required"`
	Specialization string          `json:"specialization" binding:"required"`
	HospitalID     uuid.UUID       `json:"hospitalId" binding:"required"`
	DoctorID       uuid.UUID       `json:"doctorId" binding:"required"`
	Date           string          `json:"date" binding:"required"`
	Time           string          `json:"time" binding:"required"`
	Mode           AppointmentMode `json:"appointmentType" binding:"required,oneof=in-person video"`
}

type UpdateStatusRequest struct {
	Status StatusDecision `json:"status" binding:"required"`
}

// PatientAppointmentView is the patient-facing projection of a booking.
type PatientAppointmentView struct {
	HospitalName   string            `db:"hospital_name" json:"hospitalName"`
	Specialization string            `db:"specialization" json:"specialization"`
	DoctorName     string            `db:"doctor_name" json:"doctorName"`
	Date           string            `db:"date" json:"date"`
	Time           string            `db:"time" json:"time"`
	Status         AppointmentStatus `db:"status" json:"status"`
}

// HospitalAppointmentView is what a hospital sees when triaging requests.
type HospitalAppointmentView struct {
	ID             uuid.UUID         `db:"id" json:"id"`
	PatientName    string            `db:"patient_name" json:"patientName"`
	DoctorName     string            `db:"doctor_name" json:"doctorName"`
	Specialization string            `db:"specialization" json:"specialization"`
	Date           string            `db:"date" json:"date"`
	Time           string            `db:"time" json:"time"`
	Status         AppointmentStatus `db:"status" json:"status"`
}

// DoctorAppointmentView lists a doctor's confirmed bookings.
type DoctorAppointmentView struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PatientName string    `db:"patient_name" json:"patientName"`
	Date        string    `db:"date" json:"date"`
	Time        string    `db:"time" json:"time"`
	Reason      string    `db:"problem" json:"reason"`
	Status      string    `db:"-" json:"status"`
}
