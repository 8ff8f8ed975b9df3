package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	Base
	FullName      string `db:"full_name" json:"fullName"`
	Email         string `db:"email" json:"email"`
	PasswordHash  string `db:"password_hash" json:"-"`
	ContactNumber string `db:"contact_number" json:"contactNumber"`
}

// HealthRecord is owned exclusively by its patient; doctors only ever see
// the read-only projection built by the record service.
type HealthRecord struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	PatientID          uuid.UUID `db:"patient_id" json:"-"`
	MedicalCondition   string    `db:"medical_condition" json:"medicalCondition"`
	MonthsSince        int       `db:"months_since" json:"monthsSince"`
	CurrentMedications string    `db:"current_medications" json:"currentMedications"`
	Date               time.Time `db:"date" json:"-"`
	FileName           *string   `db:"file_name" json:"fileName,omitempty"`
	FilePath           *string   `db:"file_path" json:"filePath,omitempty"`
}

type AddHealthRecordRequest struct {
	MedicalCondition   string `form:"medicalCondition" binding:"required"`
	MonthsSince        int    `form:"monthsSince" binding:"required"`
	CurrentMedications string `form:"currentMedications" binding:"required"`
}

// HealthRecordResponse is the patient-facing shape of a stored record.
type HealthRecordResponse struct {
	ID                 string  `json:"id"`
	MedicalCondition   string  `json:"medicalCondition"`
	MonthsSince        int     `json:"monthsSince"`
	CurrentMedications string  `json:"currentMedications"`
	Date               string  `json:"date"`
	FileName           *string `json:"fileName"`
	FilePath           *string `json:"filePath"`
}

// NoReportMarker is returned in place of a URL when a record carries no
// stored file.
const NoReportMarker = "No report available"

// HealthRecordProjection is the doctor-facing, read-only view.
type HealthRecordProjection struct {
	Condition        string   `json:"condition"`
	MonthsSinceStart int      `json:"monthsSinceStart"`
	Medications      []string `json:"medications"`
	Report           string   `json:"report"`
}

// PatientRecords pairs a patient with their projected record collection.
type PatientRecords struct {
	ID            string                   `json:"id"`
	Username      string                   `json:"username"`
	HealthRecords []HealthRecordProjection `json:"healthRecords"`
}

// SplitMedications splits the stored comma-separated medication list into
// an ordered sequence.
func SplitMedications(medications string) []string {
	return strings.Split(medications, ", ")
}
