package model

import (
	"github.com/google/uuid"
)

// Doctor's hospital affiliation and specialization are fixed at creation.
type Doctor struct {
	Base
	FullName       string    `db:"full_name" json:"fullName"`
	Email          string    `db:"email" json:"email"`
	PasswordHash   string    `db:"password_hash" json:"-"`
	HospitalID     uuid.UUID `db:"hospital_id" json:"hospitalId"`
	Specialization string    `db:"specialization" json:"specialization"`
	Experience     string    `db:"experience" json:"experience"`
	Rating         float64   `db:"rating" json:"rating"`
	Image          string    `db:"image" json:"image"`
}

type AddDoctorRequest struct {
	FullName       string  `json:"fullName" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	Password       string  `json:"password" binding:"required,min=8"`
	Specialization string  `json:"specialization" binding:"required"`
	Experience     string  `json:"experience"`
	Rating         float64 `json:"rating"`
	Image          string  `json:"image"`
}

// DoctorSummary is the public directory projection.
type DoctorSummary struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Image      string  `json:"image"`
	Experience string  `json:"experience"`
	Rating     float64 `json:"rating"`
}

func (d *Doctor) Summary() DoctorSummary {
	return DoctorSummary{
		ID:         d.ID.String(),
		Name:       d.FullName,
		Image:      d.Image,
		Experience: d.Experience,
		Rating:     d.Rating,
	}
}
