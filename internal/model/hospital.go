package model

import (
	"github.com/lib/pq"
)

// Hospital's offered-specializations set grows by union when a doctor
// with a new specialization joins; it never shrinks.
type Hospital struct {
	Base
	HospitalName    string         `db:"hospital_name" json:"hospitalName"`
	Email           string         `db:"email" json:"email"`
	PasswordHash    string         `db:"password_hash" json:"-"`
	Specializations pq.StringArray `db:"specializations" json:"specializations"`
	Image           string         `db:"image" json:"image"`
	Location        string         `db:"location" json:"location"`
	Rating          float64        `db:"rating" json:"rating"`
}

// OffersSpecialization reports membership in the offered set.
func (h *Hospital) OffersSpecialization(specialization string) bool {
	for _, s := range h.Specializations {
		if s == specialization {
			return true
		}
	}
	return false
}

// HospitalSummary is the public directory projection.
type HospitalSummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Location string  `json:"location"`
	Rating   float64 `json:"rating"`
}

func (h *Hospital) Summary() HospitalSummary {
	return HospitalSummary{
		ID:       h.ID.String(),
		Name:     h.HospitalName,
		Image:    h.Image,
		Location: h.Location,
		Rating:   h.Rating,
	}
}
