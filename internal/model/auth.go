package model

import (
	"github.com/google/uuid"
)

// Role identifies the actor type an identity claim was minted for.
type Role string

const (
	RolePatient  Role = "patient"
	RoleDoctor   Role = "doctor"
	RoleHospital Role = "hospital"
)

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleHospital:
		return true
	}
	return false
}

// TokenClaims represents the verified identity claim of a caller.
type TokenClaims struct {
	SubjectID uuid.UUID `json:"sub"`
	Role      Role      `json:"role"`
}

// AuthRequest types
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterPatientRequest struct {
	FullName      string `json:"fullName" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	ContactNumber string `json:"contactNumber" binding:"required"`
}

type RegisterHospitalRequest struct {
	HospitalName string `json:"hospitalName" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	Location     string `json:"location"`
	Image        string `json:"image"`
}

// AuthResponse types
type TokenResponse struct {
	Token     string    `json:"token"`
	SubjectID uuid.UUID `json:"subjectId"`
}
