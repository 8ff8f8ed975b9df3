package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelink/booking-api/internal/model"
)

func TestTokenRoundtrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	subjectID := uuid.New()

	token, err := svc.GenerateToken(subjectID, model.RoleHospital)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, subjectID, claims.SubjectID)
	assert.Equal(t, model.RoleHospital, claims.Role)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute)

	token, err := svc.GenerateToken(uuid.New(), model.RolePatient)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	signer := NewJWTService("secret-a", time.Hour)
	verifier := NewJWTService("secret-b", time.Hour)

	token, err := signer.GenerateToken(uuid.New(), model.RolePatient)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)

	_, err = svc.ValidateToken("")
	assert.Error(t, err)
}
