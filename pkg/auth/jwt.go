package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/carelink/booking-api/internal/model"
)

// TokenService mints and verifies the signed identity claims carried by
// API callers. Tokens are never persisted.
type TokenService interface {
	GenerateToken(subjectID uuid.UUID, role model.Role) (string, error)
	ValidateToken(token string) (*model.TokenClaims, error)
}

type jwtService struct {
	secret []byte
	expiry time.Duration
}

func NewJWTService(secret string, expiry time.Duration) TokenService {
	return &jwtService{secret: []byte(secret), expiry: expiry}
}

func (s *jwtService) GenerateToken(subjectID uuid.UUID, role model.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subjectID.String(),
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *jwtService) ValidateToken(tokenString string) (*model.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	subjectID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("invalid subject ID in token")
	}

	role, ok := claims["role"].(string)
	if !ok || !model.Role(role).Valid() {
		return nil, fmt.Errorf("invalid role in token")
	}

	return &model.TokenClaims{
		SubjectID: subjectID,
		Role:      model.Role(role),
	}, nil
}
