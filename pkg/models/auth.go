package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type APIClaims struct {
	StudentID string `json:"student_id,omitempty"`
	jwt.RegisteredClaims
}

type TokenRequest struct {
	StudentID string `json:"student_id" binding:"required"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
