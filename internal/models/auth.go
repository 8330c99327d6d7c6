package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// UserInfo describes the authenticated user in responses. The password hash
// never appears here.
type UserInfo struct {
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`
	Location string   `json:"location,omitempty"`
}

// LoginResponse returns the issued token and user identity.
type LoginResponse struct {
	User        UserInfo  `json:"user"`
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	IssuedAt    time.Time `json:"issued_at"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`
	Location string   `json:"location,omitempty"`
	jwt.RegisteredClaims
}
