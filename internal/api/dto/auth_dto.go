package dto

import (
	"time"

	"github.com/spec-kit/classforge-auth/internal/domain"
	"github.com/spec-kit/classforge-auth/internal/service"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	Email              string `json:"email"`
	RegistrationNumber string `json:"registrationNumber"`
	Password           string `json:"password"`
	Role               string `json:"role,omitempty"`
}

// ToInput converts the payload into service input.
func (r RegisterRequest) ToInput() service.RegisterInput {
	return service.RegisterInput{
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		Email:              r.Email,
		RegistrationNumber: r.RegistrationNumber,
		Password:           r.Password,
		Role:               r.Role,
	}
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public account projection.
type UserResponse struct {
	ID                 string `json:"id"`
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	Email              string `json:"email"`
	RegistrationNumber string `json:"registrationNumber"`
	Role               string `json:"role"`
}

// NewUserResponse maps the public projection onto the wire shape.
func NewUserResponse(account domain.PublicAccount) UserResponse {
	return UserResponse{
		ID:                 account.ID,
		FirstName:          account.FirstName,
		LastName:           account.LastName,
		Email:              account.Email,
		RegistrationNumber: account.RegistrationNumber,
		Role:               string(account.Role),
	}
}

// AuthResponse standard response for register and login.
type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// NewAuthResponse builds the response for a successful auth flow.
func NewAuthResponse(result *service.AuthResult) AuthResponse {
	return AuthResponse{
		User:      NewUserResponse(result.Account),
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	}
}

// MeResponse wraps the resolved identity.
type MeResponse struct {
	User UserResponse `json:"user"`
}
