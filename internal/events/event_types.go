package events

import (
	"time"

	"github.com/spec-kit/classforge-auth/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountRegistered EventType = "account_registered"
	EventLoginSucceeded    EventType = "login_succeeded"
	EventLoginFailed       EventType = "login_failed"
)

// Event represents an account lifecycle event emitted by the auth service.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	AccountID string    `json:"account_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// AccountRegisteredPayload payload.
type AccountRegisteredPayload struct {
	Role domain.Role `json:"role"`
}

// LoginFailedPayload payload. Code is the error code returned to the caller.
type LoginFailedPayload struct {
	Code string `json:"code"`
}
