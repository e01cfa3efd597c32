package domain

import "time"

// SessionToken is the verified content of a bearer credential.
type SessionToken struct {
	SubjectID string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
