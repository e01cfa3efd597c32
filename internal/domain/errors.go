package domain

import "errors"

// Store level outcomes shared by every credential store implementation.
var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrStoreUnavailable = errors.New("credential store unavailable")
)
