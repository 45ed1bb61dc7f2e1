package domain

import "errors"

// Common domain errors
var (
	ErrNotFound    = errors.New("resource not found")
	ErrEmailTaken  = errors.New("email already registered")
	ErrPasskeyUsed = errors.New("passkey already used")
)
