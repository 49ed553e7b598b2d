package service

import "errors"

// Sentinel errors the HTTP boundary maps to status codes. Everything else
// coming out of a service is a server error.
var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTaskNotFound       = errors.New("task not found")
)
