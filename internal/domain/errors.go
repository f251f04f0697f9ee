package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrKeyNotFound        = errors.New("key not found")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNoSession          = errors.New("no active session")
)
