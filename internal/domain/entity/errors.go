package entity

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrUserExists         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
