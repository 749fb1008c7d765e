package service

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrForbidden      = errors.New("forbidden")
	ErrEmailTaken     = errors.New("email already in use")
	ErrBadCredentials = errors.New("invalid email or password")
)
