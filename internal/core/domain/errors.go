package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation failed")
)

// Attachment errors. Both match ErrValidation.
var (
	ErrInvalidAttachment = fmt.Errorf("%w: only PDF files are accepted", ErrValidation)
	ErrFileTooLarge      = fmt.Errorf("%w: file exceeds the upload size limit", ErrValidation)
)

// Password errors
var (
	ErrOldPasswordWrong = errors.New("old password is incorrect")
	ErrWeakPassword     = fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
)

// Validationf builds a validation error with field detail
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// ValidationMessage returns the user-facing part of a validation error
func ValidationMessage(err error) string {
	msg := err.Error()
	prefix := ErrValidation.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
