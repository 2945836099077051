package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrors(t *testing.T) {
	err := Validationf("%s is required", "title")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "title is required", ValidationMessage(err))

	assert.True(t, errors.Is(ErrInvalidAttachment, ErrValidation))
	assert.True(t, errors.Is(ErrFileTooLarge, ErrValidation))
	assert.Equal(t, "only PDF files are accepted", ValidationMessage(ErrInvalidAttachment))
	assert.Equal(t, "resource not found", ValidationMessage(ErrNotFound))
}

func TestSession_IsExpired(t *testing.T) {
	now := time.Now()
	s := &Session{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, s.IsExpired(now))
	assert.True(t, s.IsExpired(now.Add(time.Minute)))
}
