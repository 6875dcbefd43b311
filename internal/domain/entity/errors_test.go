package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "required field error",
			field:    "title",
			message:  "is required",
			expected: "validation error on field 'title': is required",
		},
		{
			name:     "length validation error",
			field:    "description",
			message:  "must not exceed 1024 characters",
			expected: "validation error on field 'description': must not exceed 1024 characters",
		},
		{
			name:     "empty field name",
			field:    "",
			message:  "test message",
			expected: "validation error on field '': test message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &ValidationError{Field: tt.field, Message: tt.message}
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestValidationError_UnwrapsToValidationFailed(t *testing.T) {
	var err error = &ValidationError{Field: "title", Message: "is required"}

	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.True(t, errors.Is(fmt.Errorf("write article: %w", err), ErrValidationFailed))

	var ve *ValidationError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &ve))
	assert.Equal(t, "title", ve.Field)
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	kinds := []error{ErrNotFound, ErrConflict, ErrForbidden, ErrInvalidInput, ErrValidationFailed}

	for i, a := range kinds {
		for j, b := range kinds {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}
