package errors

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("booking: %w", NewValidationError("phone", "phone is required"))

	assert.Equal(t, ErrorTypeValidation, TypeOf(err))
	assert.True(t, IsType(err, ErrorTypeValidation))
	assert.False(t, IsType(nil, ErrorTypeValidation))
}

func TestTypeOf_PlainError(t *testing.T) {
	assert.Equal(t, ErrorTypeInternal, TypeOf(fmt.Errorf("boom")))
}

func TestAppError_Unwrap(t *testing.T) {
	err := NewCanceledError("ride feed aborted", context.Canceled)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "CANCELED: ride feed aborted: context canceled", err.Error())
}
