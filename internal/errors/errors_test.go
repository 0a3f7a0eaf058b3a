package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/deckflash/internal/errors"
)

func TestAppError_Constructors(t *testing.T) {
	nf := errors.NewNotFoundError("stack", "tamariz")
	assert.Equal(t, http.StatusNotFound, nf.Status)
	assert.Equal(t, "NOT_FOUND: stack not found: tamariz", nf.Error())

	v := errors.NewValidationError("choices_count", "must be between 2 and 10")
	assert.Equal(t, errors.ErrCodeValidation, v.Code)
	assert.Equal(t, http.StatusBadRequest, v.Status)

	br := errors.NewBadRequestError("invalid position")
	assert.Equal(t, errors.ErrCodeBadRequest, br.Code)
}

func TestAppError_Wrapping(t *testing.T) {
	cause := stderrors.New("disk full")
	internal := errors.NewInternalError(cause)
	assert.ErrorIs(t, internal, cause)
	assert.Contains(t, internal.Error(), "disk full")

	wrapped := fmt.Errorf("saving progress: %w", internal)
	got, ok := errors.As(wrapped)
	require.True(t, ok)
	assert.Same(t, internal, got)

	_, ok = errors.As(cause)
	assert.False(t, ok)

	val := errors.WrapValidationError("mode", cause)
	assert.ErrorIs(t, val, cause)
	assert.Contains(t, val.Message, "disk full")
}
