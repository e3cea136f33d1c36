package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error passes through", func(t *testing.T) {
		httpErr := ToHTTP(ErrNotFound)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.Equal(t, CodeNotFound, httpErr.Code)
		assert.Equal(t, "Resource not found", httpErr.Message)
	})

	t.Run("wrapped app error is found", func(t *testing.T) {
		err := fmt.Errorf("loading request: %w", ErrForbidden)
		httpErr := ToHTTP(err)
		assert.Equal(t, http.StatusForbidden, httpErr.Status)
	})

	t.Run("unclassified error becomes 500", func(t *testing.T) {
		httpErr := ToHTTP(errors.New("pq: connection reset"))
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, CodeInternalError, httpErr.Code)
		assert.NotContains(t, httpErr.Message, "pq:")
	})

	t.Run("details survive", func(t *testing.T) {
		err := ErrInvalidInput.WithDetails(map[string]int{"available": 2})
		httpErr := ToHTTP(err)
		assert.NotNil(t, httpErr.Details)
	})
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(cause, CodeInternalError, "persist failed", http.StatusInternalServerError)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "persist failed")
	assert.Contains(t, err.Error(), "disk full")
}

func TestFormatFieldName(t *testing.T) {
	assert.Equal(t, "Start Date", formatFieldName("start_date"))
	assert.Equal(t, "Email", formatFieldName("email"))
}
