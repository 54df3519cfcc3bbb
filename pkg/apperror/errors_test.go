package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", ErrNotFound, http.StatusNotFound},
		{"wrapped unauthorized", fmt.Errorf("verify: %w", ErrUnauthorized), http.StatusUnauthorized},
		{"invalid input", ErrInvalidInput, http.StatusBadRequest},
		{"conflict", ErrConflict, http.StatusConflict},
		{"rate limit", fmt.Errorf("cap: %w", ErrRateLimitExceeded), http.StatusTooManyRequests},
		{"app error code wins", New(http.StatusUnauthorized, "Missing bearer token", ErrNotFound), http.StatusUnauthorized},
		{"app error without code falls back", New(0, "", ErrConflict), http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatus(tt.err))
		})
	}
}

func TestAppErrorMessage(t *testing.T) {
	assert.Equal(t, "Failed to load profile: connection reset",
		Internal("Failed to load profile", errors.New("connection reset")).Error())
	assert.Equal(t, "Missing bearer token", Unauthorized("Missing bearer token").Error())
	assert.Equal(t, "boom", New(http.StatusInternalServerError, "", errors.New("boom")).Error())

	err := Internal("Failed to load streak", ErrNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}
