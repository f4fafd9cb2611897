package http

import (
	"errors"
	"fmt"
	stdhttp "net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/lorrc/mentor-portal/internal/core/errors"
	"github.com/lorrc/mentor-portal/internal/infrastructure/logging"
)

func TestErrorHandler_Describe(t *testing.T) {
	h := NewErrorHandler(logging.Discard())

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"unauthorized", apperrors.NewUnauthorizedError("Not authorized"), stdhttp.StatusUnauthorized, "UNAUTHORIZED"},
		{"edit grant", fmt.Errorf("%w: expired", apperrors.ErrEditGrantRequired), stdhttp.StatusForbidden, "EDIT_GRANT_REQUIRED"},
		{"rate limited", apperrors.NewRateLimitError(), stdhttp.StatusTooManyRequests, "RATE_LIMITED"},
		{"email taken", apperrors.ErrEmailTaken, stdhttp.StatusConflict, "EMAIL_TAKEN"},
		{"password refused", apperrors.ErrPasswordNotConfirmed, stdhttp.StatusUnprocessableEntity, "PASSWORD_NOT_CONFIRMED"},
		{"backend down", apperrors.ErrBackendUnavailable, stdhttp.StatusBadGateway, "BACKEND_UNAVAILABLE"},
		{"unknown", errors.New("boom"), stdhttp.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := h.Describe(tt.err)

			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}

	assert.ErrorIs(t, apperrors.NewRateLimitError(), apperrors.ErrRateLimited)
}
