package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imanrao90/doctor-appointment-backend/internal/apperr"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{apperr.Validation("bad input"), http.StatusBadRequest},
		{apperr.NotFound("missing"), http.StatusNotFound},
		{apperr.Conflict("taken"), http.StatusConflict},
		{apperr.Auth("no token"), http.StatusUnauthorized},
		{apperr.Forbidden("not yours"), http.StatusForbidden},
		{apperr.Persistence(errors.New("db down")), http.StatusInternalServerError},
		{apperr.Upstream("image store", errors.New("timeout")), http.StatusBadGateway},
		{errors.New("anonymous"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, apperr.Status(tt.err), "%v", tt.err)
	}
}

func TestMessageMasksUnclassified(t *testing.T) {
	assert.Equal(t, "Something went wrong", apperr.Message(errors.New("sql: secret detail")))
	assert.Equal(t, "taken", apperr.Message(apperr.Conflict("taken")))
}

func TestWrapPreservesChain(t *testing.T) {
	inner := errors.New("socket closed")
	err := apperr.Persistence(inner)

	assert.True(t, errors.Is(err, inner))
	assert.Equal(t, apperr.KindPersistence, apperr.KindOf(fmt.Errorf("caller: %w", err)))
}
