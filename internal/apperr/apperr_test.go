package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Status(BadRequest("bad")))
	assert.Equal(t, http.StatusNotFound, Status(NotFound("missing")))
	assert.Equal(t, http.StatusConflict, Status(Conflict("dup")))
	assert.Equal(t, http.StatusInternalServerError, Status(Internal(errors.New("db down"))))
	assert.Equal(t, http.StatusInternalServerError, Status(errors.New("plain")))
}

func TestStatusSeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("registering: %w", Conflict("already registered"))
	assert.Equal(t, http.StatusConflict, Status(err))
	assert.Equal(t, "already registered", Message(err))
}

func TestMessageHidesInternalDetail(t *testing.T) {
	err := Internal(errors.New("pq: connection refused"))
	assert.Equal(t, "internal server error", Message(err))
	// The detail stays available for logging.
	assert.Contains(t, err.Error(), "connection refused")
}
