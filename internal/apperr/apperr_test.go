package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Dhaval523/WorkJunction/internal/apperr"
	"github.com/stretchr/testify/assert"
)

func TestKindStatus(t *testing.T) {
	cases := map[apperr.Kind]int{
		apperr.KindValidation:   http.StatusBadRequest,
		apperr.KindUnauthorized: http.StatusUnauthorized,
		apperr.KindForbidden:    http.StatusForbidden,
		apperr.KindNotFound:     http.StatusNotFound,
		apperr.KindConflict:     http.StatusConflict,
		apperr.KindUpstream:     http.StatusInternalServerError,
		apperr.KindRateLimited:  http.StatusTooManyRequests,
		apperr.KindInternal:     http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, kind.Status(), kind.String())
	}
}

func TestKindOfWrapped(t *testing.T) {
	base := apperr.NotFound("Worker not found")
	wrapped := fmt.Errorf("loading profile: %w", base)

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(wrapped))
	assert.True(t, apperr.Is(wrapped, apperr.KindNotFound))
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(errors.New("boom")))
}

func TestUpstreamUnwrap(t *testing.T) {
	cause := errors.New("503 from provider")
	err := apperr.Upstream("Failed to upload file", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to upload file: 503 from provider", err.Error())
}
