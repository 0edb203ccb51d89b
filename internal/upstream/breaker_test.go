package upstream

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakerOpensAfterFailures(t *testing.T) {
	b := NewBreaker("test")
	boom := errors.New("boom")

	for i := 0; i < 5; i++ {
		_, err := Do(b, func() (string, error) { return "", boom })
		require.ErrorIs(t, err, boom)
	}

	calls := 0
	_, err := Do(b, func() (string, error) {
		calls++
		return "ok", nil
	})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Zero(t, calls)
	assert.Equal(t, "open", b.State())
}

func TestBreakerPassesResults(t *testing.T) {
	b := NewBreaker("test")
	out, err := Do(b, func() (string, error) { return "https://cdn/x.png", nil })
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/x.png", out)
}
