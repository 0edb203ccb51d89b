// Package upstream wraps calls to third-party providers in circuit breakers.
package upstream

import (
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// ErrUnavailable is returned while a provider's breaker is open.
var ErrUnavailable = errors.New("upstream temporarily unavailable")

// Breaker trips after a majority of recent calls to a provider fail and fails
// fast until the cool-down elapses.
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

func NewBreaker(name string) *Breaker {
	return &Breaker{cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})}
}

// Do runs fn through the breaker. Open and half-open rejections become ErrUnavailable.
func Do[T any](b *Breaker, fn func() (T, error)) (T, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		var zero T
		return zero, ErrUnavailable
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return out.(T), nil
}

func (b *Breaker) State() string {
	return b.cb.State().String()
}
