package breaker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	apperrors "github.com/yanqian/weatherstyle/pkg/errors"
	"github.com/yanqian/weatherstyle/pkg/metrics"
)

// Settings tunes when a breaker opens and how long it stays open.
type Settings struct {
	MinRequests  uint32
	FailureRatio float64
	Interval     time.Duration
	Timeout      time.Duration
}

// DefaultSettings opens after 60% failures over at least 5 requests and
// probes again after 30 seconds.
func DefaultSettings() Settings {
	return Settings{
		MinRequests:  5,
		FailureRatio: 0.6,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
	}
}

// Breaker guards calls to one upstream.
type Breaker struct {
	name   string
	cb     *gobreaker.CircuitBreaker[any]
	logger *slog.Logger
}

// New builds a named breaker and publishes its state gauge.
func New(name string, settings Settings, logger *slog.Logger) *Breaker {
	log := logger.With("component", "breaker", "breaker", name)
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:         name,
		MaxRequests:  1,
		Interval:     settings.Interval,
		Timeout:      settings.Timeout,
		IsSuccessful: countsAsSuccess,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= settings.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state change", "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})
	return &Breaker{name: name, cb: cb, logger: log}
}

// Name returns the breaker name.
func (b *Breaker) Name() string { return b.name }

// State reports the current breaker state.
func (b *Breaker) State() string { return b.cb.State().String() }

// Do runs fn through the breaker. An open breaker rejects the call without
// invoking fn.
func Do[T any](b *Breaker, fn func() (T, error)) (T, error) {
	var zero T
	result, err := b.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		if IsOpen(err) {
			return zero, fmt.Errorf("%s unavailable: %w", b.name, err)
		}
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker %s: unexpected result type %T", b.name, result)
	}
	return typed, nil
}

// IsOpen reports whether err came from a rejecting breaker.
func IsOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// countsAsSuccess keeps errors caused by the caller, such as an unknown city
// or a cancelled request, from tripping a breaker shared by every client.
func countsAsSuccess(err error) bool {
	return err == nil || errors.Is(err, context.Canceled) || apperrors.IsClientFault(err)
}

func stateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
