// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/taibuivan/cinelist/internal/platform/metrics"
)

// BreakerName labels the TMDB breaker in logs and metrics.
const BreakerName = "tmdb-api"

// BreakerSettings tunes [BreakerCatalog]. Zero values select the defaults.
type BreakerSettings struct {
	// MinRequests is the sample size required before the breaker may trip.
	MinRequests uint32
	// FailureRatio trips the breaker once reached within the window.
	FailureRatio float64
	// Interval resets the closed-state counters.
	Interval time.Duration
	// OpenTimeout is how long the breaker stays open before probing.
	OpenTimeout time.Duration
}

func (settings BreakerSettings) withDefaults() BreakerSettings {
	if settings.MinRequests == 0 {
		settings.MinRequests = 10
	}
	if settings.FailureRatio == 0 {
		settings.FailureRatio = 0.6
	}
	if settings.Interval == 0 {
		settings.Interval = time.Minute
	}
	if settings.OpenTimeout == 0 {
		settings.OpenTimeout = 30 * time.Second
	}
	return settings
}

// BreakerCatalog wraps a [Catalog] with a circuit breaker.
//
// Unknown movies and caller cancellations are not upstream faults and never
// count towards tripping.
type BreakerCatalog struct {
	next    Catalog
	breaker *gobreaker.CircuitBreaker[any]
}

// NewBreakerCatalog constructs the decorator.
func NewBreakerCatalog(next Catalog, settings BreakerSettings, logger *slog.Logger) *BreakerCatalog {
	settings = settings.withDefaults()
	metrics.CircuitBreakerState.WithLabelValues(BreakerName).Set(0)

	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        BreakerName,
		MaxRequests: 3,
		Interval:    settings.Interval,
		Timeout:     settings.OpenTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= settings.FailureRatio
		},

		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrMovieNotFound) ||
				errors.Is(err, context.Canceled)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit_breaker_state_changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &BreakerCatalog{next: next, breaker: breaker}
}

// GetMovie implements [Catalog].
func (catalog *BreakerCatalog) GetMovie(ctx context.Context, movieID string) (*MovieDetail, error) {
	return execute(catalog, func() (*MovieDetail, error) {
		return catalog.next.GetMovie(ctx, movieID)
	})
}

// ListPopular implements [Catalog].
func (catalog *BreakerCatalog) ListPopular(ctx context.Context, page int) ([]MovieSummary, error) {
	return execute(catalog, func() ([]MovieSummary, error) {
		return catalog.next.ListPopular(ctx, page)
	})
}

// State reports the current breaker state.
func (catalog *BreakerCatalog) State() gobreaker.State {
	return catalog.breaker.State()
}

// execute runs fn under the breaker and restores its static result type.
func execute[T any](catalog *BreakerCatalog, fn func() (T, error)) (T, error) {
	var zero T

	result, err := catalog.breaker.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, ErrUnavailable
		}
		return zero, err
	}

	typed, ok := result.(T)
	if !ok {
		return zero, upstreamFailure(fmt.Errorf("circuit breaker: unexpected result type %T", result))
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
