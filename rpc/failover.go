package rpc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultTimeout bounds a single read attempt against one endpoint.
const DefaultTimeout = 5 * time.Second

var ErrAttemptTimeout = errors.New("endpoint attempt timed out")

type result[T any] struct {
	val T
	err error
}

// Walk runs call against every endpoint of the pool in its current order until
// one succeeds. Each attempt is raced against timeout. When the last endpoint
// fails the zero value and false are returned; exhaustion is not an error.
func Walk[T any](ctx context.Context, p *Pool, timeout time.Duration, call func(ctx context.Context, endpoint string) (T, error)) (T, bool) {
	var zero T
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	endpoints := p.Endpoints()
	for i, endpoint := range endpoints {
		if ctx.Err() != nil {
			return zero, false
		}

		val, err := attempt(ctx, endpoint, timeout, call)
		if err == nil {
			if i > 0 {
				failovers.WithLabelValues(p.Name()).Add(float64(i))
			}
			return val, true
		}

		ev := log.Debug()
		if IsConnectionError(err) {
			ev = log.Warn()
		}
		ev.Err(err).
			Str("pool", p.Name()).
			Int("index", i).
			Str("endpoint", endpoint).
			Msg("Endpoint attempt failed, trying next")
	}

	exhausted.WithLabelValues(p.Name()).Inc()
	log.Warn().
		Str("pool", p.Name()).
		Int("endpoints", len(endpoints)).
		Msg("All endpoints failed, returning no data")

	return zero, false
}

// attempt runs call in its own goroutine so a call that ignores its context
// still cannot hold the walk past the timeout.
func attempt[T any](ctx context.Context, endpoint string, timeout time.Duration, call func(ctx context.Context, endpoint string) (T, error)) (T, error) {
	var zero T

	actx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan result[T], 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- result[T]{err: fmt.Errorf("endpoint call panicked: %v", rec)}
			}
		}()
		v, err := call(actx, endpoint)
		done <- result[T]{val: v, err: err}
	}()

	select {
	case res := <-done:
		return res.val, res.err
	case <-actx.Done():
		if errors.Is(actx.Err(), context.DeadlineExceeded) {
			return zero, fmt.Errorf("%w after %s", ErrAttemptTimeout, timeout)
		}
		return zero, actx.Err()
	}
}

var connectionErrors = []string{
	"connection refused",
	"connection reset",
	"no such host",
	"network is unreachable",
	"i/o timeout",
	"context deadline exceeded",
	"eof",
	"connection closed",
	"server misbehaving",
	"unavailable",
	"failed to connect",
	"timed out",
	"tls handshake",
}

// IsConnectionError reports whether err looks like a transport problem
// rather than an application level rejection.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrAttemptTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	for _, pattern := range connectionErrors {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}
