// Package external provides the anti-corruption layer between Raincheck
// domain logic and third-party services. Outbound HTTP calls are routed
// through the BaseClient, which enforces consistent circuit breaking, trace
// propagation, and error mapping. Calls are single-attempt: a failed fetch or
// dispatch is surfaced to the caller, never retried locally.
package external

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"raincheck/internal/types"
)

// BaseClient wraps an *http.Client and a circuit breaker. Provider clients
// embed BaseClient to inherit this behavior.
type BaseClient struct {
	client    *http.Client
	breaker   *gobreaker.CircuitBreaker[*http.Response]
	userAgent string
}

// NewBaseClient creates a BaseClient with the given http client, breaker
// name, and user agent string. The breaker opens after five consecutive
// failures and probes again after 30 seconds, so a dead upstream fails fast
// instead of consuming the full request timeout on every call.
func NewBaseClient(httpClient *http.Client, breakerName, userAgent string) *BaseClient {
	cb := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})

	return &BaseClient{
		client:    httpClient,
		breaker:   cb,
		userAgent: userAgent,
	}
}

// Do executes the HTTP request with:
//  1. Request ID propagation (X-Request-Id from context)
//  2. User-Agent header injection
//  3. Circuit breaker wrapping
//  4. Error mapping to types.AppError
//
// On a 2xx-4xx response, Do returns the response as-is and the caller is
// responsible for closing the body. 5xx responses and transport errors count
// as breaker failures and are mapped to upstream error codes.
func (c *BaseClient) Do(req *http.Request) (*http.Response, error) {
	if requestID := types.GetRequestID(req.Context()); requestID != "" {
		req.Header.Set("X-Request-Id", requestID)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		r, doErr := c.client.Do(req)
		if doErr != nil {
			return nil, doErr
		}
		// 5xx counts as a breaker failure; the response is still returned
		// so the caller sees the status.
		if r.StatusCode >= 500 {
			return r, fmt.Errorf("upstream returned %d", r.StatusCode)
		}
		return r, nil
	})

	if err == nil {
		return resp, nil
	}

	if resp != nil {
		// 5xx path: the body is not handed to the caller, close it here.
		resp.Body.Close()
	}

	return nil, c.mapError(resp, err)
}

// mapError translates transport-level failures into domain-level AppErrors.
func (c *BaseClient) mapError(resp *http.Response, err error) *types.AppError {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return types.NewAppError(
			types.ErrCodeUpstreamRateLimited,
			"circuit breaker is open; upstream service unavailable",
			err,
		)
	}

	if resp != nil && resp.StatusCode >= 500 {
		return types.NewAppError(
			types.ErrCodeUpstreamForecast,
			fmt.Sprintf("upstream returned %d", resp.StatusCode),
			err,
		)
	}

	// Network error, DNS failure, or timeout.
	return types.NewAppError(
		types.ErrCodeUpstreamForecast,
		"upstream request failed",
		err,
	)
}
