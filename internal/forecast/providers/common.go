package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/eye-of-horus/internal/metrics"
)

// UserAgent is sent with every upstream request.
var UserAgent = "eyeofhorus/1.0"

// maxErrorBody bounds how much of an error response ends up in messages.
const maxErrorBody = 512

var (
	errRateLimited  = errors.New("rate limited")
	errServerError  = errors.New("server error")
	errNoHTTPClient = errors.New("http client not configured")

	// ErrCircuitOpen is returned while a provider's circuit breaker rejects calls.
	ErrCircuitOpen = errors.New("circuit breaker open")
)

// response is a fully read upstream response.
type response struct {
	StatusCode int
	Body       []byte
}

func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
}

// doRequest executes req once through the circuit breaker and reads the whole
// body. Transport errors, 429 and 5xx count against the breaker and are
// returned as errors; every other status is handed back for the caller to
// judge. There are no retries.
func doRequest(
	ctx context.Context,
	client *http.Client,
	cb *gobreaker.CircuitBreaker,
	provider string,
	req *http.Request,
) (*response, error) {
	if client == nil {
		return nil, errNoHTTPClient
	}

	req = req.WithContext(ctx)
	req.Header.Set("User-Agent", UserAgent)

	start := time.Now()
	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer resp.Body.Close()

		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, fmt.Errorf("read body: %w", readErr)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("%w: %s", errRateLimited, snippet(body))
		}
		if resp.StatusCode >= 500 {
			return nil, fmt.Errorf("%w: %d: %s", errServerError, resp.StatusCode, snippet(body))
		}
		return &response{StatusCode: resp.StatusCode, Body: body}, nil
	})
	metrics.ProviderLatency.WithLabelValues(provider).Observe(time.Since(start).Seconds())

	if err != nil {
		status := "error"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			status = "circuit_open"
			err = fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		metrics.ProviderCallsTotal.WithLabelValues(provider, status).Inc()
		return nil, err
	}

	res, ok := result.(*response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	metrics.ProviderCallsTotal.WithLabelValues(provider, strconv.Itoa(res.StatusCode)).Inc()
	return res, nil
}

func snippet(body []byte) string {
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody]) + "..."
	}
	return string(body)
}
