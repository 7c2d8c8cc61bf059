package providers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	gobreaker "github.com/sony/gobreaker/v2"

	"halfmoon/widget-service/internal/metrics"
)

// ErrUpstreamFailure wraps every failed third-party call: transport errors,
// non-2xx statuses, open breakers and responses of an unexpected shape.
var ErrUpstreamFailure = errors.New("upstream failure")

const defaultMaxResponseBytes = 32 << 20

type ClientOptions struct {
	BaseURL string
	Timeout time.Duration
	// MaxResponseBytes bounds a response body. Zero means 32 MiB.
	MaxResponseBytes int64
	// MaxConsecutiveFailures trips the breaker. Zero means 5.
	MaxConsecutiveFailures uint32
	// OpenTimeout is how long a tripped breaker rejects calls. Zero means 30s.
	OpenTimeout time.Duration
}

func (o ClientOptions) withDefaults(baseURL string) ClientOptions {
	if o.BaseURL == "" {
		o.BaseURL = baseURL
	}
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	if o.MaxResponseBytes <= 0 {
		o.MaxResponseBytes = defaultMaxResponseBytes
	}
	if o.MaxConsecutiveFailures == 0 {
		o.MaxConsecutiveFailures = 5
	}
	if o.OpenTimeout <= 0 {
		o.OpenTimeout = 30 * time.Second
	}
	return o
}

// StatusError is returned for non-2xx upstream responses.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("returned status code %d: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("returned status code %d", e.Code)
}

// upstream is one named third-party endpoint behind a circuit breaker.
type upstream struct {
	name     string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker[[]byte]
	maxBytes int64
	// detail extracts a human readable message from an error body.
	detail func(body []byte) string
}

func newUpstream(name string, opts ClientOptions, detail func([]byte) string) *upstream {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.MaxConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("upstream", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})

	return &upstream{
		name:     name,
		client:   &http.Client{Timeout: opts.Timeout},
		breaker:  breaker,
		maxBytes: opts.MaxResponseBytes,
		detail:   detail,
	}
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

// do executes req and returns the response body of a 2xx response.
func (u *upstream) do(req *http.Request) ([]byte, error) {
	start := time.Now()

	body, err := u.breaker.Execute(func() ([]byte, error) {
		resp, err := u.client.Do(req)
		if err != nil {
			return nil, redactURL(err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, u.maxBytes+1))
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		if int64(len(body)) > u.maxBytes {
			return nil, fmt.Errorf("response body exceeds %d bytes", u.maxBytes)
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			statusErr := &StatusError{Code: resp.StatusCode}
			if u.detail != nil {
				statusErr.Detail = u.detail(body)
			}
			return nil, statusErr
		}

		return body, nil
	})

	metrics.RecordUpstream(u.name, err, time.Since(start))

	if err != nil {
		return nil, fmt.Errorf("%w: %s %v", ErrUpstreamFailure, u.name, err)
	}

	return body, nil
}

// redactURL rewrites transport errors so they name the endpoint without its
// query string, which carries API keys and tokens.
func redactURL(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return fmt.Errorf("request failed: %w", err)
	}

	endpoint := urlErr.URL
	if parsed, parseErr := url.Parse(urlErr.URL); parseErr == nil {
		parsed.RawQuery = ""
		parsed.Fragment = ""
		parsed.User = nil
		endpoint = parsed.String()
	} else {
		endpoint = "<invalid url>"
	}

	return fmt.Errorf("request failed: %s %s: %w", urlErr.Op, endpoint, urlErr.Err)
}

// malformed reports an unexpected response shape.
func (u *upstream) malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s returned malformed response: %s", ErrUpstreamFailure, u.name, fmt.Sprintf(format, args...))
}
