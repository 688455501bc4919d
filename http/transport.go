package http

import (
	"io"
	"net/http"
	"strconv"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultRetryWait is the default initial wait between retries.
const DefaultRetryWait = 1 * time.Second

// DefaultMaxWait caps how long a Retry-After header can make us sleep.
const DefaultMaxWait = 30 * time.Second

// Transport retries idempotent requests that fail with a network error,
// 429, or a 5xx status. Non-idempotent requests are sent once.
type Transport struct {
	// Base performs the requests. Defaults to http.DefaultTransport.
	Base http.RoundTripper

	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int

	// RetryWait is the initial backoff, doubled on each attempt.
	RetryWait time.Duration

	// MaxWait caps any single wait, including Retry-After.
	MaxWait time.Duration
}

// NewClient returns a client whose transport retries up to maxRetries times.
func NewClient(maxRetries int) *http.Client {
	return &http.Client{
		Timeout:   DefaultTimeout,
		Transport: &Transport{MaxRetries: maxRetries},
	}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	if t.MaxRetries <= 0 || !idempotent(req.Method) {
		return base.RoundTrip(req)
	}

	ctx := req.Context()
	for attempt := 0; ; attempt++ {
		resp, err := base.RoundTrip(req)
		if attempt >= t.MaxRetries || ctx.Err() != nil || !shouldRetry(err, resp) {
			return resp, err
		}

		wait := t.retryWait(resp, attempt)
		if resp != nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// retryWait honors Retry-After, falling back to exponential backoff.
func (t *Transport) retryWait(resp *http.Response, attempt int) time.Duration {
	maxWait := t.MaxWait
	if maxWait <= 0 {
		maxWait = DefaultMaxWait
	}

	if resp != nil {
		if seconds, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && seconds >= 0 {
			return min(time.Duration(seconds)*time.Second, maxWait)
		}
	}

	wait := t.RetryWait
	if wait <= 0 {
		wait = DefaultRetryWait
	}
	return min(wait*time.Duration(1<<attempt), maxWait)
}

// shouldRetry determines if a request should be retried.
func shouldRetry(err error, resp *http.Response) bool {
	if err != nil {
		return true
	}
	return resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
