package distance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	defaultMaxAttempts    = 4
	defaultInitialBackoff = 200 * time.Millisecond
	maxErrorBody          = 4096
)

// httpStatusError is a non-2xx answer from the Distance Matrix endpoint.
type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("distance matrix http %d: %s", e.Code, e.Body)
}

// apiStatusError is a top-level Distance Matrix status other than OK.
type apiStatusError struct {
	Status  string
	Message string
}

func (e *apiStatusError) Error() string {
	if e.Message == "" {
		return "status " + e.Status
	}
	return fmt.Sprintf("status %s: %s", e.Status, e.Message)
}

// backoff doubles the wait after every failed attempt.
type backoff struct {
	attempts int
	initial  time.Duration
}

func newBackoff(attempts int, initial time.Duration) backoff {
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}
	if initial <= 0 {
		initial = defaultInitialBackoff
	}
	return backoff{attempts: attempts, initial: initial}
}

// wait for attempt n (1-based); false if ctx ended first.
func (b backoff) wait(ctx context.Context, n int) bool {
	d := b.initial << (n - 1)
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// get performs one throttled GET of rawURL.
func (g *GoogleDistanceProvider) get(ctx context.Context, rawURL string) (*http.Response, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &httpStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return resp, nil
}

// fetch performs one GET and decodes the matrix, failing on a non-OK
// top-level status.
func (g *GoogleDistanceProvider) fetch(ctx context.Context, rawURL string) (*matrixResponse, error) {
	resp, err := g.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}
	if mr.Status != "OK" {
		return nil, &apiStatusError{Status: mr.Status, Message: mr.ErrorMessage}
	}
	return &mr, nil
}

// fetchWithRetry repeats fetch for throttling, quota, 5xx answers and
// network errors.
func (g *GoogleDistanceProvider) fetchWithRetry(ctx context.Context, rawURL string) (*matrixResponse, error) {
	var err error
	for n := 1; n <= g.backoff.attempts; n++ {
		var mr *matrixResponse
		mr, err = g.fetch(ctx, rawURL)
		if err == nil {
			return mr, nil
		}
		if !transient(err) || n == g.backoff.attempts {
			break
		}

		log.Printf("WARN google distance matrix attempt=%d/%d err=%v", n, g.backoff.attempts, err)
		if !g.backoff.wait(ctx, n) {
			return nil, ctx.Err()
		}
	}
	return nil, err
}

func transient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var ae *apiStatusError
	if errors.As(err, &ae) {
		return ae.Status == "OVER_QUERY_LIMIT"
	}

	var se *httpStatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusTooManyRequests || se.Code >= 500
	}

	var ne net.Error
	return errors.As(err, &ne)
}
