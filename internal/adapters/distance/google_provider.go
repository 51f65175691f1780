package distance

import (
	"city-route-service/internal/platform/obs"
	"city-route-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const defaultGoogleBaseURL = "https://maps.googleapis.com"

// GoogleOptions configures a GoogleDistanceProvider. Zero values get defaults.
type GoogleOptions struct {
	APIKey   string
	BaseURL  string
	Region   string
	Language string
	// QPS caps outbound requests per second; <= 0 disables throttling.
	QPS     float64
	Timeout time.Duration
	// MaxAttempts and InitialBackoff bound retries of transient failures.
	MaxAttempts    int
	InitialBackoff time.Duration
}

// GoogleDistanceProvider implements DistanceProvider with the Google
// Distance Matrix API, one origin and one destination per request.
//
// Element-level failures (NOT_FOUND, ZERO_RESULTS, missing fields) are
// reported as Unavailable samples. Request-level failures (bad key, quota,
// HTTP errors after retries) are returned as errors.
//
// The provider is safe for concurrent use.
type GoogleDistanceProvider struct {
	session  *http.Client
	apiKey   string
	baseURL  string
	region   string
	language string
	limiter  *rate.Limiter
	backoff  backoff
}

func NewGoogleDistanceProvider(opts GoogleOptions) (*GoogleDistanceProvider, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("google maps api key is empty")
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultGoogleBaseURL
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.QPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.QPS), 1)
	}

	return &GoogleDistanceProvider{
		session:  &http.Client{Timeout: timeout},
		apiKey:   opts.APIKey,
		baseURL:  baseURL,
		region:   opts.Region,
		language: opts.Language,
		limiter:  limiter,
		backoff:  newBackoff(opts.MaxAttempts, opts.InitialBackoff),
	}, nil
}

type matrixValue struct {
	Value int    `json:"value"`
	Text  string `json:"text"`
}

type matrixElement struct {
	Status   string       `json:"status"`
	Distance *matrixValue `json:"distance"`
	Duration *matrixValue `json:"duration"`
}

type matrixResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Rows         []struct {
		Elements []matrixElement `json:"elements"`
	} `json:"rows"`
}

// normalize collapses whitespace so equivalent names produce the same request.
func (g *GoogleDistanceProvider) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (g *GoogleDistanceProvider) Query(
	ctx context.Context,
	origin string,
	destination string,
) (_ ports.DistanceSample, err error) {
	defer obs.Time(ctx, "google.Query")(&err)

	normOrigin := g.normalize(origin)
	if normOrigin == "" {
		return ports.DistanceSample{}, errors.New("google query: origin must be non-empty")
	}

	normDestination := g.normalize(destination)
	if normDestination == "" {
		return ports.DistanceSample{}, errors.New("google query: destination must be non-empty")
	}

	q := url.Values{}
	q.Set("origins", normOrigin)
	q.Set("destinations", normDestination)
	q.Set("units", "metric")
	if g.region != "" {
		q.Set("region", g.region)
	}
	if g.language != "" {
		q.Set("language", g.language)
	}
	q.Set("key", g.apiKey)

	mr, err := g.fetchWithRetry(ctx, g.baseURL+"/maps/api/distancematrix/json?"+q.Encode())
	if err != nil {
		return ports.DistanceSample{}, fmt.Errorf("google query %q -> %q: %w", normOrigin, normDestination, err)
	}

	return sampleFromResponse(mr), nil
}

// sampleFromResponse reads the single element of a 1x1 matrix. Anything
// short of a complete OK element means the pair has no data.
func sampleFromResponse(mr *matrixResponse) ports.DistanceSample {
	if len(mr.Rows) == 0 || len(mr.Rows[0].Elements) == 0 {
		return ports.Unavailable()
	}

	el := mr.Rows[0].Elements[0]
	if el.Status != "OK" || el.Distance == nil || el.Duration == nil {
		return ports.Unavailable()
	}

	return ports.Measured(el.Distance.Value, el.Duration.Value)
}
