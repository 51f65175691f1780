package services

import (
	"city-route-service/internal/domain"
	"city-route-service/internal/platform/metrics"
	"city-route-service/internal/platform/obs"
	"city-route-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

// MaxCities bounds one request; construction issues O(n²) sequential lookups.
const MaxCities = 100

var (
	ErrTooFewCities  = errors.New("at least two cities are required")
	ErrTooManyCities = fmt.Errorf("at most %d cities are allowed", MaxCities)
	ErrEmptyCity     = errors.New("city names must be non-empty")
)

// RouteCalculator runs one route request end to end: build the visiting
// order, then total the legs of the resulting path.
type RouteCalculator struct {
	Builder    *RouteBuilder
	Summarizer *RouteSummarizer
}

func NewRouteCalculator(provider ports.DistanceProvider, logger *log.Logger) *RouteCalculator {
	return &RouteCalculator{
		Builder:    NewRouteBuilder(provider, logger),
		Summarizer: NewRouteSummarizer(provider, logger),
	}
}

func (c *RouteCalculator) Calculate(ctx context.Context, cities []string) (_ *domain.RouteResult, err error) {
	defer obs.Time(ctx, "route.Calculate")(&err)
	defer func() {
		result := "ok"
		if err != nil {
			result = "error"
		}
		metrics.RoutesComputed.WithLabelValues(result).Inc()
	}()

	if len(cities) < 2 {
		return nil, fmt.Errorf("calculate route: got %d cities: %w", len(cities), ErrTooFewCities)
	}

	if len(cities) > MaxCities {
		return nil, fmt.Errorf("calculate route: got %d cities: %w", len(cities), ErrTooManyCities)
	}

	// Names are passed through as given; only blank ones are rejected.
	for i, name := range cities {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("calculate route: city at index %d: %w", i, ErrEmptyCity)
		}
	}

	route, err := c.Builder.Build(ctx, cities)
	if err != nil {
		return nil, fmt.Errorf("calculate route: %w", err)
	}

	summary, err := c.Summarizer.Summarize(ctx, route.Path)
	if err != nil {
		return nil, fmt.Errorf("calculate route: %w", err)
	}

	return &domain.RouteResult{Route: *route, Summary: *summary}, nil
}
