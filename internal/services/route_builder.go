package services

import (
	"city-route-service/internal/domain"
	"city-route-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"slices"
)

var (
	ErrNoCities          = errors.New("at least one city is required")
	ErrDataInconsistency = errors.New("distance data missing for a leg of the built path")
)

// RouteBuilder orders cities with a greedy nearest-neighbor heuristic.
//
// Distances come from an external provider that may have no data for some
// pairs. A pair without data is recorded and skipped; the city stays a
// candidate for later rounds. No improvement pass is applied afterwards.
type RouteBuilder struct {
	Provider ports.DistanceProvider
	Logger   *log.Logger
}

func NewRouteBuilder(provider ports.DistanceProvider, logger *log.Logger) *RouteBuilder {
	return &RouteBuilder{Provider: provider, Logger: orDiscard(logger)}
}

// Build returns the visiting order starting at cities[0].
//
// Each round queries current -> candidate for every unvisited city in input
// order and picks the strictly smallest distance, so the earliest candidate
// wins ties. When no candidate has data from the current city, construction
// stops and the remaining cities are left out of the result.
//
// The only error returned besides ErrNoCities is a provider failure, which
// the caller must treat as fatal.
func (b *RouteBuilder) Build(ctx context.Context, cities []string) (*domain.Route, error) {
	if len(cities) == 0 {
		return nil, fmt.Errorf("build route: %w", ErrNoCities)
	}
	logger := orDiscard(b.Logger)

	path := []string{cities[0]}
	unvisited := slices.Clone(cities[1:])
	unavailable := []string{}

	logger.Printf("build route: start=%q cities=%q", cities[0], cities)

	for len(unvisited) > 0 {
		current := path[len(path)-1]

		best := -1
		bestMeters := 0

		for i, city := range unvisited {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("build route: %w", err)
			}

			sample, err := b.Provider.Query(ctx, current, city)
			if err != nil {
				return nil, fmt.Errorf("build route: query %q -> %q: %w", current, city, err)
			}

			if !sample.Available {
				unavailable = append(unavailable, city)
				logger.Printf("WARN build route: no distance data from=%q to=%q", current, city)
				continue
			}

			if best == -1 || sample.DistanceMeters < bestMeters {
				best = i
				bestMeters = sample.DistanceMeters
			}
		}

		if best == -1 {
			logger.Printf("WARN build route: no reachable city from=%q dropped=%q", current, unvisited)
			break
		}

		next := unvisited[best]
		path = append(path, next)
		unvisited = slices.Delete(unvisited, best, best+1)
		logger.Printf("build route: added city=%q meters=%d", next, bestMeters)
	}

	logger.Printf("build route: path=%q unavailable=%q", path, unavailable)

	return &domain.Route{Path: path, Unavailable: unavailable}, nil
}

func orDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return log.New(io.Discard, "", 0)
	}
	return l
}
