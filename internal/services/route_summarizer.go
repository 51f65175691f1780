package services

import (
	"city-route-service/internal/domain"
	"city-route-service/internal/ports"
	"context"
	"fmt"
	"log"
)

// RouteSummarizer totals distance and travel time along a finished path.
type RouteSummarizer struct {
	Provider ports.DistanceProvider
	Logger   *log.Logger
}

func NewRouteSummarizer(provider ports.DistanceProvider, logger *log.Logger) *RouteSummarizer {
	return &RouteSummarizer{Provider: provider, Logger: orDiscard(logger)}
}

// Summarize walks consecutive pairs of path and sums kilometers and hours.
//
// Every leg must have data: the builder only links cities it measured, so an
// Unavailable sample here fails with ErrDataInconsistency instead of counting
// the leg as zero.
func (s *RouteSummarizer) Summarize(ctx context.Context, path []string) (*domain.RouteSummary, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("summarize route: %w", ErrNoCities)
	}
	logger := orDiscard(s.Logger)

	summary := &domain.RouteSummary{Legs: make([]domain.Leg, 0, len(path)-1)}

	for i := 0; i+1 < len(path); i++ {
		from, to := path[i], path[i+1]

		sample, err := s.Provider.Query(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("summarize route: query %q -> %q: %w", from, to, err)
		}
		if !sample.Available {
			return nil, fmt.Errorf("summarize route: leg %q -> %q: %w", from, to, ErrDataInconsistency)
		}

		leg := domain.Leg{
			From:       from,
			To:         to,
			DistanceKm: float64(sample.DistanceMeters) / 1000,
			TimeHours:  float64(sample.DurationSeconds) / 3600,
		}
		summary.Legs = append(summary.Legs, leg)
		summary.TotalDistanceKm += leg.DistanceKm
		summary.TotalTimeHours += leg.TimeHours

		logger.Printf("summarize route: leg from=%q to=%q km=%.2f hours=%.2f", from, to, leg.DistanceKm, leg.TimeHours)
	}

	logger.Printf("summarize route: total km=%.2f hours=%.2f", summary.TotalDistanceKm, summary.TotalTimeHours)

	return summary, nil
}
