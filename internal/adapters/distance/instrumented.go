package distance

import (
	"city-route-service/internal/platform/metrics"
	"city-route-service/internal/ports"
	"context"
	"time"
)

// InstrumentedProvider records lookup outcomes and latency for any provider.
type InstrumentedProvider struct {
	Next ports.DistanceProvider
}

func NewInstrumentedProvider(next ports.DistanceProvider) *InstrumentedProvider {
	metrics.Register()
	return &InstrumentedProvider{Next: next}
}

func (p *InstrumentedProvider) Query(ctx context.Context, origin, destination string) (ports.DistanceSample, error) {
	start := time.Now()
	s, err := p.Next.Query(ctx, origin, destination)
	metrics.DistanceLookupDuration.Observe(time.Since(start).Seconds())

	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case !s.Available:
		outcome = "unavailable"
	}
	metrics.DistanceLookups.WithLabelValues(outcome).Inc()

	return s, err
}
