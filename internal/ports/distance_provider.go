package ports

import "context"

// Travel distance and duration between two locations, or the absence of one.
// The zero value is Unavailable.
type DistanceSample struct {
	DistanceMeters  int
	DurationSeconds int
	Available       bool
}

// Measured returns a sample carrying a real distance/duration.
func Measured(meters, seconds int) DistanceSample {
	return DistanceSample{DistanceMeters: meters, DurationSeconds: seconds, Available: true}
}

// Unavailable returns a sample signalling the provider has no data for the pair.
func Unavailable() DistanceSample { return DistanceSample{} }

// Contract for retrieving travel distance and duration between locations.
//
// A missing route is reported as an Unavailable sample, not an error.
// A non-nil error means the provider itself failed (transport, auth, quota).
type DistanceProvider interface {
	Query(ctx context.Context, origin string, destination string) (DistanceSample, error)
}
