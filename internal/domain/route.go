package domain

// Represents the visiting order produced by the nearest-neighbor builder.
// Path starts with the caller-supplied first city. Unavailable lists every
// city whose lookup failed, in the order the failures happened; a city is
// listed once per round it failed in.
type Route struct {
	Path        []string
	Unavailable []string
}

// Leg is one consecutive pair of cities in a finished path.
type Leg struct {
	From       string
	To         string
	DistanceKm float64
	TimeHours  float64
}

// Aggregate distance and travel time along a finished path.
type RouteSummary struct {
	TotalDistanceKm float64
	TotalTimeHours  float64
	Legs            []Leg
}

// RouteResult bundles a built route with its summary.
type RouteResult struct {
	Route   Route
	Summary RouteSummary
}
