package domain

// A candidate location offered to users when building a route.
// Name is the identifier passed to the distance provider.
type City struct {
	CityID int
	Name   string
}
