package api

import (
	"city-route-service/internal/api/handlers"
	"city-route-service/internal/platform/metrics"
	"city-route-service/internal/ports"
	"city-route-service/internal/services"
	"log"
	"net/http"
)

// RouterDeps are the collaborators the HTTP layer needs.
type RouterDeps struct {
	Provider       ports.DistanceProvider
	Catalog        ports.CityCatalog
	Logger         *log.Logger
	MapsBrowserKey string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers stay unaware of concrete adapters.
func NewRouter(deps RouterDeps) http.Handler {
	metrics.Register()

	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{
		Calculator: services.NewRouteCalculator(deps.Provider, deps.Logger),
	}
	cityHandler := &handlers.CityHandler{Catalog: deps.Catalog}
	healthHandler := &handlers.HealthHandler{Catalog: deps.Catalog}
	pageHandler := &handlers.PageHandler{
		Catalog:        deps.Catalog,
		MapsBrowserKey: deps.MapsBrowserKey,
	}

	mux.HandleFunc("/", pageHandler.Index)
	mux.HandleFunc("/calculate", routeHandler.Calculate)
	mux.HandleFunc("/cities", cityHandler.List)
	mux.HandleFunc("/health", healthHandler.Health)
	mux.Handle("/metrics", metrics.Handler())

	known := map[string]struct{}{
		"/": {}, "/calculate": {}, "/cities": {}, "/health": {}, "/metrics": {},
	}

	return requestIDMiddleware(loggingMiddleware(known, mux))
}
