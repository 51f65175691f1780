package handlers

import (
	"city-route-service/internal/ports"
	"context"
	"log"
	"net/http"
	"time"
)

// HealthHandler reports liveness plus whether the city catalog answers.
type HealthHandler struct {
	Catalog ports.CityCatalog
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if _, err := h.Catalog.ListCities(ctx); err != nil {
		log.Printf("health: catalog unavailable: %v", err)
		writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
