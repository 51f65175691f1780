package handlers

import (
	"city-route-service/internal/api/dto"
	"city-route-service/internal/platform/obs"
	"city-route-service/internal/services"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
)

// Shown to the web form when fewer than two cities are submitted.
const msgTooFewCities = "Se necesitan al menos dos ciudades"

const maxCalculateBody = 64 << 10

type RouteHandler struct {
	Calculator *services.RouteCalculator
}

// Calculate builds a nearest-neighbor route for the submitted cities and
// reports total distance and time. No partial result is sent on failure.
func (h *RouteHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.CalculateRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCalculateBody))
	defer r.Body.Close()

	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	log.Printf("req_id=%s route requested cities=%q", obs.RequestID(r.Context()), req.Cities)

	if len(req.Cities) < 2 {
		log.Printf("req_id=%s route rejected: fewer than two cities", obs.RequestID(r.Context()))
		writeError(w, r, http.StatusBadRequest, msgTooFewCities)
		return
	}

	res, err := h.Calculator.Calculate(r.Context(), req.Cities)
	switch {
	case errors.Is(err, services.ErrTooFewCities):
		writeError(w, r, http.StatusBadRequest, msgTooFewCities)
		return
	case errors.Is(err, services.ErrEmptyCity), errors.Is(err, services.ErrTooManyCities):
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		log.Printf("req_id=%s calculate route failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf(
		"req_id=%s route calculated path=%q km=%.2f hours=%.2f",
		obs.RequestID(r.Context()), res.Route.Path, res.Summary.TotalDistanceKm, res.Summary.TotalTimeHours,
	)

	unavailable := res.Route.Unavailable
	if unavailable == nil {
		unavailable = []string{}
	}

	writeJSON(w, r, http.StatusOK, dto.CalculateResponse{
		Path:              res.Route.Path,
		TotalDistance:     fmt.Sprintf("%.2f km", res.Summary.TotalDistanceKm),
		TotalTime:         fmt.Sprintf("%.2f horas", res.Summary.TotalTimeHours),
		UnavailableCities: unavailable,
	})
}
