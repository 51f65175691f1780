package handlers

import (
	"city-route-service/internal/api/dto"
	"city-route-service/internal/ports"
	"log"
	"net/http"
)

// CityHandler exposes the candidate city catalog.
type CityHandler struct {
	Catalog ports.CityCatalog
}

func (h *CityHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	cities, err := h.Catalog.ListCities(r.Context())
	if err != nil {
		log.Printf("list cities failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListCitiesResponse{
		Cities: make([]dto.CityResponse, 0, len(cities)),
	}
	for _, c := range cities {
		res.Cities = append(res.Cities, dto.CityResponse{CityID: c.CityID, Name: c.Name})
	}

	writeJSON(w, r, http.StatusOK, res)
}
