package ports

import (
	"city-route-service/internal/domain"
	"context"
)

// Port: source of candidate cities offered by the web form.
type CityCatalog interface {
	ListCities(ctx context.Context) ([]domain.City, error)
}
