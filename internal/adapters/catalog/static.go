package catalog

import (
	"city-route-service/internal/domain"
	"context"
)

// EcuadorCities is the default list of candidate cities shown by the web form.
var EcuadorCities = []string{
	"Quito", "Guayaquil", "Cuenca", "Santo Domingo", "Machala",
	"Durán", "Manta", "Portoviejo", "Loja", "Ambato",
	"Riobamba", "Esmeraldas", "Quevedo", "Milagro", "Ibarra",
	"Latacunga", "Babahoyo", "Tulcán", "Azogues", "Otavalo",
	"Santa Elena", "Nueva Loja", "Salinas", "Chone", "Cayambe",
	"Playas", "Zamora", "Macas", "Tena", "Puyo",
	"Puerto Francisco de Orellana", "Yantzaza", "La Troncal", "Jipijapa", "Pedernales",
	"Montecristi", "Pedro Carbo", "Santa Rosa", "El Carmen", "Samborondón",
}

// Static serves a fixed, in-memory city list. IDs follow list order from 1.
type Static struct {
	cities []domain.City
}

func NewStatic(names []string) *Static {
	cities := make([]domain.City, 0, len(names))
	for i, n := range names {
		cities = append(cities, domain.City{CityID: i + 1, Name: n})
	}
	return &Static{cities: cities}
}

func (s *Static) ListCities(ctx context.Context) ([]domain.City, error) {
	out := make([]domain.City, len(s.cities))
	copy(out, s.cities)
	return out, nil
}
