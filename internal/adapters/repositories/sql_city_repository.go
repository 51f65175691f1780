package repositories

import (
	"city-route-service/internal/domain"
	"city-route-service/internal/platform/obs"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQL-backed implementation of the CityCatalog port (SQLite or Postgres).
type SQLCityRepository struct{ DB *sql.DB }

func NewSQLCityRepository(db *sql.DB) *SQLCityRepository {
	return &SQLCityRepository{DB: db}
}

// Return all catalog cities ordered by id.
func (s *SQLCityRepository) ListCities(ctx context.Context) (_ []domain.City, err error) {
	defer obs.Time(ctx, "cities.ListCities")(&err)

	if s.DB == nil {
		return nil, errors.New("sql city repository: DB is nil")
	}

	query := `
	SELECT
		city_id,
		name
	FROM cities
	ORDER BY city_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list cities: query cities table: %w", err)
	}
	defer rows.Close()

	cities := make([]domain.City, 0, 64)
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.CityID, &c.Name); err != nil {
			return nil, fmt.Errorf("list cities: scan row: %w", err)
		}
		cities = append(cities, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cities: row iteration: %w", err)
	}

	return cities, nil
}
