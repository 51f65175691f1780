package dto

type CityResponse struct {
	CityID int    `json:"city_id"`
	Name   string `json:"name"`
}

type ListCitiesResponse struct {
	Cities []CityResponse `json:"cities"`
}
