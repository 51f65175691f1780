package dto

type CalculateRequest struct {
	Cities []string `json:"cities"`
}

type CalculateResponse struct {
	Path              []string `json:"path"`
	TotalDistance     string   `json:"total_distance"`
	TotalTime         string   `json:"total_time"`
	UnavailableCities []string `json:"unavailable_cities"`
}
