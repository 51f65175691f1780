package api

import (
	"bytes"
	"city-route-service/internal/adapters/catalog"
	"city-route-service/internal/adapters/distance"
	"city-route-service/internal/domain"
	"city-route-service/internal/ports"
	"city-route-service/internal/services"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenProvider struct{}

func (brokenProvider) Query(ctx context.Context, origin, destination string) (ports.DistanceSample, error) {
	return ports.DistanceSample{}, errors.New("maps service unreachable")
}

func newTestRouter(provider ports.DistanceProvider) http.Handler {
	return NewRouter(RouterDeps{
		Provider: provider,
		Catalog:  catalog.NewStatic([]string{"Quito", "Ibarra", "Otavalo"}),
	})
}

func postCalculate(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/calculate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rr, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), "body: %s", rr.Body.String())
	return rr, out
}

func TestCalculateSuccess(t *testing.T) {
	provider := distance.NewStaticDistanceProvider([]distance.StaticPair{
		{From: "Quito", To: "Ibarra", Meters: 115000, Seconds: 7200},
		{From: "Quito", To: "Otavalo", Meters: 95000, Seconds: 5400},
		{From: "Otavalo", To: "Ibarra", Meters: 25000, Seconds: 1800},
	})

	rr, out := postCalculate(t, newTestRouter(provider), `{"cities": ["Quito", "Ibarra", "Otavalo"]}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []any{"Quito", "Otavalo", "Ibarra"}, out["path"])
	assert.Equal(t, "120.00 km", out["total_distance"])
	assert.Equal(t, "2.00 horas", out["total_time"])
	assert.Equal(t, []any{}, out["unavailable_cities"])
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
}

func TestCalculateSingleCityIsBadRequest(t *testing.T) {
	rr, out := postCalculate(t, newTestRouter(distance.NewStaticDistanceProvider(nil)), `{"cities": ["Quito"]}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Se necesitan al menos dos ciudades", out["error"])
}

func TestCalculateAllPairsUnavailable(t *testing.T) {
	rr, out := postCalculate(t, newTestRouter(distance.NewStaticDistanceProvider(nil)), `{"cities": ["Quito", "Ibarra", "Otavalo"]}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []any{"Quito"}, out["path"])
	assert.Equal(t, []any{"Ibarra", "Otavalo"}, out["unavailable_cities"])
	assert.Equal(t, "0.00 km", out["total_distance"])
	assert.Equal(t, "0.00 horas", out["total_time"])
}

func TestCalculateProviderFailureIsServerError(t *testing.T) {
	rr, out := postCalculate(t, newTestRouter(brokenProvider{}), `{"cities": ["Quito", "Ibarra"]}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, out["error"], "maps service unreachable")
	assert.NotContains(t, out, "path")
}

func TestCalculateBadRequests(t *testing.T) {
	h := newTestRouter(distance.NewStaticDistanceProvider(nil))

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed", body: `{"cities": [`},
		{name: "two objects", body: `{"cities": ["Quito", "Ibarra"]}{}`},
		{name: "missing cities", body: `{}`},
		{name: "blank city", body: `{"cities": ["Quito", " "]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, out := postCalculate(t, h, tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.NotEmpty(t, out["error"])
		})
	}
}

func TestCalculateIgnoresExtraFields(t *testing.T) {
	provider := distance.NewStaticDistanceProvider([]distance.StaticPair{
		{From: "Quito", To: "Ibarra", Meters: 115000, Seconds: 7200},
	})

	rr, out := postCalculate(t, newTestRouter(provider), `{"cities": ["Quito", "Ibarra"], "mode": "driving"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []any{"Quito", "Ibarra"}, out["path"])
	assert.Equal(t, "115.00 km", out["total_distance"])
}

func TestCalculateRejectsOversizedBody(t *testing.T) {
	body := `{"cities": ["Quito", "` + strings.Repeat("a", 70<<10) + `"]}`

	rr, out := postCalculate(t, newTestRouter(distance.NewStaticDistanceProvider(nil)), body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Equal(t, "request body too large", out["error"])
}

func TestCalculateRejectsTooManyCities(t *testing.T) {
	names := make([]string, services.MaxCities+1)
	for i := range names {
		names[i] = fmt.Sprintf("Ciudad %d", i)
	}
	body, err := json.Marshal(map[string][]string{"cities": names})
	require.NoError(t, err)

	rr, out := postCalculate(t, newTestRouter(distance.NewStaticDistanceProvider(nil)), string(body))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, out["error"], "at most")
}

func TestCalculateMethodNotAllowed(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter(distance.NewStaticDistanceProvider(nil)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/calculate", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, http.MethodPost, rr.Header().Get("Allow"))
}

func TestIndexListsCatalog(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter(distance.NewStaticDistanceProvider(nil)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	body := rr.Body.String()
	for _, c := range []string{"Quito", "Ibarra", "Otavalo"} {
		assert.Contains(t, body, `value="`+c+`"`)
	}
	assert.NotContains(t, body, "maps/api/js")
}

func TestCitiesAndHealth(t *testing.T) {
	h := newTestRouter(distance.NewStaticDistanceProvider(nil))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/cities", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name":"Ibarra"`)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter(distance.NewStaticDistanceProvider(nil))

	// One request first so the HTTP counters have a sample.
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, bytes.Contains(rr.Body.Bytes(), []byte("http_requests_total")))
}

func TestRequestIDIsPropagated(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	newTestRouter(distance.NewStaticDistanceProvider(nil)).ServeHTTP(rr, req)

	assert.Equal(t, "abc-123", rr.Header().Get("X-Request-Id"))
}

type brokenCatalog struct{}

func (brokenCatalog) ListCities(ctx context.Context) ([]domain.City, error) {
	return nil, errors.New("database is locked")
}

func TestHealthDegradedWhenCatalogFails(t *testing.T) {
	h := NewRouter(RouterDeps{Provider: distance.NewStaticDistanceProvider(nil), Catalog: brokenCatalog{}})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
