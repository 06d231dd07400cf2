// Package e2e exercises full HTTP round trips through the real server,
// gateway, and provider client against a stubbed provider API.
package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"localfind/internal/cache"
	"localfind/internal/core"
	"localfind/internal/gateway"
	"localfind/internal/geoapify"
	"localfind/internal/server"
)

// stubProvider is a canned Geoapify API.
type stubProvider struct {
	calls     atomic.Int64
	responses map[string]string // path -> body
	status    int
}

func (s *stubProvider) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		if s.status != 0 {
			w.WriteHeader(s.status)
			_, _ = w.Write([]byte(`{"statusCode":500,"message":"boom"}`))
			return
		}
		body, ok := s.responses[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	}
}

func newStack(t *testing.T, stub *stubProvider) *server.Server {
	t.Helper()
	upstream := httptest.NewServer(stub.handler())
	t.Cleanup(upstream.Close)

	client := geoapify.NewWithHTTPClient("test-key", upstream.Client())
	client.SetBaseURL(upstream.URL)

	svc := gateway.New(cache.Disabled{}, client)
	return server.New(svc, nil)
}

func TestGeocodeEndToEnd(t *testing.T) {
	stub := &stubProvider{responses: map[string]string{
		"/geocode/search": `{"features":[{"properties":{"city":"Paris"},"geometry":{"coordinates":[2.3522,48.8566]}}]}`,
	}}
	srv := newStack(t, stub)

	req := httptest.NewRequest(http.MethodGet, "/location/geocode?city=Paris", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	var result core.GeocodeResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if result.Lat != 48.8566 || result.Lng != 2.3522 {
		t.Errorf("coordinates not reordered: %+v", result)
	}
	if result.Lat < -90 || result.Lat > 90 || result.Lng < -180 || result.Lng > 180 {
		t.Errorf("coordinates out of range: %+v", result)
	}
}

func TestGeocodeWorksWithCacheDisabled(t *testing.T) {
	stub := &stubProvider{responses: map[string]string{
		"/geocode/search": `{"features":[{"properties":{},"geometry":{"coordinates":[2.3522,48.8566]}}]}`,
	}}
	srv := newStack(t, stub)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/location/geocode?city=Paris", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}
	// No cache, so both requests reach the provider.
	if got := stub.calls.Load(); got != 2 {
		t.Errorf("expected 2 upstream calls, got %d", got)
	}
}

func TestReverseEndToEndStateFallback(t *testing.T) {
	stub := &stubProvider{responses: map[string]string{
		"/geocode/reverse": `{"features":[{"properties":{"state":"New York","formatted":"New York, NY, United States of America"},"geometry":{"coordinates":[-74.006,40.7128]}}]}`,
	}}
	srv := newStack(t, stub)

	req := httptest.NewRequest(http.MethodGet, "/location/reverse?lat=40.7128&lng=-74.0060", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var result core.ReverseResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if result.City != "New York" {
		t.Errorf("expected state to back-fill city, got %q", result.City)
	}
}

func TestNearbyEndToEnd(t *testing.T) {
	// One feature with coordinates and no opening hours.
	stub := &stubProvider{responses: map[string]string{
		"/places": `{"features":[{"properties":{"place_id":"abc123","name":"Chez Test","categories":["catering.restaurant"],"formatted":"1 Rue Test, Paris","distance":142},"geometry":{"coordinates":[2.36,48.86]}}]}`,
	}}
	srv := newStack(t, stub)

	body := `{"lat":48.85,"lng":2.35,"categories":["catering"],"radiusKm":5,"limit":10,"openNow":false}`
	req := httptest.NewRequest(http.MethodPost, "/places/nearby", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	var resp core.NearbyPlacesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(resp.Results))
	}
	place := resp.Results[0]
	if place.Lat != 48.86 || place.Lng != 2.36 {
		t.Errorf("coordinates not reordered from [lng,lat]: %+v", place)
	}
	if place.Name != "Chez Test" || place.Category != "catering.restaurant" {
		t.Errorf("unexpected place: %+v", place)
	}
}

func TestNearbyOpenNowFiltersEndToEnd(t *testing.T) {
	stub := &stubProvider{responses: map[string]string{
		"/places": `{"features":[{"properties":{"name":"No hours"},"geometry":{"coordinates":[2.36,48.86]}}]}`,
	}}
	srv := newStack(t, stub)

	body := `{"lat":48.85,"lng":2.35,"categories":["catering"],"radiusKm":5,"openNow":true}`
	req := httptest.NewRequest(http.MethodPost, "/places/nearby", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp core.NearbyPlacesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Results) != 0 {
		t.Errorf("feature without opening hours must be dropped under openNow, got %+v", resp.Results)
	}
}

func TestUnknownCategoryNeverReachesProvider(t *testing.T) {
	stub := &stubProvider{responses: map[string]string{}}
	srv := newStack(t, stub)

	body := `{"lat":48.85,"lng":2.35,"categories":["zzz-unknown"],"radiusKm":5}`
	req := httptest.NewRequest(http.MethodPost, "/places/nearby", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := stub.calls.Load(); got != 0 {
		t.Errorf("expected no upstream calls, got %d", got)
	}
}

func TestUpstreamFailureMapsTo502(t *testing.T) {
	stub := &stubProvider{status: http.StatusInternalServerError}
	srv := newStack(t, stub)

	req := httptest.NewRequest(http.MethodGet, "/location/geocode?city=Paris", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d (%s)", rec.Code, rec.Body.String())
	}
}
