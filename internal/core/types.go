// Package core provides shared types and the error taxonomy for the gateway.
package core

import "fmt"

// Nearby request bounds. Requests outside these are rejected before any I/O.
const (
	MinRadiusKm = 1
	MaxRadiusKm = 20
	MinLimit    = 1
	MaxLimit    = 50

	DefaultLimit  = 20
	DefaultSortBy = SortByDistance
)

// Supported sort orders for nearby results.
const (
	SortByDistance = "distance"
	SortByName     = "name"
)

// GeocodeResult is the response shape of the forward-geocode operation.
type GeocodeResult struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ReverseResult is the response shape of the reverse-geocode operation.
// City is resolved from the provider's locality fields by priority
// (city, then town, then village, then state); either field may be absent.
type ReverseResult struct {
	City      string `json:"city,omitempty"`
	Formatted string `json:"formatted,omitempty"`
}

// NearbyPlacesRequest is the body of POST /places/nearby.
type NearbyPlacesRequest struct {
	Lat        float64  `json:"lat"`
	Lng        float64  `json:"lng"`
	Categories []string `json:"categories"`
	RadiusKm   int      `json:"radiusKm"`
	Limit      int      `json:"limit"`
	SortBy     string   `json:"sortBy"`
	OpenNow    bool     `json:"openNow"`
}

// Validate checks field ranges and fills defaults (limit, sortBy) in place.
// Defaults are applied before cache-key construction so an omitted field and
// its explicit default produce the same key.
func (r *NearbyPlacesRequest) Validate() error {
	if r.Lat < -90 || r.Lat > 90 {
		return NewInvalidRequestError(fmt.Sprintf("lat must be within [-90, 90], got %v", r.Lat), nil)
	}
	if r.Lng < -180 || r.Lng > 180 {
		return NewInvalidRequestError(fmt.Sprintf("lng must be within [-180, 180], got %v", r.Lng), nil)
	}
	if len(r.Categories) == 0 {
		return NewInvalidRequestError("categories must not be empty", nil)
	}
	if r.RadiusKm < MinRadiusKm || r.RadiusKm > MaxRadiusKm {
		return NewInvalidRequestError(fmt.Sprintf("radiusKm must be within [%d, %d], got %d", MinRadiusKm, MaxRadiusKm, r.RadiusKm), nil)
	}
	if r.Limit == 0 {
		r.Limit = DefaultLimit
	}
	if r.Limit < MinLimit || r.Limit > MaxLimit {
		return NewInvalidRequestError(fmt.Sprintf("limit must be within [%d, %d], got %d", MinLimit, MaxLimit, r.Limit), nil)
	}
	if r.SortBy == "" {
		r.SortBy = DefaultSortBy
	}
	if r.SortBy != SortByDistance && r.SortBy != SortByName {
		return NewInvalidRequestError("sortBy must be \"distance\" or \"name\", got \""+r.SortBy+"\"", nil)
	}
	return nil
}

// Place is a single normalized nearby-search result.
type Place struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Address  string  `json:"address"`
	Distance int     `json:"distance"`
}

// NearbyPlacesResponse wraps the normalized nearby-search results.
type NearbyPlacesResponse struct {
	Results []Place `json:"results"`
}
