// Package gateway orchestrates the three cached operations: forward geocode,
// reverse geocode, and nearby-places search. Each flow shares one cache-aside
// skeleton: build the key, try the cache, call the provider on a miss,
// normalize, write back, return.
package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/singleflight"

	"localfind/internal/cache"
	"localfind/internal/categories"
	"localfind/internal/core"
	"localfind/internal/observability"
)

// Operation labels shared by logs and metrics.
const (
	opGeocode = "geocode"
	opReverse = "reverse"
	opNearby  = "nearby"
)

// Provider is the upstream client contract the gateway depends on.
type Provider interface {
	Geocode(ctx context.Context, city string) (*core.FeatureCollection, error)
	ReverseGeocode(ctx context.Context, lat, lng float64) (*core.FeatureCollection, error)
	Nearby(ctx context.Context, lat, lng float64, categories []string, radiusMeters, limit int) (*core.FeatureCollection, error)
}

// Service implements the cached gateway flows. Safe for concurrent use:
// per-request state lives on the stack, and concurrent misses for the same
// key are coalesced into one provider call.
type Service struct {
	store    cache.Store
	provider Provider
	flight   singleflight.Group
}

// New creates a gateway service over the given cache store and provider.
func New(store cache.Store, provider Provider) *Service {
	return &Service{store: store, provider: provider}
}

// Geocode resolves a city name to coordinates.
func (s *Service) Geocode(ctx context.Context, city string) (*core.GeocodeResult, error) {
	key := GeocodeKey(city)

	var cached core.GeocodeResult
	if s.readCache(ctx, opGeocode, key, &cached) {
		return &cached, nil
	}

	value, err, _ := s.flight.Do(key, func() (interface{}, error) {
		collection, err := s.callUpstream(ctx, opGeocode, func(ctx context.Context) (*core.FeatureCollection, error) {
			return s.provider.Geocode(ctx, city)
		})
		if err != nil {
			return nil, err
		}

		if len(collection.Features) == 0 {
			return nil, core.NewNotFoundError("city not found")
		}
		feature := collection.Features[0]
		if !feature.HasCoordinates() {
			return nil, core.NewNotFoundError("city not found")
		}

		// Provider coordinates arrive as [lng, lat].
		result := &core.GeocodeResult{Lat: feature.Lat(), Lng: feature.Lng()}
		s.writeCache(ctx, key, result)
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*core.GeocodeResult), nil
}

// Reverse resolves coordinates to a locality name and formatted address.
func (s *Service) Reverse(ctx context.Context, lat, lng float64) (*core.ReverseResult, error) {
	key := ReverseKey(lat, lng)

	var cached core.ReverseResult
	if s.readCache(ctx, opReverse, key, &cached) {
		return &cached, nil
	}

	value, err, _ := s.flight.Do(key, func() (interface{}, error) {
		collection, err := s.callUpstream(ctx, opReverse, func(ctx context.Context) (*core.FeatureCollection, error) {
			return s.provider.ReverseGeocode(ctx, lat, lng)
		})
		if err != nil {
			return nil, err
		}

		if len(collection.Features) == 0 {
			return nil, core.NewNotFoundError("location not found")
		}
		props := collection.Features[0].Properties

		result := &core.ReverseResult{
			City:      props.Locality(),
			Formatted: props.Formatted,
		}
		s.writeCache(ctx, key, result)
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*core.ReverseResult), nil
}

// Nearby searches for places around a point. The request must already be
// validated; defaults are assumed filled.
func (s *Service) Nearby(ctx context.Context, req *core.NearbyPlacesRequest) (*core.NearbyPlacesResponse, error) {
	// Unknown categories reject the request before any I/O.
	providerCategories, err := expandCategories(req.Categories)
	if err != nil {
		return nil, err
	}

	key := PlacesKey(req)

	var cached core.NearbyPlacesResponse
	if s.readCache(ctx, opNearby, key, &cached) {
		return &cached, nil
	}

	value, err, _ := s.flight.Do(key, func() (interface{}, error) {
		collection, err := s.callUpstream(ctx, opNearby, func(ctx context.Context) (*core.FeatureCollection, error) {
			return s.provider.Nearby(ctx, req.Lat, req.Lng, providerCategories, req.RadiusKm*1000, req.Limit)
		})
		if err != nil {
			return nil, err
		}

		result := &core.NearbyPlacesResponse{
			Results: normalizePlaces(collection, req.OpenNow, req.SortBy),
		}
		s.writeCache(ctx, key, result)
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*core.NearbyPlacesResponse), nil
}

// expandCategories maps UI categories to provider categories, substituting
// the fallback set when there is nothing to expand. An empty input never
// survives validation, but the substitution still applies for defense in
// depth; ["all"] expands to nothing and lands here too.
func expandCategories(uiCategories []string) ([]string, error) {
	if len(uiCategories) == 0 {
		return categories.Fallback, nil
	}
	expanded, err := categories.Expand(uiCategories)
	if err != nil {
		return nil, err
	}
	if len(expanded) == 0 {
		return categories.Fallback, nil
	}
	return expanded, nil
}

// normalizePlaces converts raw features into Places. Features without
// coordinates are dropped; with openNow, features lacking opening-hours data
// are dropped as "not verifiably open".
func normalizePlaces(collection *core.FeatureCollection, openNow bool, sortBy string) []core.Place {
	places := make([]core.Place, 0, len(collection.Features))

	for _, feature := range collection.Features {
		if !feature.HasCoordinates() {
			continue
		}
		props := feature.Properties
		if openNow && props.OpeningHours == "" {
			continue
		}

		place := core.Place{
			ID:       props.PlaceID,
			Name:     props.Name,
			Category: "service",
			Lat:      feature.Lat(),
			Lng:      feature.Lng(),
			Address:  props.Formatted,
			Distance: props.Distance,
		}
		if place.Name == "" {
			place.Name = "Unknown"
		}
		if len(props.Categories) > 0 {
			place.Category = props.Categories[0]
		}
		if place.Address == "" {
			place.Address = "Unknown address"
		}

		places = append(places, place)
	}

	sortPlaces(places, sortBy)
	return places
}

// sortPlaces orders results by the requested key. Provider results arrive
// distance-biased already, so the distance sort is stable to keep the
// provider's tie-breaking.
func sortPlaces(places []core.Place, sortBy string) {
	switch sortBy {
	case core.SortByName:
		sort.SliceStable(places, func(i, j int) bool { return places[i].Name < places[j].Name })
	default:
		sort.SliceStable(places, func(i, j int) bool { return places[i].Distance < places[j].Distance })
	}
}

// readCache attempts a cache read and decodes the entry into out. A corrupt
// entry counts as a miss; the flow falls through to the provider and the
// entry is overwritten.
func (s *Service) readCache(ctx context.Context, op, key string, out interface{}) bool {
	data, ok := s.store.Get(ctx, key)
	if !ok {
		observability.CacheMisses.WithLabelValues(op).Inc()
		slog.Debug("cache miss", "operation", op, "key", key)
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		observability.CacheMisses.WithLabelValues(op).Inc()
		slog.Warn("corrupt cache entry, treating as miss", "operation", op, "key", key, "error", err)
		return false
	}
	observability.CacheHits.WithLabelValues(op).Inc()
	slog.Debug("cache hit", "operation", op, "key", key)
	return true
}

// callUpstream runs one provider call on a context detached from the inbound
// request: once started, the call runs to completion or to the client's own
// timeout, regardless of caller disconnects.
func (s *Service) callUpstream(ctx context.Context, op string, call func(context.Context) (*core.FeatureCollection, error)) (*core.FeatureCollection, error) {
	slog.Debug("upstream call", "operation", op)
	start := time.Now()
	collection, err := call(context.WithoutCancel(ctx))
	observability.UpstreamDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		observability.UpstreamRequests.WithLabelValues(op, observability.OutcomeError).Inc()
		return nil, err
	}
	observability.UpstreamRequests.WithLabelValues(op, observability.OutcomeSuccess).Inc()
	return collection, nil
}

// writeCache stores a normalized result, best effort. Failed upstream calls
// never reach here, so failures are never cached.
func (s *Service) writeCache(ctx context.Context, key string, result interface{}) {
	data, err := json.Marshal(result)
	if err != nil {
		slog.Warn("failed to marshal cache entry", "key", key, "error", err)
		return
	}
	s.store.Set(context.WithoutCancel(ctx), key, data)
}
