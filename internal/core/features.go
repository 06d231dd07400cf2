package core

// FeatureCollection is the raw GeoJSON-like payload returned by the provider
// for all three operations.
type FeatureCollection struct {
	Features []Feature `json:"features"`
}

// Feature is a single provider record.
type Feature struct {
	Properties FeatureProperties `json:"properties"`
	Geometry   Geometry          `json:"geometry"`
}

// Geometry carries the feature coordinates in the provider's [lng, lat] order.
type Geometry struct {
	Coordinates []float64 `json:"coordinates"`
}

// HasCoordinates reports whether the feature carries a usable coordinate pair.
func (f Feature) HasCoordinates() bool {
	return len(f.Geometry.Coordinates) >= 2
}

// Lng returns the feature longitude. Only valid when HasCoordinates is true.
func (f Feature) Lng() float64 { return f.Geometry.Coordinates[0] }

// Lat returns the feature latitude. Only valid when HasCoordinates is true.
func (f Feature) Lat() float64 { return f.Geometry.Coordinates[1] }

// FeatureProperties holds the subset of provider properties the gateway reads.
type FeatureProperties struct {
	PlaceID      string   `json:"place_id"`
	Name         string   `json:"name"`
	Categories   []string `json:"categories"`
	Formatted    string   `json:"formatted"`
	City         string   `json:"city"`
	Town         string   `json:"town"`
	Village      string   `json:"village"`
	State        string   `json:"state"`
	Distance     int      `json:"distance"`
	OpeningHours string   `json:"opening_hours"`
}

// Locality resolves the best available locality name: city, then town, then
// village, then state. Returns "" when none is present.
func (p FeatureProperties) Locality() string {
	for _, candidate := range []string{p.City, p.Town, p.Village, p.State} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}
