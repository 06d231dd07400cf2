package gateway

import (
	"crypto/md5" //nolint:gosec // cache key derivation, not security
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"localfind/internal/core"
)

// GeocodeKey returns the cache key for a forward-geocode request.
func GeocodeKey(city string) string {
	return "geocode:" + strings.ToLower(city)
}

// ReverseKey returns the cache key for a reverse-geocode request.
// Coordinates render in shortest round-trip form, no rounding.
func ReverseKey(lat, lng float64) string {
	return "reverse:" + formatFloat(lat) + ":" + formatFloat(lng)
}

// PlacesKey returns the cache key for a nearby-places request. Categories are
// sorted before hashing so field order never changes cache identity.
//
// The hashed string must stay byte-compatible with entries written by the
// previously deployed service: the category list renders in list-literal form
// with single quotes and the boolean renders True/False.
func PlacesKey(req *core.NearbyPlacesRequest) string {
	cats := append([]string(nil), req.Categories...)
	sort.Strings(cats)
	quoted := make([]string, len(cats))
	for i, c := range cats {
		quoted[i] = "'" + c + "'"
	}

	openNow := "False"
	if req.OpenNow {
		openNow = "True"
	}

	raw := fmt.Sprintf("%s:%s:[%s]:%d:%d:%s:%s",
		formatFloat(req.Lat),
		formatFloat(req.Lng),
		strings.Join(quoted, ", "),
		req.RadiusKm,
		req.Limit,
		req.SortBy,
		openNow,
	)

	sum := md5.Sum([]byte(raw)) //nolint:gosec
	return "places:" + hex.EncodeToString(sum[:])
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
