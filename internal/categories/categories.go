// Package categories maps UI-facing category identifiers to the provider's
// category taxonomy.
package categories

import (
	"sort"

	"localfind/internal/core"
)

// table is the immutable mapping from UI categories to provider categories.
// "all" intentionally expands to nothing: the gateway substitutes the
// fallback set when expansion produces an empty list.
var table = map[string][]string{
	"accommodation":    {"accommodation.hotel", "accommodation.hostel"},
	"healthcare":       {"healthcare.hospital", "healthcare.clinic"},
	"catering":         {"catering.restaurant", "catering.cafe"},
	"education":        {"education.school", "education.university"},
	"public_transport": {"public_transport.bus_station", "public_transport.train_station"},
	"entertainment":    {"entertainment.cinema", "entertainment.theatre"},
	"emergency":        {"emergency.police", "emergency.fire_station"},
	"sports":           {"sport.fitness", "sport.stadium"},
	"all":              {},
}

// Fallback is the provider-category set used when expansion yields nothing.
var Fallback = []string{
	"commercial.supermarket",
	"healthcare.hospital",
	"transport.bus_station",
	"service",
}

// Known reports whether the UI category exists in the mapping table.
func Known(category string) bool {
	_, ok := table[category]
	return ok
}

// Names returns every known UI category, sorted.
func Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Expand maps UI categories to provider categories, concatenated in input
// order. Duplicates are kept; the provider unions them idempotently. Any
// unknown category rejects the whole request, no partial expansion.
func Expand(uiCategories []string) ([]string, error) {
	var expanded []string
	for _, category := range uiCategories {
		mapped, ok := table[category]
		if !ok {
			return nil, core.NewInvalidCategoryError(category)
		}
		expanded = append(expanded, mapped...)
	}
	return expanded, nil
}
