// Package filters narrows a route-filtered listing result set by the
// user-adjustable facet filters: price range, property type, amenities and
// area. Filtering is exact-match / range-match only; there is no ranking.
package filters

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/nest-quest/api-go/models"
	"github.com/nest-quest/api-go/types"
)

// FilterState is the immutable facet-filter snapshot for one query. A nil
// bound or empty set means the corresponding clause is skipped.
type FilterState struct {
	PriceMin      *float64
	PriceMax      *float64
	PropertyTypes []string // UI labels, mapped to storage types on apply
	Amenities     []string
	AreaMin       *int
	AreaMax       *int
}

// IsZero reports whether no facet is active.
func (fs FilterState) IsZero() bool {
	return fs.PriceMin == nil && fs.PriceMax == nil &&
		len(fs.PropertyTypes) == 0 && len(fs.Amenities) == 0 &&
		fs.AreaMin == nil && fs.AreaMax == nil
}

func (fs FilterState) priceActive() bool {
	return fs.PriceMin != nil || fs.PriceMax != nil
}

func (fs FilterState) areaActive() bool {
	return fs.AreaMin != nil || fs.AreaMax != nil
}

// FromQuery builds a FilterState from listing query parameters. Set
// parameters (propertyTypes, amenities) are comma separated; unparseable
// bounds are treated as unset.
func FromQuery(values url.Values) FilterState {
	fs := FilterState{
		PriceMin:      parseFloatParam(values.Get("minPrice")),
		PriceMax:      parseFloatParam(values.Get("maxPrice")),
		AreaMin:       parseIntParam(values.Get("minArea")),
		AreaMax:       parseIntParam(values.Get("maxArea")),
		PropertyTypes: splitParam(values.Get("propertyTypes")),
		Amenities:     splitParam(values.Get("amenities")),
	}
	return fs
}

// Apply retains the listings matching every active facet clause.
func Apply(listings []types.ListingWithOwner, fs FilterState) []types.ListingWithOwner {
	if fs.IsZero() {
		return listings
	}

	filtered := make([]types.ListingWithOwner, 0, len(listings))
	for _, listing := range listings {
		if Matches(&listing.Listing, fs) {
			filtered = append(filtered, listing)
		}
	}
	return filtered
}

// Matches evaluates the four-clause conjunction for a single listing. Each
// clause is vacuously true when its facet is unset.
func Matches(l *models.Listing, fs FilterState) bool {
	return matchesPrice(l, fs) &&
		matchesType(l, fs) &&
		matchesAmenities(l, fs) &&
		matchesArea(l, fs)
}

func matchesPrice(l *models.Listing, fs FilterState) bool {
	if !fs.priceActive() {
		return true
	}
	price, ok := l.EffectivePrice()
	if !ok {
		// no price at all excludes the listing while a price filter is on
		return false
	}
	if fs.PriceMin != nil && price < *fs.PriceMin {
		return false
	}
	if fs.PriceMax != nil && price > *fs.PriceMax {
		return false
	}
	return true
}

func matchesType(l *models.Listing, fs FilterState) bool {
	if len(fs.PropertyTypes) == 0 {
		return true
	}
	for _, label := range fs.PropertyTypes {
		if types.PropertyTypeFromLabel(label) == l.Type {
			return true
		}
	}
	return false
}

func matchesAmenities(l *models.Listing, fs FilterState) bool {
	if len(fs.Amenities) == 0 {
		return true
	}
	// intersection, not subset: one shared amenity is enough
	have := make(map[string]bool, len(l.Amenities))
	for _, amenity := range l.Amenities {
		have[strings.ToLower(amenity)] = true
	}
	for _, selected := range fs.Amenities {
		if have[strings.ToLower(selected)] {
			return true
		}
	}
	return false
}

func matchesArea(l *models.Listing, fs FilterState) bool {
	if !fs.areaActive() {
		return true
	}
	if l.SquareFeet == nil {
		return false
	}
	if fs.AreaMin != nil && *l.SquareFeet < *fs.AreaMin {
		return false
	}
	if fs.AreaMax != nil && *l.SquareFeet > *fs.AreaMax {
		return false
	}
	return true
}

func parseFloatParam(s string) *float64 {
	if s == "" {
		return nil
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &val
}

func parseIntParam(s string) *int {
	if s == "" {
		return nil
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &val
}

func splitParam(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
