package types

import "strings"

// Furnishing is the canonical furnishing state stored on a listing.
type Furnishing string

const (
	Furnished     Furnishing = "FURNISHED"
	SemiFurnished Furnishing = "SEMI_FURNISHED"
	Unfurnished   Furnishing = "UNFURNISHED"
)

var furnishingLabels = map[string]Furnishing{
	"Fully Furnished": Furnished,
	"Semi-Furnished":  SemiFurnished,
	"Unfurnished":     Unfurnished,
}

// FurnishingFromLabel maps a human-readable wizard label to its canonical
// value. Labels outside the table map to nil, never an error: free-text
// furnishing input is silently dropped rather than rejected.
func FurnishingFromLabel(label string) *Furnishing {
	if f, ok := furnishingLabels[label]; ok {
		return &f
	}
	return nil
}

// Storage-side property types.
const (
	TypeHouse      = "house"
	TypeFlat       = "flat"
	TypeCommercial = "commercial"
	TypePlot       = "plot"
)

var propertyTypeLabels = map[string]string{
	"Single Family Home": TypeHouse,
	"Apartment":          TypeFlat,
	"Condo/Townhouse":    TypeFlat,
	"Bungalow":           TypeHouse,
}

// PropertyTypeFromLabel maps a facet-filter label to the storage-side type.
// Unmapped labels are lower-cased and compared literally, so a filter on
// "commercial" still matches without an alias entry.
func PropertyTypeFromLabel(label string) string {
	if t, ok := propertyTypeLabels[label]; ok {
		return t
	}
	return strings.ToLower(label)
}
