package types

// LatLng is an optional bias coordinate for autocomplete requests.
type LatLng struct {
	Lat float64
	Lng float64
}

// AddressSuggestion is the normalized projection of an upstream
// autocomplete prediction, shaped for the submission wizard.
type AddressSuggestion struct {
	PlaceID       string   `json:"place_id"`
	Description   string   `json:"description"`
	MainText      string   `json:"main_text"`
	SecondaryText string   `json:"secondary_text"`
	Types         []string `json:"types"`
}

type PlaceDetails struct {
	PlaceID           string                `json:"place_id"`
	FormattedAddress  string                `json:"formatted_address"`
	Name              string                `json:"name"`
	Geometry          Geometry              `json:"geometry"`
	AddressComponents []OlaAddressComponent `json:"address_components"`
}
