package types

type OlaAutocompleteResponse struct {
	Predictions []OlaPrediction `json:"predictions"`
	Status      string          `json:"status"`
}

type OlaPrediction struct {
	PlaceID              string                `json:"place_id"`
	Description          string                `json:"description"`
	StructuredFormatting *StructuredFormatting `json:"structured_formatting,omitempty"`
	Types                []string              `json:"types,omitempty"`
	Reference            string                `json:"reference"`
}

type StructuredFormatting struct {
	MainText      string `json:"main_text"`
	SecondaryText string `json:"secondary_text"`
}

type OlaDetailsResponse struct {
	Result *OlaPlaceResult `json:"result"`
	Status string          `json:"status"`
}

type OlaPlaceResult struct {
	PlaceID           string                `json:"place_id"`
	FormattedAddress  string                `json:"formatted_address"`
	Name              string                `json:"name"`
	Geometry          Geometry              `json:"geometry"`
	AddressComponents []OlaAddressComponent `json:"address_components,omitempty"`
}

type OlaAddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

type Geometry struct {
	Location Location `json:"location"`
	Viewport Viewport `json:"viewport"`
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Viewport struct {
	Northeast Location `json:"northeast"`
	Southwest Location `json:"southwest"`
}
