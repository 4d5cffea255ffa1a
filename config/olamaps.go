package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/nest-quest/api-go/types"
)

const (
	suggestTimeout = 10 * time.Second
	resolveTimeout = 5 * time.Second
	maxSuggestions = 5
)

var (
	ErrPlaceNotFound = errors.New("place not found")
	ErrRateLimited   = errors.New("geocoding provider rate limited")
)

// OlaMapsClient wraps the Ola Maps places API used for address autocomplete
// and place-detail lookup during listing submission.
type OlaMapsClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewOlaMapsClient() *OlaMapsClient {
	baseURL := os.Getenv("OLA_MAPS_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.olamaps.io"
	}

	return &OlaMapsClient{
		APIKey:     os.Getenv("OLA_MAPS_API_KEY"),
		BaseURL:    baseURL,
		HTTPClient: &http.Client{},
	}
}

// Suggest returns up to 5 normalized address suggestions for the query.
// The autocomplete path never surfaces upstream failures: a missing API key,
// a timeout, or any provider error yields an empty slice with degraded=true
// so the UI keeps rendering while the condition stays visible in logs.
// Queries under 2 characters short-circuit without calling upstream.
func (o *OlaMapsClient) Suggest(ctx context.Context, query string, bias *types.LatLng) ([]types.AddressSuggestion, bool) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < 2 {
		return []types.AddressSuggestion{}, false
	}

	if o.APIKey == "" {
		return []types.AddressSuggestion{}, true
	}

	ctx, cancel := context.WithTimeout(ctx, suggestTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("input", query)
	params.Set("api_key", o.APIKey)
	if bias != nil {
		params.Set("location", fmt.Sprintf("%f,%f", bias.Lat, bias.Lng))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.BaseURL+"/places/v1/autocomplete?"+params.Encode(), nil)
	if err != nil {
		return []types.AddressSuggestion{}, true
	}
	req.Header.Set("X-Request-Id", "autocomplete-"+uuid.New().String())
	req.Header.Set("Accept", "application/json")

	resp, err := o.HTTPClient.Do(req)
	if err != nil {
		return []types.AddressSuggestion{}, true
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return []types.AddressSuggestion{}, true
	}

	var body types.OlaAutocompleteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return []types.AddressSuggestion{}, true
	}

	predictions := body.Predictions
	if len(predictions) > maxSuggestions {
		predictions = predictions[:maxSuggestions]
	}

	suggestions := make([]types.AddressSuggestion, 0, len(predictions))
	for _, prediction := range predictions {
		suggestion := types.AddressSuggestion{
			PlaceID:     prediction.PlaceID,
			Description: prediction.Description,
			MainText:    prediction.Description,
			Types:       prediction.Types,
		}
		if suggestion.Types == nil {
			suggestion.Types = []string{}
		}
		if prediction.StructuredFormatting != nil {
			if prediction.StructuredFormatting.MainText != "" {
				suggestion.MainText = prediction.StructuredFormatting.MainText
			}
			suggestion.SecondaryText = prediction.StructuredFormatting.SecondaryText
		}
		suggestions = append(suggestions, suggestion)
	}

	return suggestions, false
}

// Resolve looks up full place details for a selected suggestion.
// Unlike Suggest, failures are surfaced as typed errors: ErrPlaceNotFound
// for an unknown place id, ErrRateLimited on provider throttling.
func (o *OlaMapsClient) Resolve(ctx context.Context, placeID string) (*types.PlaceDetails, error) {
	if o.APIKey == "" {
		return nil, errors.New("OLA Maps API key not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("api_key", o.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.BaseURL+"/places/v1/details?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Request-Id", "details-"+uuid.New().String())

	resp, err := o.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrPlaceNotFound
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		return nil, fmt.Errorf("geocoding provider returned status %d", resp.StatusCode)
	}

	var body types.OlaDetailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	if body.Result == nil {
		return nil, ErrPlaceNotFound
	}

	components := body.Result.AddressComponents
	if components == nil {
		components = []types.OlaAddressComponent{}
	}

	return &types.PlaceDetails{
		PlaceID:           body.Result.PlaceID,
		FormattedAddress:  body.Result.FormattedAddress,
		Name:              body.Result.Name,
		Geometry:          body.Result.Geometry,
		AddressComponents: components,
	}, nil
}
