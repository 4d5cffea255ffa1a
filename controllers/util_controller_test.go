package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nest-quest/api-go/config"
	"github.com/nest-quest/api-go/types"
	"github.com/stretchr/testify/assert"
)

func newUtilRouter(upstream http.Handler) (*gin.Engine, *httptest.Server) {
	gin.SetMode(gin.TestMode)
	server := httptest.NewServer(upstream)

	uc := NewUtilController(&config.OlaMapsClient{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})

	r := gin.New()
	r.GET("/api/utils/address/autocomplete", uc.GetAddressSuggestions)
	r.GET("/api/utils/address/details/:place_id", uc.GetPlaceDetails)
	return r, server
}

func getJSON(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestAutocompleteReturnsSuggestions(t *testing.T) {
	r, server := newUtilRouter(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(types.OlaAutocompleteResponse{
			Predictions: []types.OlaPrediction{
				{PlaceID: "p1", Description: "MG Road, Bengaluru"},
			},
		})
	}))
	defer server.Close()

	w, body := getJSON(t, r, "/api/utils/address/autocomplete?query=mg+road")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Success", body["message"])

	data := body["data"].([]interface{})
	assert.Len(t, data, 1)
}

func TestAutocompleteShortQueryStillSucceeds(t *testing.T) {
	calls := 0
	r, server := newUtilRouter(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		calls++
	}))
	defer server.Close()

	w, body := getJSON(t, r, "/api/utils/address/autocomplete?query=a")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Success", body["message"])
	assert.Empty(t, body["data"])
	assert.Equal(t, 0, calls)
}

func TestAutocompleteDegradesToEmptyList(t *testing.T) {
	r, server := newUtilRouter(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	w, body := getJSON(t, r, "/api/utils/address/autocomplete?query=mg+road")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "No suggestions available", body["message"])
	assert.Empty(t, body["data"])
}

func TestPlaceDetailsSuccess(t *testing.T) {
	r, server := newUtilRouter(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(types.OlaDetailsResponse{
			Result: &types.OlaPlaceResult{
				PlaceID:          "p1",
				FormattedAddress: "MG Road, Bengaluru",
				Geometry:         types.Geometry{Location: types.Location{Lat: 12.97, Lng: 77.59}},
			},
		})
	}))
	defer server.Close()

	w, body := getJSON(t, r, "/api/utils/address/details/p1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Place details retrieved successfully", body["message"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "MG Road, Bengaluru", data["formatted_address"])
}

func TestPlaceDetailsErrorMapping(t *testing.T) {
	status := http.StatusNotFound
	r, server := newUtilRouter(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(status)
	}))
	defer server.Close()

	w, body := getJSON(t, r, "/api/utils/address/details/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Place not found", body["message"])

	status = http.StatusTooManyRequests
	w, body = getJSON(t, r, "/api/utils/address/details/throttled")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Too many requests. Please try again later.", body["message"])

	status = http.StatusBadGateway
	w, body = getJSON(t, r, "/api/utils/address/details/broken")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to fetch place details", body["message"])
}
