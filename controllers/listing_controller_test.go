package controllers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nest-quest/api-go/models"
	"github.com/nest-quest/api-go/types"
	"github.com/nest-quest/api-go/utils"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeListingStore struct {
	created   []*models.Listing
	createErr error
	lastLat   float64
	lastLng   float64

	listResult []types.ListingWithOwner
	listErr    error
	lastStatus string

	getResult *types.ListingWithOwner
	getErr    error
}

func (f *fakeListingStore) Create(listing *models.Listing, latitude, longitude float64) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, listing)
	f.lastLat = latitude
	f.lastLng = longitude
	return nil
}

func (f *fakeListingStore) List(listingStatus string) ([]types.ListingWithOwner, error) {
	f.lastStatus = listingStatus
	return f.listResult, f.listErr
}

func (f *fakeListingStore) Get(id uint) (*types.ListingWithOwner, error) {
	return f.getResult, f.getErr
}

type fakeImageStore struct {
	saved int
	err   error
}

func (f *fakeImageStore) Save(data []byte, filename, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved++
	return "https://img.test/" + filename, nil
}

func newListingRouter(store *fakeListingStore, authenticated bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	lc := &ListingController{Store: store, Images: &fakeImageStore{}}

	r := gin.New()
	r.POST("/api/listings", func(c *gin.Context) {
		if authenticated {
			c.Set(string(utils.UserContextKey), &models.User{ID: 7, Email: "owner@example.com"})
		}
		c.Next()
	}, lc.CreateListing)
	r.GET("/api/listings", lc.GetListings)
	r.GET("/api/listings/:id", lc.GetListing)
	return r
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func responseMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	msg, _ := body["message"].(string)
	return msg
}

func testThumbnail() []string {
	encoded := base64.StdEncoding.EncodeToString([]byte("not-really-a-png"))
	return []string{"data:image/png;base64," + encoded}
}

func validSubmission() map[string]interface{} {
	return map[string]interface{}{
		"personalInfo": map[string]interface{}{
			"fullName":     "Asha Rao",
			"phoneNumber":  "+91 98765 43210",
			"emailAddress": "asha@example.com",
			"city":         "Bengaluru",
		},
		"propertyInfo": map[string]interface{}{
			"propertyListing": "mortgage",
			"propertyType":    "flat",
			"listingTitle":    "Sunny 2BHK near MG Road",
			"address":         "12 MG Road",
			"price":           "9500000",
			"squareFeet":      "850",
			"bedrooms":        "2",
			"bathrooms":       "2",
			"furnishing":      "Semi-Furnished",
			"description":     "Bright corner unit",
			"thumbnail":       testThumbnail(),
		},
		"moreInfo": map[string]interface{}{
			"latitude":  "12.9716",
			"longitude": "77.5946",
			"city":      "Bengaluru",
			"state":     "Karnataka",
			"country":   "India",
			"amenities": map[string]bool{"parking": true},
		},
	}
}

func TestCreateListingRequiresAuth(t *testing.T) {
	store := &fakeListingStore{}
	r := newListingRouter(store, false)

	w := postJSON(r, "/api/listings", validSubmission())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, store.created)
}

func TestCreateListingMissingSections(t *testing.T) {
	r := newListingRouter(&fakeListingStore{}, true)

	body := validSubmission()
	delete(body, "moreInfo")

	w := postJSON(r, "/api/listings", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required sections: personalInfo, propertyInfo, and moreInfo are required", responseMessage(t, w))
}

func TestCreateListingValidationOrder(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(body map[string]interface{})
		message string
	}{
		{
			name: "missing title",
			mutate: func(body map[string]interface{}) {
				body["propertyInfo"].(map[string]interface{})["listingTitle"] = ""
			},
			message: "Property title is required",
		},
		{
			name: "bad coordinates",
			mutate: func(body map[string]interface{}) {
				body["moreInfo"].(map[string]interface{})["latitude"] = "north-ish"
			},
			message: "Valid latitude and longitude coordinates are required.",
		},
		{
			name: "missing contact",
			mutate: func(body map[string]interface{}) {
				body["personalInfo"].(map[string]interface{})["emailAddress"] = ""
			},
			message: "Personal information (name, email, phone) is required.",
		},
		{
			name: "missing location info",
			mutate: func(body map[string]interface{}) {
				body["moreInfo"].(map[string]interface{})["country"] = ""
			},
			message: "Property location and type information is required.",
		},
		{
			name: "missing thumbnail",
			mutate: func(body map[string]interface{}) {
				body["propertyInfo"].(map[string]interface{})["thumbnail"] = []string{}
			},
			message: "Thumbnail image is required.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeListingStore{}
			r := newListingRouter(store, true)

			body := validSubmission()
			tc.mutate(body)

			w := postJSON(r, "/api/listings", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.message, responseMessage(t, w))
			assert.Empty(t, store.created)
		})
	}
}

func TestCreateListingTitleCheckedBeforeCoordinates(t *testing.T) {
	r := newListingRouter(&fakeListingStore{}, true)

	body := validSubmission()
	body["propertyInfo"].(map[string]interface{})["listingTitle"] = ""
	body["moreInfo"].(map[string]interface{})["latitude"] = "garbage"

	w := postJSON(r, "/api/listings", body)
	assert.Equal(t, "Property title is required", responseMessage(t, w))
}

func TestCreateListingCityFallsBackToPersonalInfo(t *testing.T) {
	store := &fakeListingStore{}
	r := newListingRouter(store, true)

	body := validSubmission()
	body["moreInfo"].(map[string]interface{})["city"] = ""

	w := postJSON(r, "/api/listings", body)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Bengaluru", store.created[0].City)
}

func TestCreateListingMortgageUsesPrice(t *testing.T) {
	store := &fakeListingStore{}
	r := newListingRouter(store, true)

	w := postJSON(r, "/api/listings", validSubmission())
	assert.Equal(t, http.StatusCreated, w.Code)

	created := store.created[0]
	if assert.NotNil(t, created.Price) {
		assert.Equal(t, 9500000.0, *created.Price)
	}
	assert.Nil(t, created.RentalPrice)
	assert.Equal(t, 12.9716, store.lastLat)
	assert.Equal(t, 77.5946, store.lastLng)
}

func TestCreateListingRentUsesRentalPrice(t *testing.T) {
	store := &fakeListingStore{}
	r := newListingRouter(store, true)

	body := validSubmission()
	propertyInfo := body["propertyInfo"].(map[string]interface{})
	propertyInfo["propertyListing"] = "rent"
	propertyInfo["price"] = "45000"

	w := postJSON(r, "/api/listings", body)
	assert.Equal(t, http.StatusCreated, w.Code)

	created := store.created[0]
	assert.Nil(t, created.Price)
	if assert.NotNil(t, created.RentalPrice) {
		assert.Equal(t, 45000.0, *created.RentalPrice)
	}
	assert.Equal(t, "rent", created.ListingStatus)
}

func TestCreateListingNumericNormalization(t *testing.T) {
	store := &fakeListingStore{}
	r := newListingRouter(store, true)

	body := validSubmission()
	propertyInfo := body["propertyInfo"].(map[string]interface{})
	propertyInfo["squareFeet"] = "0"
	propertyInfo["bedrooms"] = "several"
	propertyInfo["bathrooms"] = "-2"
	propertyInfo["furnishing"] = "Deluxe"

	w := postJSON(r, "/api/listings", body)
	assert.Equal(t, http.StatusCreated, w.Code)

	created := store.created[0]
	if assert.NotNil(t, created.SquareFeet) {
		assert.Equal(t, 1, *created.SquareFeet)
	}
	assert.Nil(t, created.Bedrooms)
	if assert.NotNil(t, created.Bathrooms) {
		assert.Equal(t, 0, *created.Bathrooms)
	}
	assert.Nil(t, created.Furnishing)
}

func TestCreateListingAmenitiesAndTags(t *testing.T) {
	store := &fakeListingStore{}
	r := newListingRouter(store, true)

	body := validSubmission()
	payload, _ := json.Marshal(body)
	// raw body keeps the amenity object's key order intact
	raw := strings.Replace(string(payload), `{"parking":true}`,
		`{"gym": true, "pool": false, "garden": true}`, 1)

	req := httptest.NewRequest(http.MethodPost, "/api/listings", strings.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	created := store.created[0]
	assert.Equal(t, []string{"gym", "garden"}, []string(created.Amenities))
	assert.Equal(t, []string{}, []string(created.Tags))
}

func TestCreateListingEchoesCoordinates(t *testing.T) {
	store := &fakeListingStore{}
	r := newListingRouter(store, true)

	w := postJSON(r, "/api/listings", validSubmission())
	assert.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Message string `json:"message"`
		Listing struct {
			Title     string  `json:"title"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"listing"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Listing created successfully", body.Message)
	assert.Equal(t, "Sunny 2BHK near MG Road", body.Listing.Title)
	assert.Equal(t, 12.9716, body.Listing.Latitude)
	assert.Equal(t, 77.5946, body.Listing.Longitude)
}

func TestCreateListingStoreFailure(t *testing.T) {
	store := &fakeListingStore{createErr: fmt.Errorf("insert failed")}
	r := newListingRouter(store, true)

	w := postJSON(r, "/api/listings", validSubmission())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Database error while creating listing", responseMessage(t, w))
}

func TestGetListingsAppliesFacetFilters(t *testing.T) {
	cheap, pricey := 90000.0, 200000.0
	store := &fakeListingStore{
		listResult: []types.ListingWithOwner{
			{Listing: models.Listing{ID: 1, Price: &cheap, Type: "flat"}},
			{Listing: models.Listing{ID: 2, Price: &pricey, Type: "flat"}},
		},
	}
	r := newListingRouter(store, true)

	req := httptest.NewRequest(http.MethodGet, "/api/listings?listingStatus=mortgage&maxPrice=100000", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "mortgage", store.lastStatus)

	var body []types.ListingWithOwner
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body, 1)
	assert.Equal(t, uint(1), body[0].ID)
}

func TestGetListingNotFound(t *testing.T) {
	store := &fakeListingStore{getErr: gorm.ErrRecordNotFound}
	r := newListingRouter(store, true)

	for _, path := range []string{"/api/listings/999", "/api/listings/abc"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, "Listing not found", responseMessage(t, w))
	}
}

func TestGetListingSuccess(t *testing.T) {
	lng, lat := 77.5946, 12.9716
	store := &fakeListingStore{
		getResult: &types.ListingWithOwner{
			Listing:   models.Listing{ID: 3, Title: "Sunny 2BHK near MG Road"},
			Longitude: &lng,
			Latitude:  &lat,
			User:      types.OwnerSummary{ID: 7, Name: "Asha Rao"},
		},
	}
	r := newListingRouter(store, true)

	req := httptest.NewRequest(http.MethodGet, "/api/listings/3", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body types.ListingWithOwner
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, uint(3), body.ID)
	assert.Equal(t, "Asha Rao", body.User.Name)
	if assert.NotNil(t, body.Latitude) {
		assert.Equal(t, 12.9716, *body.Latitude)
	}
}
