package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nest-quest/api-go/config"
	"github.com/nest-quest/api-go/types"
)

type UtilController struct {
	Geocoder *config.OlaMapsClient
}

func NewUtilController(geocoder *config.OlaMapsClient) *UtilController {
	return &UtilController{Geocoder: geocoder}
}

// GetAddressSuggestions godoc
// @Summary Autocomplete addresses while the user types
// @Description Always answers 200; upstream failures degrade to an empty suggestion list so the input UI never blocks
// @Tags utils
// @Produce json
// @Param query query string true "Partial address"
// @Param latitude query number false "Bias latitude"
// @Param longitude query number false "Bias longitude"
// @Router /utils/address/autocomplete [get]
func (uc *UtilController) GetAddressSuggestions(c *gin.Context) {
	query := c.Query("query")

	var bias *types.LatLng
	lat, latErr := strconv.ParseFloat(c.Query("latitude"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("longitude"), 64)
	if latErr == nil && lngErr == nil {
		bias = &types.LatLng{Lat: lat, Lng: lng}
	}

	suggestions, degraded := uc.Geocoder.Suggest(c.Request.Context(), query, bias)

	message := "Success"
	if degraded {
		// absorbed on purpose: the end user only sees an empty list
		log.Printf("Address autocomplete degraded for query %q: upstream unavailable", query)
		message = "No suggestions available"
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data":    suggestions,
	})
}

// GetPlaceDetails godoc
// @Summary Resolve a selected suggestion to full place details
// @Tags utils
// @Produce json
// @Param place_id path string true "Place ID"
// @Router /utils/address/details/{place_id} [get]
func (uc *UtilController) GetPlaceDetails(c *gin.Context) {
	placeID := c.Param("place_id")
	if placeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Place ID is required"})
		return
	}

	details, err := uc.Geocoder.Resolve(c.Request.Context(), placeID)
	if err != nil {
		if errors.Is(err, config.ErrPlaceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Place not found"})
			return
		}
		if errors.Is(err, config.ErrRateLimited) {
			c.JSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests. Please try again later."})
			return
		}
		log.Printf("Place details error for %s: %v", placeID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch place details"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Place details retrieved successfully",
		"data":    details,
	})
}
