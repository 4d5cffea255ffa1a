package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nest-quest/api-go/filters"
	"github.com/nest-quest/api-go/models"
	"github.com/nest-quest/api-go/stores"
	"github.com/nest-quest/api-go/storage"
	"github.com/nest-quest/api-go/types"
	"github.com/nest-quest/api-go/utils"
	"gorm.io/gorm"
)

// ListingStorer is the persistence surface the listing endpoints need.
type ListingStorer interface {
	Create(listing *models.Listing, latitude, longitude float64) error
	List(listingStatus string) ([]types.ListingWithOwner, error)
	Get(id uint) (*types.ListingWithOwner, error)
}

type ListingController struct {
	Store  ListingStorer
	Images storage.ImageStore
}

func NewListingController(db *gorm.DB) *ListingController {
	return &ListingController{
		Store:  stores.NewListingStore(db),
		Images: storage.NewImageStore(),
	}
}

// CreateListing godoc
// @Summary Create a listing from the multi-section submission wizard payload
// @Description Accepts JSON with inline data-URI images or multipart with file attachments
// @Tags listings
// @Accept json,mpfd
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Router /listings [post]
func (lc *ListingController) CreateListing(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: No user found in request."})
		return
	}

	submission, thumbnailFile, imageFiles, err := lc.parseSubmission(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	personalInfo := submission.PersonalInfo
	propertyInfo := submission.PropertyInfo
	moreInfo := submission.MoreInfo

	if personalInfo == nil || propertyInfo == nil || moreInfo == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Missing required sections: personalInfo, propertyInfo, and moreInfo are required",
		})
		return
	}

	if propertyInfo.ListingTitle == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Property title is required"})
		return
	}

	latitude, latOK := parseCoordinate(moreInfo.Latitude.String())
	longitude, lngOK := parseCoordinate(moreInfo.Longitude.String())
	if !latOK || !lngOK {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Valid latitude and longitude coordinates are required.",
		})
		return
	}

	if personalInfo.FullName == "" || personalInfo.EmailAddress == "" || personalInfo.PhoneNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Personal information (name, email, phone) is required.",
		})
		return
	}

	city := moreInfo.City
	if city == "" {
		city = personalInfo.City
	}
	if moreInfo.Country == "" || city == "" || propertyInfo.Address == "" || propertyInfo.PropertyType == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Property location and type information is required.",
		})
		return
	}

	// Images are decoded and stored before the row is written; the thumbnail
	// check runs against the stored-file side channel, after field validation.
	thumbnail, images := lc.persistImages(propertyInfo, thumbnailFile, imageFiles)
	if thumbnail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Thumbnail image is required."})
		return
	}

	// Exactly one of price/rentalPrice is populated, decided by the
	// rent-vs-mortgage listing status.
	var price, rentalPrice *float64
	if propertyInfo.PropertyListing == "rent" {
		rentalPrice = parseOptionalFloat(propertyInfo.Price.String())
	} else {
		price = parseOptionalFloat(propertyInfo.Price.String())
	}

	var reasonForSelling *string
	if personalInfo.ReasonForSelling != "" {
		reasonForSelling = &personalInfo.ReasonForSelling
	}

	var furnishing *string
	if mapped := types.FurnishingFromLabel(propertyInfo.Furnishing); mapped != nil {
		value := string(*mapped)
		furnishing = &value
	}

	listing := models.Listing{
		Title:            propertyInfo.ListingTitle,
		Description:      propertyInfo.Description,
		Thumbnail:        thumbnail,
		Images:           images,
		UserID:           user.ID,
		Country:          moreInfo.Country,
		City:             city,
		Address:          propertyInfo.Address,
		Price:            price,
		RentalPrice:      rentalPrice,
		Type:             propertyInfo.PropertyType,
		ListingStatus:    propertyInfo.PropertyListing,
		Tags:             []string{}, // no tagging input exists yet
		Amenities:        moreInfo.Amenities.Enabled(),
		ReasonForSelling: reasonForSelling,
		SquareFeet:       parseOptionalInt(propertyInfo.SquareFeet.String(), 1),
		Bedrooms:         parseOptionalInt(propertyInfo.Bedrooms.String(), 0),
		Bathrooms:        parseOptionalInt(propertyInfo.Bathrooms.String(), 0),
		Furnishing:       furnishing,
	}

	if err := lc.Store.Create(&listing, latitude, longitude); err != nil {
		log.Printf("Error creating listing for user %d: %v", user.ID, err)
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Database error while creating listing",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Listing created successfully",
		"listing": struct {
			models.Listing
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		}{listing, latitude, longitude},
	})
}

// GetListings godoc
// @Summary List listings, newest first
// @Description listingStatus narrows server-side; minPrice/maxPrice, propertyTypes, amenities, minArea/maxArea apply the facet filter
// @Tags listings
// @Produce json
// @Success 200 {array} types.ListingWithOwner
// @Router /listings [get]
func (lc *ListingController) GetListings(c *gin.Context) {
	listings, err := lc.Store.List(c.Query("listingStatus"))
	if err != nil {
		log.Printf("Error fetching listings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	filterState := filters.FromQuery(c.Request.URL.Query())
	listings = filters.Apply(listings, filterState)

	c.JSON(http.StatusOK, listings)
}

// GetListing godoc
// @Summary Get one listing with owner and coordinates
// @Tags listings
// @Produce json
// @Success 200 {object} types.ListingWithOwner
// @Router /listings/{id} [get]
func (lc *ListingController) GetListing(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Listing not found"})
		return
	}

	listing, err := lc.Store.Get(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Listing not found"})
		return
	}
	if err != nil {
		log.Printf("Error fetching listing %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, listing)
}

// parseSubmission reads the wizard payload from either a JSON body or a
// multipart form whose sections are JSON-encoded fields.
func (lc *ListingController) parseSubmission(c *gin.Context) (*types.ListingSubmission, *multipart.FileHeader, []*multipart.FileHeader, error) {
	var submission types.ListingSubmission

	contentType := c.ContentType()
	if !strings.HasPrefix(contentType, "multipart/") {
		if err := c.ShouldBindJSON(&submission); err != nil {
			return nil, nil, nil, errors.New("Invalid request body")
		}
		return &submission, nil, nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, nil, errors.New("Invalid multipart form")
	}

	if err := decodeSection(c.PostForm("personalInfo"), &submission.PersonalInfo); err != nil {
		return nil, nil, nil, errors.New("Invalid personalInfo section")
	}
	if err := decodeSection(c.PostForm("propertyInfo"), &submission.PropertyInfo); err != nil {
		return nil, nil, nil, errors.New("Invalid propertyInfo section")
	}
	if err := decodeSection(c.PostForm("moreInfo"), &submission.MoreInfo); err != nil {
		return nil, nil, nil, errors.New("Invalid moreInfo section")
	}

	var thumbnail *multipart.FileHeader
	if files := form.File["thumbnail"]; len(files) > 0 {
		thumbnail = files[0]
	}

	images := form.File["images"]
	if len(images) > 2 {
		return nil, nil, nil, errors.New("Too many files. Maximum 3 files allowed.")
	}

	return &submission, thumbnail, images, nil
}

// persistImages stores the thumbnail and gallery images, preferring
// multipart attachments over inline data-URIs. An image that fails to
// decode or store is skipped; a missing thumbnail is the caller's
// validation failure.
func (lc *ListingController) persistImages(propertyInfo *types.PropertyInfo, thumbnailFile *multipart.FileHeader, imageFiles []*multipart.FileHeader) (string, []string) {
	var thumbnail string
	if thumbnailFile != nil {
		url, err := storage.SaveMultipart(lc.Images, thumbnailFile, "thumbnail")
		if err != nil {
			log.Printf("Error storing thumbnail upload: %v", err)
		} else {
			thumbnail = url
		}
	} else if len(propertyInfo.Thumbnail) > 0 && propertyInfo.Thumbnail[0] != "" {
		url, err := storage.SaveDataURI(lc.Images, propertyInfo.Thumbnail[0], "thumbnail")
		if err != nil {
			log.Printf("Error storing inline thumbnail: %v", err)
		} else {
			thumbnail = url
		}
	}

	images := []string{}
	if len(imageFiles) > 0 {
		for i, file := range imageFiles {
			url, err := storage.SaveMultipart(lc.Images, file, "image-"+strconv.Itoa(i))
			if err != nil {
				log.Printf("Error storing image upload %d: %v", i, err)
				continue
			}
			images = append(images, url)
		}
	} else {
		for i, dataURI := range propertyInfo.Images {
			if dataURI == "" {
				continue
			}
			if len(images) == 2 {
				break
			}
			url, err := storage.SaveDataURI(lc.Images, dataURI, "image-"+strconv.Itoa(i))
			if err != nil {
				log.Printf("Error storing inline image %d: %v", i, err)
				continue
			}
			images = append(images, url)
		}
	}

	return thumbnail, images
}

func decodeSection(raw string, target interface{}) error {
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), target)
}

// Helper functions for parsing submission values

func parseCoordinate(s string) (float64, bool) {
	val, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, false
	}
	return val, true
}

func parseOptionalFloat(s string) *float64 {
	val, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &val
}

func parseOptionalInt(s string, floor int) *int {
	val, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	if val < floor {
		val = floor
	}
	return &val
}
