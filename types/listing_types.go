package types

import (
	"encoding/json"

	"github.com/nest-quest/api-go/models"
)

// FlexString accepts both JSON strings and bare numbers. The submission
// wizard drives every numeric field from a text input, but API clients are
// free to send real numbers; either way the raw text is kept for parsing.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string {
	return string(f)
}

// ListingSubmission is the multi-section payload of the submission wizard.
// Sections are pointers so a missing section is distinguishable from an
// empty one.
type ListingSubmission struct {
	PersonalInfo *PersonalInfo `json:"personalInfo"`
	PropertyInfo *PropertyInfo `json:"propertyInfo"`
	MoreInfo     *MoreInfo     `json:"moreInfo"`
}

type PersonalInfo struct {
	FullName         string `json:"fullName"`
	PhoneNumber      string `json:"phoneNumber"`
	EmailAddress     string `json:"emailAddress"`
	City             string `json:"city"`
	ReasonForSelling string `json:"reasonForSelling"`
}

type PropertyInfo struct {
	PropertyListing string     `json:"propertyListing"` // rent or mortgage
	PropertyType    string     `json:"propertyType"`
	ListingTitle    string     `json:"listingTitle"`
	Address         string     `json:"address"`
	Price           FlexString `json:"price"`
	SquareFeet      FlexString `json:"squareFeet"`
	Bedrooms        FlexString `json:"bedrooms"`
	Bathrooms       FlexString `json:"bathrooms"`
	Furnishing      string     `json:"furnishing"`
	Description     string     `json:"description"`
	Thumbnail       []string   `json:"thumbnail"` // inline data-URIs
	Images          []string   `json:"images"`
}

type MoreInfo struct {
	Latitude           FlexString   `json:"latitude"`
	Longitude          FlexString   `json:"longitude"`
	City               string       `json:"city"`
	State              string       `json:"state"`
	Country            string       `json:"country"`
	Amenities          AmenityFlags `json:"amenities"`
	LocationHighlights string       `json:"locationHighlights"`
	IncludedAmenities  string       `json:"includedAmenities"`
}

type OwnerSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// ListingWithOwner is a listing query result: the row plus the coordinates
// recovered from the geography column and a reduced owner projection.
type ListingWithOwner struct {
	models.Listing
	Longitude *float64     `json:"longitude"`
	Latitude  *float64     `json:"latitude"`
	User      OwnerSummary `json:"user"`
}
