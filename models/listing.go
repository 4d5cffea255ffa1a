package models

import (
	"time"

	"github.com/lib/pq"
)

type Listing struct {
	ID               uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	Title            string         `json:"title" gorm:"not null"`
	Description      string         `json:"description" gorm:"type:text"`
	Thumbnail        string         `json:"thumbnail"`
	Images           pq.StringArray `json:"images" gorm:"type:text[]"`
	UserID           uint           `json:"userId" gorm:"not null"`
	Country          string         `json:"country" gorm:"not null"`
	City             string         `json:"city" gorm:"not null"`
	Address          string         `json:"address" gorm:"not null"`
	Price            *float64       `json:"price" gorm:"type:decimal(14,2)"`
	RentalPrice      *float64       `json:"rentalPrice" gorm:"type:decimal(14,2)"`
	Type             string         `json:"type" gorm:"not null"` // house, flat, commercial, plot
	ListingStatus    string         `json:"listingStatus" gorm:"not null;index"`
	Tags             pq.StringArray `json:"tags" gorm:"type:text[]"`
	Amenities        pq.StringArray `json:"amenities" gorm:"type:text[]"`
	ReasonForSelling *string        `json:"reasonForSelling"`
	SquareFeet       *int           `json:"squareFeet"`
	Bedrooms         *int           `json:"bedrooms"`
	Bathrooms        *int           `json:"bathrooms"`
	Furnishing       *string        `json:"furnishing" gorm:"type:varchar(20)"` // FURNISHED, SEMI_FURNISHED, UNFURNISHED
	Location         *string        `json:"-" gorm:"type:geography(Point,4326)"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// EffectivePrice is the price relevant to the listing's status: sale price
// when set, rental price otherwise.
func (l *Listing) EffectivePrice() (float64, bool) {
	if l.Price != nil {
		return *l.Price, true
	}
	if l.RentalPrice != nil {
		return *l.RentalPrice, true
	}
	return 0, false
}
