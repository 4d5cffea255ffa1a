// Package stores holds the persistence layer for listings. Coordinates are
// stored in a geography(Point,4326) column and recovered with ST_X/ST_Y at
// query time; they are never kept as plain scalar columns.
package stores

import (
	"log"

	"github.com/nest-quest/api-go/models"
	"github.com/nest-quest/api-go/types"
	"gorm.io/gorm"
)

type ListingStore struct {
	DB *gorm.DB
}

func NewListingStore(db *gorm.DB) *ListingStore {
	return &ListingStore{DB: db}
}

type listingRow struct {
	models.Listing
	Longitude  *float64 `gorm:"column:longitude"`
	Latitude   *float64 `gorm:"column:latitude"`
	OwnerID    uint     `gorm:"column:owner_id"`
	OwnerName  string   `gorm:"column:owner_name"`
	OwnerImage string   `gorm:"column:owner_image"`
}

func (r *listingRow) toResult() types.ListingWithOwner {
	return types.ListingWithOwner{
		Listing:   r.Listing,
		Longitude: r.Longitude,
		Latitude:  r.Latitude,
		User: types.OwnerSummary{
			ID:    r.OwnerID,
			Name:  r.OwnerName,
			Image: r.OwnerImage,
		},
	}
}

const listingColumns = `listings.*,
	ST_X(listings.location::geometry) AS longitude,
	ST_Y(listings.location::geometry) AS latitude,
	users.id AS owner_id, users.name AS owner_name, users.image AS owner_image`

// Create inserts the listing row and assigns its geography point from the
// validated coordinates in a single transaction, so a failed geotag can
// never strand a listing without a location.
func (s *ListingStore) Create(listing *models.Listing, latitude, longitude float64) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(listing).Error; err != nil {
			return err
		}

		if err := tx.Exec(
			`UPDATE listings SET location = ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography WHERE id = ?`,
			longitude, latitude, listing.ID,
		).Error; err != nil {
			log.Printf("geotag failed for listing %d, rolling back insert: %v", listing.ID, err)
			return err
		}

		return nil
	})
}

// List returns listings with owner projection and extracted coordinates,
// newest first. listingStatus narrows to rent or mortgage when non-empty.
// Ties on creation time fall back to ascending id so the order is stable.
func (s *ListingStore) List(listingStatus string) ([]types.ListingWithOwner, error) {
	query := s.DB.Model(&models.Listing{}).
		Select(listingColumns).
		Joins("JOIN users ON users.id = listings.user_id").
		Order("listings.created_at DESC, listings.id ASC")

	if listingStatus != "" {
		query = query.Where("listings.listing_status = ?", listingStatus)
	}

	var rows []listingRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	results := make([]types.ListingWithOwner, 0, len(rows))
	for i := range rows {
		results = append(results, rows[i].toResult())
	}
	return results, nil
}

// Get returns one listing with owner and coordinates, or
// gorm.ErrRecordNotFound.
func (s *ListingStore) Get(id uint) (*types.ListingWithOwner, error) {
	var row listingRow
	err := s.DB.Model(&models.Listing{}).
		Select(listingColumns).
		Joins("JOIN users ON users.id = listings.user_id").
		Where("listings.id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}

	result := row.toResult()
	return &result, nil
}
