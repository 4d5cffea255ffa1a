package models

import (
	"time"
)

type User struct {
	ID            uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Email         string    `json:"email" gorm:"unique;not null"`
	Name          string    `json:"name"`
	Image         string    `json:"image"`
	Phone         string    `json:"phone"`
	Password      *string   `json:"-"` // null for OAuth-only accounts
	GoogleID      *string   `json:"-" gorm:"index"`
	EmailVerified bool      `json:"emailVerified" gorm:"default:false"`
	Listings      []Listing `json:"listings,omitempty" gorm:"foreignKey:UserID"`
}
