package models

import (
	"time"
)

type ListingStatus string

const (
	ListingAvailable ListingStatus = "available"
	ListingClaimed   ListingStatus = "claimed"
)

type FoodQuality string

const (
	QualityBest          FoodQuality = "Best Quality"
	QualityGood          FoodQuality = "Good Quality"
	QualityNotConsumable FoodQuality = "Not Consumable"
)

// IsValidQuality checks a quality value supplied by the client
func IsValidQuality(q FoodQuality) bool {
	switch q {
	case QualityBest, QualityGood, QualityNotConsumable:
		return true
	}
	return false
}

// Listing is a finite-quantity food donation offer.
// Invariant: status is "claimed" exactly when quantity is 0 and a receiver
// is set; quantity only ever decreases and never goes below 0. Quantity,
// status and receiver are written only by the claim engine.
type Listing struct {
	ID          uint          `gorm:"primarykey" json:"id"`
	Title       string        `gorm:"not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	Quantity    int           `gorm:"not null" json:"quantity"`
	Location    string        `gorm:"not null" json:"location"`
	Price       float64       `gorm:"not null;default:0" json:"price"`
	ImageURL    string        `gorm:"type:text;not null" json:"image_url"`
	Quality     FoodQuality   `gorm:"type:varchar(20);default:'Good Quality'" json:"quality"`
	Status      ListingStatus `gorm:"type:varchar(20);default:'available';index" json:"status"`
	DonorID     uint          `gorm:"not null;index" json:"donor_id"`
	ReceiverID  *uint         `json:"receiver_id,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Relationships
	Donor    *User `json:"donor,omitempty" gorm:"foreignKey:DonorID"`
	Receiver *User `json:"receiver,omitempty" gorm:"foreignKey:ReceiverID"`
}

func (Listing) TableName() string {
	return "listings"
}
