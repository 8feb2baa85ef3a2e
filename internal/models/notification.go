package models

import (
	"time"
)

// Notification is the durable record of a successful claim, written in the
// same transaction as the listing mutation. The claimant snapshot fields are
// denormalized at claim time and never updated afterwards; only the read
// state may change once the donor has seen the notification.
type Notification struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	RecipientID     uint       `json:"recipient_id" gorm:"not null;index"`
	ListingID       uint       `json:"listing_id" gorm:"not null"`
	ReceiverID      uint       `json:"receiver_id" gorm:"not null"`
	ReceiverName    string     `json:"receiver_name" gorm:"not null"`
	ReceiverEmail   string     `json:"receiver_email" gorm:"not null"`
	ReceiverPhone   string     `json:"receiver_phone"`
	ReceiverAddress string     `json:"receiver_address" gorm:"type:text"`
	ListingTitle    string     `json:"listing_title" gorm:"not null"`
	ClaimQuantity   int        `json:"claim_quantity" gorm:"not null"`
	Message         string     `json:"message" gorm:"type:text;not null"`
	IsRead          bool       `json:"is_read" gorm:"default:false;index"`
	CreatedAt       time.Time  `json:"created_at"`
	ReadAt          *time.Time `json:"read_at,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
