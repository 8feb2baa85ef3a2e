package models

import (
	"time"
)

const (
	RoleDonor    = "donor"
	RoleReceiver = "receiver"
)

type User struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	Password       string    `gorm:"not null" json:"-"`
	Phone          string    `json:"phone,omitempty"`
	Address        string    `gorm:"type:text" json:"address,omitempty"`
	Role           string    `gorm:"type:varchar(20);default:'receiver';index" json:"role"`
	DonationsCount int       `gorm:"not null;default:0" json:"donations_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// IsDonor checks if the user publishes listings
func (u *User) IsDonor() bool {
	return u.Role == RoleDonor
}
