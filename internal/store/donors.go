package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"foodshare/internal/models"
)

// Donors implements DonorDirectory on a Postgres database.
type Donors struct {
	db *gorm.DB
}

func NewDonors(db *gorm.DB) *Donors {
	return &Donors{db: db}
}

func (s *Donors) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// TopDonors orders by donations_count with id as tie-break so repeated
// calls return the same ranking when nothing changed in between.
func (s *Donors) TopDonors(ctx context.Context, n int) ([]models.User, error) {
	var donors []models.User
	err := s.db.WithContext(ctx).
		Where("role = ?", models.RoleDonor).
		Order("donations_count DESC, id ASC").
		Limit(n).
		Find(&donors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query top donors: %w", err)
	}
	return donors, nil
}
