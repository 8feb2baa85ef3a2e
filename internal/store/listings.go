package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"foodshare/internal/models"
)

// Listings implements ListingStore on a Postgres database.
type Listings struct {
	db *gorm.DB
}

func NewListings(db *gorm.DB) *Listings {
	return &Listings{db: db}
}

func (s *Listings) Create(ctx context.Context, listing *models.Listing) error {
	if err := s.db.WithContext(ctx).Create(listing).Error; err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

func (s *Listings) FindByID(ctx context.Context, id uint) (*models.Listing, error) {
	var listing models.Listing
	err := s.db.WithContext(ctx).Preload("Donor").Preload("Receiver").First(&listing, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find listing: %w", err)
	}
	return &listing, nil
}

func (s *Listings) FindAvailable(ctx context.Context) ([]models.Listing, error) {
	var listings []models.Listing
	err := s.db.WithContext(ctx).
		Preload("Donor").
		Where("quantity > 0").
		Order("created_at DESC").
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list available listings: %w", err)
	}
	return listings, nil
}

func (s *Listings) FindByDonor(ctx context.Context, donorID uint) ([]models.Listing, error) {
	var listings []models.Listing
	err := s.db.WithContext(ctx).
		Preload("Receiver").
		Where("donor_id = ?", donorID).
		Order("created_at DESC").
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list donor listings: %w", err)
	}
	return listings, nil
}

// Delete is conditional on ownership and status so a claim committing after
// the caller's read leaves the row in place instead of destroying it.
func (s *Listings) Delete(ctx context.Context, id, donorID uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND donor_id = ? AND status = ?", id, donorID, models.ListingAvailable).
		Delete(&models.Listing{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete listing: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrStaleListing
	}
	return nil
}

// ApplyClaim runs the whole claim mutation inside one transaction. The
// listing update is conditional on the quantity the claim was validated
// against, so a concurrent claim that committed first makes this one fail
// with ErrStaleListing instead of overselling.
func (s *Listings) ApplyClaim(ctx context.Context, app ClaimApplication) (*models.Listing, *models.Notification, error) {
	var (
		updated      models.Listing
		notification models.Notification
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		remaining := app.ExpectedQuantity - app.ClaimQuantity

		values := map[string]interface{}{
			"quantity": remaining,
		}
		if remaining == 0 {
			values["status"] = models.ListingClaimed
			values["receiver_id"] = app.Claimant.ID
		}

		res := tx.Model(&models.Listing{}).
			Where("id = ? AND status = ? AND quantity = ?",
				app.ListingID, models.ListingAvailable, app.ExpectedQuantity).
			Updates(values)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleListing
		}

		if err := tx.First(&updated, app.ListingID).Error; err != nil {
			return err
		}

		// Increment-only write keeps concurrent claims on other listings by
		// the same donor commutative.
		if err := tx.Model(&models.User{}).
			Where("id = ?", updated.DonorID).
			UpdateColumn("donations_count", gorm.Expr("donations_count + ?", app.ClaimQuantity)).Error; err != nil {
			return err
		}

		notification = models.Notification{
			RecipientID:     updated.DonorID,
			ListingID:       updated.ID,
			ReceiverID:      app.Claimant.ID,
			ReceiverName:    app.Claimant.Name,
			ReceiverEmail:   app.Claimant.Email,
			ReceiverPhone:   app.Claimant.Phone,
			ReceiverAddress: app.Claimant.Address,
			ListingTitle:    updated.Title,
			ClaimQuantity:   app.ClaimQuantity,
			Message:         app.Message,
		}
		return tx.Create(&notification).Error
	})

	if err != nil {
		if errors.Is(err, ErrStaleListing) {
			return nil, nil, ErrStaleListing
		}
		return nil, nil, fmt.Errorf("failed to apply claim: %w", err)
	}
	return &updated, &notification, nil
}
