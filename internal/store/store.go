package store

import (
	"context"
	"errors"

	"foodshare/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")

	// ErrStaleListing means the conditional update matched no row: a
	// concurrent claim committed between the caller's read and its write.
	// The caller must re-read and re-validate before trying again.
	ErrStaleListing = errors.New("listing was modified concurrently")
)

// ClaimApplication carries one validated claim into the atomic apply step.
// ExpectedQuantity is the quantity the claim was validated against; the
// write only commits if the row still holds exactly that quantity.
type ClaimApplication struct {
	ListingID        uint
	ExpectedQuantity int
	ClaimQuantity    int
	Claimant         *models.User
	Message          string
}

type ListingStore interface {
	Create(ctx context.Context, listing *models.Listing) error
	FindByID(ctx context.Context, id uint) (*models.Listing, error)
	FindAvailable(ctx context.Context) ([]models.Listing, error)
	FindByDonor(ctx context.Context, donorID uint) ([]models.Listing, error)

	// Delete removes the listing only while it is still owned by donorID and
	// available. ErrStaleListing means the row changed since the caller read
	// it, most likely a claim that committed in between.
	Delete(ctx context.Context, id, donorID uint) error

	// ApplyClaim commits the listing decrement, the donor counter increment
	// and the notification insert as one failure-atomic unit. Either all
	// three are visible afterwards or none is.
	ApplyClaim(ctx context.Context, app ClaimApplication) (*models.Listing, *models.Notification, error)
}

type DonorDirectory interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	TopDonors(ctx context.Context, n int) ([]models.User, error)
}
