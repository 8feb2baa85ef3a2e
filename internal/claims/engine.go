package claims

// The claim engine is the only writer of listing quantity, status and
// receiver, and of the donor donation counter. Everything it persists on a
// successful claim goes through ListingStore.ApplyClaim, which commits as a
// single failure-atomic unit; the engine itself only validates, retries and
// formats.

import (
	"context"
	"errors"
	"fmt"

	"foodshare/internal/models"
	"foodshare/internal/store"
)

// maxApplyAttempts bounds the re-validate loop when concurrent claims keep
// winning the conditional update. Two claimants racing resolve in one
// retry; anything beyond this is surfaced as a retryable store error.
const maxApplyAttempts = 3

type Engine struct {
	listings store.ListingStore
	donors   store.DonorDirectory
}

func NewEngine(listings store.ListingStore, donors store.DonorDirectory) *Engine {
	return &Engine{
		listings: listings,
		donors:   donors,
	}
}

// Outcome is what a successful claim returns: the committed listing state
// and the notification row created in the same transaction.
type Outcome struct {
	Listing      *models.Listing
	Notification *models.Notification
}

// AttemptClaim validates and applies one claim against a listing.
//
// Validation order is part of the contract: listing existence, then
// self-claim, then availability, then quantity bounds. A claim that loses
// the conditional update to a concurrent one is re-validated against the
// committed state, so the caller sees ErrNotAvailable or ErrInvalidQuantity
// computed from reality rather than a silently truncated claim.
func (e *Engine) AttemptClaim(ctx context.Context, listingID, claimantID uint, quantity int) (*Outcome, error) {
	var claimant *models.User

	for attempt := 0; attempt < maxApplyAttempts; attempt++ {
		listing, err := e.listings.FindByID(ctx, listingID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}

		if listing.DonorID == claimantID {
			return nil, ErrSelfClaim
		}
		if listing.Status != models.ListingAvailable {
			return nil, ErrNotAvailable
		}
		if quantity <= 0 || quantity > listing.Quantity {
			return nil, ErrInvalidQuantity
		}

		if claimant == nil {
			claimant, err = e.donors.FindByID(ctx, claimantID)
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrClaimantNotFound
			}
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
			}
		}

		updated, notification, err := e.listings.ApplyClaim(ctx, store.ClaimApplication{
			ListingID:        listingID,
			ExpectedQuantity: listing.Quantity,
			ClaimQuantity:    quantity,
			Claimant:         claimant,
			Message:          ClaimMessage(claimant.Name, quantity, listing.Title),
		})
		if errors.Is(err, store.ErrStaleListing) {
			// Lost the race; go around and validate against the new state.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}

		return &Outcome{Listing: updated, Notification: notification}, nil
	}

	return nil, fmt.Errorf("%w: listing %d is too contended", ErrStoreUnavailable, listingID)
}
