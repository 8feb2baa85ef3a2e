package claims

import "errors"

var (
	ErrListingNotFound  = errors.New("listing not found")
	ErrClaimantNotFound = errors.New("claimant not found")
	ErrSelfClaim        = errors.New("donors cannot claim their own listing")
	ErrNotAvailable     = errors.New("listing is no longer available")
	ErrInvalidQuantity  = errors.New("claim quantity is invalid")
	ErrStoreUnavailable = errors.New("store temporarily unavailable")
)
