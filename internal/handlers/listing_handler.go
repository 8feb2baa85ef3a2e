package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"foodshare/internal/claims"
	"foodshare/internal/models"
	"foodshare/internal/realtime"
	"foodshare/internal/services"
	"foodshare/internal/store"
)

var (
	listingStore   store.ListingStore
	donorDirectory store.DonorDirectory
	claimEngine    *claims.Engine
	registry       *realtime.Registry
	emailService   *services.EmailService
)

func InitListingHandlers(ls store.ListingStore, dd store.DonorDirectory, engine *claims.Engine, reg *realtime.Registry, email *services.EmailService) {
	listingStore = ls
	donorDirectory = dd
	claimEngine = engine
	registry = reg
	emailService = email
}

type CreateListingRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	Location    string  `json:"location" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	ImageURL    string  `json:"image_url" validate:"required,url"`
	Quality     string  `json:"quality"`
}

type ClaimListingRequest struct {
	ClaimQuantity int `json:"claim_quantity"`
}

// CreateListing publishes a new food listing owned by the logged-in user
func CreateListing(c *fiber.Ctx) error {
	req := new(CreateListingRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	quality := models.FoodQuality(req.Quality)
	if req.Quality == "" {
		quality = models.QualityGood
	} else if !models.IsValidQuality(quality) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid quality value",
		})
	}

	donorID := c.Locals("user_id").(uint)

	listing := models.Listing{
		Title:       req.Title,
		Description: req.Description,
		Quantity:    req.Quantity,
		Location:    req.Location,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Quality:     quality,
		Status:      models.ListingAvailable,
		DonorID:     donorID,
	}

	if err := listingStore.Create(c.UserContext(), &listing); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create listing",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Listing created successfully!",
		"listing": listing,
	})
}

// GetListings returns every listing that still has quantity left
func GetListings(c *fiber.Ctx) error {
	listings, err := listingStore.FindAvailable(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve listings",
		})
	}

	return c.JSON(fiber.Map{
		"listings": listings,
		"count":    len(listings),
	})
}

// GetListing returns a single listing by id
func GetListing(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid listing id",
		})
	}

	listing, err := listingStore.FindByID(c.UserContext(), id)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Listing not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve listing",
		})
	}

	return c.JSON(fiber.Map{
		"listing": listing,
	})
}

// ClaimListing reserves part or all of a listing's remaining quantity for
// the logged-in user. The engine owns validation and the atomic apply;
// real-time push and email happen after commit without blocking the reply.
func ClaimListing(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid listing id",
		})
	}

	req := new(ClaimListingRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	claimantID := c.Locals("user_id").(uint)

	outcome, err := claimEngine.AttemptClaim(c.UserContext(), id, claimantID, req.ClaimQuantity)
	if err != nil {
		return claimError(c, err)
	}

	go dispatchClaim(outcome)

	unit := "items"
	if outcome.Notification.ClaimQuantity == 1 {
		unit = "item"
	}
	return c.JSON(fiber.Map{
		"message":         fmt.Sprintf("Successfully claimed %d %s!", outcome.Notification.ClaimQuantity, unit),
		"listing":         outcome.Listing,
		"notification_id": outcome.Notification.ID,
	})
}

// claimError maps engine errors onto HTTP statuses
func claimError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, claims.ErrListingNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Listing not found",
		})
	case errors.Is(err, claims.ErrClaimantNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Receiver not found",
		})
	case errors.Is(err, claims.ErrSelfClaim):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You cannot claim your own listing",
		})
	case errors.Is(err, claims.ErrNotAvailable):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "This listing is no longer available",
		})
	case errors.Is(err, claims.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Claim quantity must be greater than 0 and within the available quantity",
		})
	case errors.Is(err, claims.ErrStoreUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Temporary error, please retry your claim",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server error while claiming listing",
		})
	}
}

// dispatchClaim pushes the claim event to the donor's live connections and
// sends the best-effort email. Runs outside the request lifecycle.
func dispatchClaim(outcome *claims.Outcome) {
	registry.SendToDonor(outcome.Listing.DonorID, realtime.ListingClaimed(outcome.Notification))

	if emailService == nil {
		return
	}
	donor, err := donorDirectory.FindByID(context.Background(), outcome.Listing.DonorID)
	if err != nil {
		log.Printf("claim email skipped, donor lookup failed: %v", err)
		return
	}
	if err := emailService.SendClaimNotice(donor.Email, outcome.Notification); err != nil {
		log.Printf("claim email failed: %v", err)
	}
}

// GetMyListings returns the logged-in user's own listings
func GetMyListings(c *fiber.Ctx) error {
	donorID := c.Locals("user_id").(uint)

	listings, err := listingStore.FindByDonor(c.UserContext(), donorID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve listings",
		})
	}

	return c.JSON(fiber.Map{
		"listings": listings,
		"count":    len(listings),
	})
}

// DeleteListing removes a listing; only the owning donor may delete, and
// only while the listing has not been fully claimed
func DeleteListing(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid listing id",
		})
	}

	userID := c.Locals("user_id").(uint)

	listing, err := listingStore.FindByID(c.UserContext(), id)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Listing not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve listing",
		})
	}

	if listing.DonorID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "User not authorized to delete this listing",
		})
	}
	if listing.Status != models.ListingAvailable {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Claimed listings cannot be deleted",
		})
	}

	// The delete itself re-checks owner and status, so a claim that commits
	// after the read above cannot be destroyed.
	err = listingStore.Delete(c.UserContext(), id, userID)
	if errors.Is(err, store.ErrStaleListing) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Claimed listings cannot be deleted",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete listing",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Listing deleted successfully",
	})
}

// GetLeaderboard returns the top donors ranked by donated quantity
func GetLeaderboard(c *fiber.Ctx) error {
	n := pageParam(c.Query("limit"), 5)

	donors, err := donorDirectory.TopDonors(c.UserContext(), n)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error fetching leaderboard",
		})
	}

	leaderboard := make([]fiber.Map, 0, len(donors))
	for _, donor := range donors {
		leaderboard = append(leaderboard, fiber.Map{
			"id":              donor.ID,
			"name":            donor.Name,
			"donations_count": donor.DonationsCount,
		})
	}

	return c.JSON(fiber.Map{
		"leaderboard": leaderboard,
	})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
