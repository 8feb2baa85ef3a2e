package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"foodshare/internal/handlers"
	"foodshare/internal/middleware"
)

func SetupListingRoutes(app *fiber.App) {
	listings := app.Group("/api/listings")

	// Public reads
	listings.Get("/", handlers.GetListings)
	listings.Get("/leaderboard", handlers.GetLeaderboard)

	// Authenticated routes; /my-listings must be registered before /:id
	listings.Get("/my-listings", middleware.Protected(), handlers.GetMyListings)
	listings.Post("/", middleware.Protected(), handlers.CreateListing)
	listings.Post("/claim/:id", middleware.Protected(), handlers.ClaimListing)
	listings.Delete("/:id", middleware.Protected(), handlers.DeleteListing)
	listings.Get("/:id", handlers.GetListing)

	// Image upload for listing photos
	app.Post("/api/upload", middleware.Protected(), handlers.UploadImage)

	// Live claim events for the logged-in user
	app.Use("/api/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/api/ws", middleware.Protected(), handlers.ListingSocket())
}
