package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"foodshare/internal/services"
)

var cloudinaryService *services.CloudinaryService

func InitCloudinaryService() error {
	var err error
	cloudinaryService, err = services.NewCloudinaryService()
	if err != nil {
		return fmt.Errorf("failed to initialize Cloudinary service: %w", err)
	}
	return nil
}

// UploadImage handles a listing photo upload and returns the URL the client
// sends back when creating the listing
func UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file provided",
		})
	}

	// Validate file size (10MB max)
	maxSize := int64(10 * 1024 * 1024)
	if file.Size > maxSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("File too large. Maximum size is %dMB", maxSize/(1024*1024)),
		})
	}

	folder := c.Query("folder", "foodshare/listings")

	result, err := cloudinaryService.UploadImage(file, folder)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Failed to upload file: %v", err),
		})
	}

	return c.JSON(fiber.Map{
		"message": "File uploaded successfully",
		"file": fiber.Map{
			"url":        result.SecureURL,
			"public_id":  result.PublicID,
			"format":     result.Format,
			"size_bytes": result.Bytes,
		},
	})
}
