package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const Version = "1.0.0"

// Root (GET /)
func Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Event Management API Server",
		"version": Version,
	})
}

// Health (GET /health)
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Server is healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// NotFound eşleşmeyen tüm rotalar için JSON 404.
func NotFound(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusNotFound, "Route not found", nil)
}
