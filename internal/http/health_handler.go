package http

import "github.com/gofiber/fiber/v2"

// HealthHandler reports process liveness.
func HealthHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
