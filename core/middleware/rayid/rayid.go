package rayid

import (
	"devserve/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// New returns a middleware that assigns every request a RayID.
// The id is only stored in the request locals; response headers are left
// untouched.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(logger.RayIDKey, uuid.NewString())
		return c.Next()
	}
}

// Get returns the RayID of the current request, or an empty string.
func Get(c *fiber.Ctx) string {
	if rid, ok := c.Locals(logger.RayIDKey).(string); ok {
		return rid
	}
	return ""
}
