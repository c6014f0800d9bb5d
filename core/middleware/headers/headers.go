package headers

import (
	"sort"

	"github.com/gofiber/fiber/v2"
)

// New returns a middleware that sets the given static headers on every
// response before the next handler runs. Handlers may still override them.
func New(static map[string]string) fiber.Handler {
	names := make([]string, 0, len(static))
	for name := range static {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *fiber.Ctx) error {
		for _, name := range names {
			c.Set(name, static[name])
		}
		return c.Next()
	}
}
