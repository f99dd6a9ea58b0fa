package middleware

import (
	"log"

	"quiz-platform/models"

	"github.com/gofiber/fiber/v2"
)

// UserContextMiddleware extracts the user identity and role set by the
// Gateway and attaches them to the request context. It never rejects on its
// own; RequireUser and RequireRole do the gating per route.
func UserContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", c.Get("X-User-ID"))
		c.Locals("user_role", models.UserRole(c.Get("X-User-Role")))
		return c.Next()
	}
}

// RequireUser rejects requests that carry no user context. Runs after
// UserContextMiddleware.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		if userID == "" {
			log.Printf("❌ [USER_CTX] X-User-ID required but missing on secured route: %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-User-ID — request must come through gateway with auth context",
			})
		}
		return c.Next()
	}
}

// RequireRole gates a route to the given roles. Runs after
// UserContextMiddleware.
func RequireRole(allowed ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(models.UserRole)
		for _, want := range allowed {
			if role == want {
				return c.Next()
			}
		}
		log.Printf("🚫 [USER_CTX] Role %q denied for %s", role, c.Path())
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient privileges",
		})
	}
}
