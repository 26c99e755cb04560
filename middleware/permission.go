package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRoles allows the request through only when the principal's role is
// one of the given fixed role ids.
func RequireRoles(roleIDs ...uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}
		for _, id := range roleIDs {
			if principal.RoleID == id {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have permission to perform this action",
		})
	}
}
