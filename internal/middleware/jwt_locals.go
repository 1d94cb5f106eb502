package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/unifreela/api/internal/utils"
)

func AttachJWTLocals() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Locals("claims")
		if raw == nil {
			return acessoNegado(c, fiber.StatusUnauthorized)
		}

		claims, ok := raw.(*utils.Claims)
		if !ok || claims == nil {
			return acessoNegado(c, fiber.StatusUnauthorized)
		}

		uid := strings.TrimSpace(claims.UserID)
		if uid == "" {
			return acessoNegado(c, fiber.StatusUnauthorized)
		}

		c.Locals("userId", uid)
		c.Locals("role", strings.ToUpper(strings.TrimSpace(claims.Role)))
		return c.Next()
	}
}
