package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/unifreela/api/internal/utils"
)

// RequireRoles libera a rota apenas para as roles informadas (USER, ADMIN).
func RequireRoles(allowed ...string) fiber.Handler {
	allowedSet := map[string]bool{}
	for _, r := range allowed {
		allowedSet[strings.ToUpper(r)] = true
	}

	return func(c *fiber.Ctx) error {
		raw := c.Locals("claims")
		if raw == nil {
			return acessoNegado(c, fiber.StatusUnauthorized)
		}

		claims, ok := raw.(*utils.Claims)
		if !ok || claims == nil {
			return acessoNegado(c, fiber.StatusUnauthorized)
		}

		role := strings.ToUpper(strings.TrimSpace(claims.Role))
		if !allowedSet[role] {
			return acessoNegado(c, fiber.StatusForbidden)
		}

		return c.Next()
	}
}
