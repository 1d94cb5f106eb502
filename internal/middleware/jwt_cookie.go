package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/unifreela/api/internal/sessions"
	"github.com/unifreela/api/internal/utils"
)

func acessoNegado(c *fiber.Ctx, status int) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   "Acesso negado.",
	})
}

// JWTFromCookie lê e valida o token do cookie de sessão. Nenhum handler
// protegido executa sem passar por aqui: cookie ausente, assinatura
// inválida, token expirado ou revogado derrubam a requisição com 401.
func JWTFromCookie(secret string, store *sessions.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies("token")
		if tokenStr == "" {
			return acessoNegado(c, fiber.StatusUnauthorized)
		}

		claims, err := utils.ParseJWT(secret, tokenStr)
		if err != nil {
			return acessoNegado(c, fiber.StatusUnauthorized)
		}

		if store != nil && store.Revogado(c.Context(), claims.ID, claims.UserID) {
			return acessoNegado(c, fiber.StatusUnauthorized)
		}

		c.Locals("claims", claims)
		return c.Next()
	}
}
