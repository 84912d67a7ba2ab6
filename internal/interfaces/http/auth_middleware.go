package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/lucasgiorgi95/stock-backend/internal/application/auth"
)

// LocalUserID key del UserID autenticado en c.Locals.
const LocalUserID = "user_id"

// AuthMiddleware valida el bearer token JWT y verifica que el usuario embebido
// siga existiendo y activo. Acepta "Authorization: Bearer <token>" y, como
// fallback, el header "x-token".
func AuthMiddleware(authUC *auth.UseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return failStatus(c, fiber.StatusUnauthorized, "Token requerido")
		}
		user, err := authUC.Verify(token)
		if err != nil {
			return failStatus(c, fiber.StatusUnauthorized, "Token inválido o expirado")
		}
		c.Locals(LocalUserID, user.ID)
		return c.Next()
	}
}

func extractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return strings.TrimSpace(c.Get("x-token"))
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
