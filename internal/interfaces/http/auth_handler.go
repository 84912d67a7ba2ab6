package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lucasgiorgi95/stock-backend/internal/application/auth"
	"github.com/lucasgiorgi95/stock-backend/internal/application/dto"
)

// AuthHandler maneja registro, login y /me.
type AuthHandler struct {
	uc      *auth.UseCase
	devMode bool
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase, devMode bool) *AuthHandler {
	return &AuthHandler{uc: uc, devMode: devMode}
}

// Register maneja POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return failStatus(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return failStatus(c, fiber.StatusBadRequest, "Todos los campos son requeridos (username, email, password)")
	}
	out, err := h.uc.Register(in)
	if err != nil {
		return failErr(c, err, h.devMode)
	}
	return created(c, "Usuario registrado exitosamente", out)
}

// Login maneja POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return failStatus(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if in.Identifier() == "" || in.Password == "" {
		return failStatus(c, fiber.StatusBadRequest, "El correo electrónico/usuario y la contraseña son requeridos")
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return failErr(c, err, h.devMode)
	}
	return ok(c, "Inicio de sesión exitoso", out)
}

// Me maneja GET /api/v1/auth/me (protegido).
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetUserID(c))
	if err != nil {
		return failErr(c, err, h.devMode)
	}
	return ok(c, "", out)
}
