package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/lucasgiorgi95/stock-backend/internal/application/dto"
	"github.com/lucasgiorgi95/stock-backend/internal/domain"
)

// Envelope respuesta exitosa: {success:true, message?, data, pagination?, summary?}.
type Envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message,omitempty"`
	Data       any             `json:"data,omitempty"`
	Summary    any             `json:"summary,omitempty"`
	Pagination *dto.Pagination `json:"pagination,omitempty"`
}

// ErrorEnvelope respuesta de error: {success:false, message, error?, data?}.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func ok(c *fiber.Ctx, message string, data any) error {
	return c.JSON(Envelope{Success: true, Message: message, Data: data})
}

func okPage(c *fiber.Ctx, data any, pagination dto.Pagination) error {
	return c.JSON(Envelope{Success: true, Data: data, Pagination: &pagination})
}

func created(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Message: message, Data: data})
}

func failStatus(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorEnvelope{Success: false, Message: message})
}

// failErr mapea un error de dominio a su respuesta HTTP. El detalle del error
// interno solo se expone en modo development.
func failErr(c *fiber.Ctx, err error, devMode bool) error {
	var insufficientStock *domain.InsufficientStockError
	if errors.As(err, &insufficientStock) {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorEnvelope{
			Success: false,
			Message: "Stock insuficiente para realizar la salida",
			Data: fiber.Map{
				"stockDisponible":    insufficientStock.Available,
				"cantidadSolicitada": insufficientStock.Requested,
			},
		})
	}
	var dependents *domain.DependentsError
	if errors.As(err, &dependents) {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorEnvelope{
			Success: false,
			Message: dependents.Error(),
			Data:    fiber.Map{"registrosAsociados": dependents.Count},
		})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return failStatus(c, fiber.StatusBadRequest, "Datos de entrada inválidos")
	case errors.Is(err, domain.ErrNotFound):
		return failStatus(c, fiber.StatusNotFound, "Recurso no encontrado")
	case errors.Is(err, domain.ErrDuplicate):
		return failStatus(c, fiber.StatusBadRequest, "Ya existe un recurso con esos datos")
	case errors.Is(err, domain.ErrConflict):
		return failStatus(c, fiber.StatusBadRequest, "Operación en conflicto con el estado actual")
	case errors.Is(err, domain.ErrInsufficientStock):
		return failStatus(c, fiber.StatusBadRequest, "Stock insuficiente")
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthorized):
		return failStatus(c, fiber.StatusUnauthorized, "Credenciales inválidas")
	}

	body := ErrorEnvelope{Success: false, Message: "Error interno del servidor"}
	if devMode {
		body.Error = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(body)
}
