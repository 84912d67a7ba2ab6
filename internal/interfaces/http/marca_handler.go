package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lucasgiorgi95/stock-backend/internal/application/catalog"
	"github.com/lucasgiorgi95/stock-backend/internal/application/dto"
)

// MarcaHandler maneja las peticiones HTTP para Marca (protegido).
type MarcaHandler struct {
	uc      *catalog.MarcaUseCase
	devMode bool
}

// NewMarcaHandler construye el handler.
func NewMarcaHandler(uc *catalog.MarcaUseCase, devMode bool) *MarcaHandler {
	return &MarcaHandler{uc: uc, devMode: devMode}
}

// Create maneja POST /api/v1/marcas.
func (h *MarcaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMarcaRequest
	if err := c.BodyParser(&in); err != nil {
		return failStatus(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if in.Name == "" {
		return failStatus(c, fiber.StatusBadRequest, "El nombre de la marca es requerido")
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return failErr(c, err, h.devMode)
	}
	return created(c, "Marca creada exitosamente", out)
}

// List maneja GET /api/v1/marcas?page&limit&search.
func (h *MarcaHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Page: c.QueryInt("page", 1), Limit: c.QueryInt("limit", 10)}
	out, pagination, err := h.uc.List(GetUserID(c), c.Query("search"), page)
	if err != nil {
		return failErr(c, err, h.devMode)
	}
	return okPage(c, out, pagination)
}

// GetByID maneja GET /api/v1/marcas/:id.
func (h *MarcaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetUserID(c), c.Params("id"))
	if err != nil {
		return failErr(c, err, h.devMode)
	}
	return ok(c, "", out)
}

// Update maneja PUT /api/v1/marcas/:id.
func (h *MarcaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMarcaRequest
	if err := c.BodyParser(&in); err != nil {
		return failStatus(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	out, err := h.uc.Update(GetUserID(c), c.Params("id"), in)
	if err != nil {
		return failErr(c, err, h.devMode)
	}
	return ok(c, "Marca actualizada exitosamente", out)
}

// Delete maneja DELETE /api/v1/marcas/:id.
func (h *MarcaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetUserID(c), c.Params("id")); err != nil {
		return failErr(c, err, h.devMode)
	}
	return ok(c, "Marca eliminada exitosamente", nil)
}
