package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lucasgiorgi95/stock-backend/internal/application/catalog"
	"github.com/lucasgiorgi95/stock-backend/internal/application/dto"
)

// SupplierHandler maneja las peticiones HTTP para Supplier (protegido).
type SupplierHandler struct {
	uc      *catalog.SupplierUseCase
	devMode bool
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(uc *catalog.SupplierUseCase, devMode bool) *SupplierHandler {
	return &SupplierHandler{uc: uc, devMode: devMode}
}

// Create maneja POST /api/v1/suppliers.
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return failStatus(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if in.Name == "" {
		return failStatus(c, fiber.StatusBadRequest, "El nombre del proveedor es requerido")
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return failErr(c, err, h.devMode)
	}
	return created(c, "Proveedor creado exitosamente", out)
}

// List maneja GET /api/v1/suppliers?page&limit&search.
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Page: c.QueryInt("page", 1), Limit: c.QueryInt("limit", 10)}
	out, pagination, err := h.uc.List(GetUserID(c), c.Query("search"), page)
	if err != nil {
		return failErr(c, err, h.devMode)
	}
	return okPage(c, out, pagination)
}

// GetByID maneja GET /api/v1/suppliers/:id.
func (h *SupplierHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetUserID(c), c.Params("id"))
	if err != nil {
		return failErr(c, err, h.devMode)
	}
	return ok(c, "", out)
}

// Update maneja PUT /api/v1/suppliers/:id.
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return failStatus(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	out, err := h.uc.Update(GetUserID(c), c.Params("id"), in)
	if err != nil {
		return failErr(c, err, h.devMode)
	}
	return ok(c, "Proveedor actualizado exitosamente", out)
}

// Delete maneja DELETE /api/v1/suppliers/:id.
func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetUserID(c), c.Params("id")); err != nil {
		return failErr(c, err, h.devMode)
	}
	return ok(c, "Proveedor eliminado exitosamente", nil)
}
