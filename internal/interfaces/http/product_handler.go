package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lucasgiorgi95/stock-backend/internal/application/catalog"
	"github.com/lucasgiorgi95/stock-backend/internal/application/dto"
)

// ProductHandler maneja las peticiones HTTP para Product (protegido).
type ProductHandler struct {
	uc      *catalog.ProductUseCase
	devMode bool
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.ProductUseCase, devMode bool) *ProductHandler {
	return &ProductHandler{uc: uc, devMode: devMode}
}

// Create maneja POST /api/v1/products.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return failStatus(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if in.Code == "" || in.Name == "" {
		return failStatus(c, fiber.StatusBadRequest, "El código y el nombre del producto son requeridos")
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return failErr(c, err, h.devMode)
	}
	return created(c, "Producto creado exitosamente", out)
}

// List maneja GET /api/v1/products?page&limit&search.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Page: c.QueryInt("page", 1), Limit: c.QueryInt("limit", 10)}
	out, pagination, err := h.uc.List(GetUserID(c), c.Query("search"), page)
	if err != nil {
		return failErr(c, err, h.devMode)
	}
	return okPage(c, out, pagination)
}

// Search maneja GET /api/v1/products/search?code=XXX.
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return failStatus(c, fiber.StatusBadRequest, "El parámetro code es requerido")
	}
	out, err := h.uc.SearchByCode(GetUserID(c), code)
	if err != nil {
		return failErr(c, err, h.devMode)
	}
	return ok(c, "", out)
}

// LowStock maneja GET /api/v1/products/low-stock.
func (h *ProductHandler) LowStock(c *fiber.Ctx) error {
	page := dto.PageRequest{Page: c.QueryInt("page", 1), Limit: c.QueryInt("limit", 10)}
	out, pagination, err := h.uc.ListLowStock(GetUserID(c), page)
	if err != nil {
		return failErr(c, err, h.devMode)
	}
	return okPage(c, out, pagination)
}

// GetByID maneja GET /api/v1/products/:id.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetUserID(c), c.Params("id"))
	if err != nil {
		return failErr(c, err, h.devMode)
	}
	return ok(c, "", out)
}

// Update maneja PUT /api/v1/products/:id.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return failStatus(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	out, err := h.uc.Update(GetUserID(c), c.Params("id"), in)
	if err != nil {
		return failErr(c, err, h.devMode)
	}
	return ok(c, "Producto actualizado exitosamente", out)
}

// Delete maneja DELETE /api/v1/products/:id (borrado lógico).
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetUserID(c), c.Params("id")); err != nil {
		return failErr(c, err, h.devMode)
	}
	return ok(c, "Producto eliminado exitosamente", nil)
}
