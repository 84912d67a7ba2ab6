package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lucasgiorgi95/stock-backend/internal/application/dashboard"
	"github.com/lucasgiorgi95/stock-backend/internal/application/dto"
	"github.com/lucasgiorgi95/stock-backend/internal/application/ledger"
)

// StockHandler maneja el ajuste manual de stock y el dashboard (protegido).
type StockHandler struct {
	ledgerUC    *ledger.UseCase
	dashboardUC *dashboard.UseCase
	devMode     bool
}

// NewStockHandler construye el handler.
func NewStockHandler(ledgerUC *ledger.UseCase, dashboardUC *dashboard.UseCase, devMode bool) *StockHandler {
	return &StockHandler{ledgerUC: ledgerUC, dashboardUC: dashboardUC, devMode: devMode}
}

// Adjust maneja POST /api/v1/stock/adjust.
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return failStatus(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if in.ProductID == "" {
		return failStatus(c, fiber.StatusBadRequest, "El ID del producto es requerido")
	}
	if in.Reason == "" {
		return failStatus(c, fiber.StatusBadRequest, "El motivo del ajuste es requerido")
	}

	result, err := h.ledgerUC.AdjustStockTo(c.UserContext(), ledger.AdjustInput{
		UserID:    GetUserID(c),
		ProductID: in.ProductID,
		Target:    in.Quantity,
		Reason:    in.Reason,
		Notes:     in.Notes,
	})
	if err != nil {
		return failErr(c, err, h.devMode)
	}

	message := "Stock ajustado exitosamente"
	if result.Delta.IsZero() {
		message = "No se realizaron cambios en el stock"
	}
	return ok(c, message, dto.AdjustStockResponse{
		Product:       result.ProductName,
		PreviousStock: result.PreviousStock,
		NewStock:      result.NewStock,
		Delta:         result.Delta,
		Kind:          result.Kind,
	})
}

// Dashboard maneja GET /api/v1/stock/dashboard.
func (h *StockHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.dashboardUC.Summary(c.UserContext(), GetUserID(c))
	if err != nil {
		return failErr(c, err, h.devMode)
	}
	return ok(c, "", out)
}
