package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lucasgiorgi95/stock-backend/internal/application/dto"
	"github.com/lucasgiorgi95/stock-backend/internal/application/ledger"
)

// MovementHandler maneja el registro y consulta de movimientos del ledger (protegido).
type MovementHandler struct {
	uc      *ledger.UseCase
	devMode bool
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *ledger.UseCase, devMode bool) *MovementHandler {
	return &MovementHandler{uc: uc, devMode: devMode}
}

// Create maneja POST /api/v1/movements.
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return failStatus(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if in.ProductID == "" {
		return failStatus(c, fiber.StatusBadRequest, "El ID del producto es requerido")
	}

	result, err := h.uc.RecordMovement(c.UserContext(), ledger.MovementInput{
		UserID:    GetUserID(c),
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		Reference: in.Reference,
		Notes:     in.Notes,
	})
	if err != nil {
		return failErr(c, err, h.devMode)
	}
	return created(c, "Movimiento registrado exitosamente", dto.CreateMovementResponse{
		Movement: dto.ToMovementResponse(result.Movement),
		NewStock: result.NewStock,
	})
}

// ListByProduct maneja GET /api/v1/movements/:productId?page&limit&startDate&endDate&type.
func (h *MovementHandler) ListByProduct(c *fiber.Ctx) error {
	filter := ledger.LedgerFilter{Type: c.Query("type")}
	if start, okDate := parseDate(c.Query("startDate")); okDate {
		filter.StartDate = &start
	}
	if end, okDate := parseDate(c.Query("endDate")); okDate {
		filter.EndDate = &end
	}
	page := dto.PageRequest{Page: c.QueryInt("page", 1), Limit: c.QueryInt("limit", 10)}

	out, err := h.uc.GetLedger(c.UserContext(), GetUserID(c), c.Params("productId"), filter, page)
	if err != nil {
		return failErr(c, err, h.devMode)
	}
	return c.JSON(Envelope{
		Success:    true,
		Data:       dto.ToMovementResponses(out.Movements),
		Summary:    out.Summary,
		Pagination: &out.Pagination,
	})
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
