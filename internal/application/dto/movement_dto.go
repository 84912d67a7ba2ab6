package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lucasgiorgi95/stock-backend/internal/domain/entity"
)

// CreateMovementRequest cuerpo de POST /api/v1/movements.
type CreateMovementRequest struct {
	ProductID string          `json:"productId"`
	Type      string          `json:"type"` // entrada | salida
	Quantity  decimal.Decimal `json:"quantity"`
	Reason    string          `json:"reason"`
	Reference string          `json:"reference"`
	Notes     string          `json:"notes"`
}

// AdjustStockRequest cuerpo de POST /api/v1/stock/adjust.
type AdjustStockRequest struct {
	ProductID string          `json:"productId"`
	Quantity  decimal.Decimal `json:"quantity"` // stock objetivo, se recorta a >= 0
	Reason    string          `json:"reason"`
	Notes     string          `json:"notes"`
}

// MovementResponse representación JSON de un movimiento del ledger.
type MovementResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	Type         string          `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	Reason       string          `json:"reason"`
	Reference    string          `json:"reference,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	MovementDate time.Time       `json:"movement_date"`
	IsAdjustment bool            `json:"is_adjustment"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToMovementResponse convierte la entidad a su representación JSON.
func ToMovementResponse(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		Type:         m.Type,
		Quantity:     m.Quantity,
		Reason:       m.Reason,
		Reference:    m.Reference,
		Notes:        m.Notes,
		MovementDate: m.MovementDate,
		IsAdjustment: m.IsAdjustment,
		CreatedAt:    m.CreatedAt,
	}
}

// ToMovementResponses convierte un slice de entidades.
func ToMovementResponses(list []*entity.StockMovement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementResponse(m))
	}
	return out
}

// CreateMovementResponse respuesta de POST /api/v1/movements.
type CreateMovementResponse struct {
	Movement MovementResponse `json:"movement"`
	NewStock decimal.Decimal  `json:"stockActual"`
}

// AdjustStockResponse respuesta de POST /api/v1/stock/adjust.
type AdjustStockResponse struct {
	Product       string          `json:"producto,omitempty"`
	PreviousStock decimal.Decimal `json:"stockAnterior"`
	NewStock      decimal.Decimal `json:"stockNuevo"`
	Delta         decimal.Decimal `json:"diferencia"`
	Kind          string          `json:"tipoAjuste,omitempty"`
}

// LedgerSummary totales agregados del conjunto de movimientos filtrado.
type LedgerSummary struct {
	Entrada decimal.Decimal `json:"entrada"`
	Salida  decimal.Decimal `json:"salida"`
	Saldo   decimal.Decimal `json:"saldo"` // entrada - salida
}
