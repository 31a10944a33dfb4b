package dto

import (
	"time"

	"github.com/invorya/stockledger-api/internal/domain/entity"
)

// SaleLine línea de una venta: descuenta quantity unidades del SKU.
type SaleLine struct {
	SKU      string `json:"sku" validate:"required"`
	Quantity int64  `json:"quantity" validate:"required,gt=0"`
}

// RecordSaleRequest venta por lote: las líneas se procesan en orden.
type RecordSaleRequest struct {
	Lines        []SaleLine `json:"lines" validate:"required,min=1,dive"`
	CustomerName string     `json:"customer_name"`
}

// ReturnLine línea de una devolución: suma quantity unidades al SKU.
type ReturnLine struct {
	SKU      string `json:"sku" validate:"required"`
	Quantity int64  `json:"quantity" validate:"required,gt=0"`
	Reason   string `json:"reason"`
}

// RecordReturnRequest devolución por lote.
type RecordReturnRequest struct {
	Lines []ReturnLine `json:"lines" validate:"required,min=1,dive"`
}

// AdjustItemRequest ajuste puntual de cantidad. Type es opcional: si viene
// vacío o no es un tipo válido, se infiere (delta>0 → purchase, si no →
// adjustment).
type AdjustItemRequest struct {
	Delta  int64  `json:"delta" validate:"required"`
	Reason string `json:"reason" validate:"required"`
	Type   string `json:"type"`
}

// ReverseMovementRequest reversa de una venta desde su movimiento.
type ReverseMovementRequest struct {
	Reason string `json:"reason"`
}

// MovementResponse representación HTTP de un movimiento.
type MovementResponse struct {
	ID           string    `json:"id"`
	ItemID       string    `json:"item_id"`
	Type         string    `json:"type"`
	Delta        int64     `json:"delta"`
	CustomerName string    `json:"customer_name,omitempty"`
	Reason       string    `json:"reason,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToMovementResponse mapea la entidad a su representación HTTP.
func ToMovementResponse(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:           m.ID,
		ItemID:       m.ItemID,
		Type:         m.Type,
		Delta:        m.Delta,
		CustomerName: m.CustomerName,
		Reason:       m.Reason,
		CreatedAt:    m.CreatedAt,
	}
}

// MovementWithBalance movimiento anotado con el saldo corrido histórico.
type MovementWithBalance struct {
	MovementResponse
	QuantityAfter int64 `json:"quantity_after"`
}

// MovementHistoryResponse página de historial con saldo corrido.
// ContinuationQuantity debe enviarse como anchor al pedir la página siguiente.
type MovementHistoryResponse struct {
	Movements            []MovementWithBalance `json:"movements"`
	Page                 PageResponse          `json:"page"`
	ContinuationQuantity int64                 `json:"continuation_quantity"`
}
