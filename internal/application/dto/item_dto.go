package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/invorya/stockledger-api/internal/domain/entity"
)

// CreateItemRequest alta de un artículo con su cantidad inicial.
type CreateItemRequest struct {
	SKU               string          `json:"sku" validate:"required"`
	Name              string          `json:"name" validate:"required"`
	Quantity          int64           `json:"quantity" validate:"min=0"`
	LowStockThreshold int64           `json:"low_stock_threshold" validate:"min=0"`
	SupplierName      string          `json:"supplier_name"`
	Price             decimal.Decimal `json:"price"`
}

// UpdateItemRequest edición de campos del artículo. La cantidad nunca se
// edita por aquí: solo cambia vía ventas, devoluciones y ajustes.
type UpdateItemRequest struct {
	Name              *string          `json:"name"`
	LowStockThreshold *int64           `json:"low_stock_threshold" validate:"omitempty,min=0"`
	SupplierName      *string          `json:"supplier_name"`
	Price             *decimal.Decimal `json:"price"`
	Status            *string          `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ItemResponse representación HTTP de un Item.
type ItemResponse struct {
	ID                string          `json:"id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Quantity          int64           `json:"quantity"`
	LowStockThreshold int64           `json:"low_stock_threshold"`
	SupplierName      string          `json:"supplier_name,omitempty"`
	Price             decimal.Decimal `json:"price"`
	Status            string          `json:"status"`
	LowStock          bool            `json:"low_stock"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToItemResponse mapea la entidad a su representación HTTP.
func ToItemResponse(i *entity.Item) ItemResponse {
	return ItemResponse{
		ID:                i.ID,
		SKU:               i.SKU,
		Name:              i.Name,
		Quantity:          i.Quantity,
		LowStockThreshold: i.LowStockThreshold,
		SupplierName:      i.SupplierName,
		Price:             i.Price,
		Status:            i.Status,
		LowStock:          i.IsLowStock(),
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}

// ItemListResponse página de items.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
