package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un Item.
const (
	ItemStatusActive   = "active"
	ItemStatusInactive = "inactive"
)

// Item representa un artículo (SKU) del inventario de un usuario.
// Quantity solo cambia a través del update condicional atómico del repositorio
// (ApplyDelta); nunca con read-modify-write.
type Item struct {
	ID                string
	OwnerID           string
	SKU               string // único por dueño
	Name              string
	Quantity          int64
	LowStockThreshold int64
	SupplierName      string
	Price             decimal.Decimal // precio de venta unitario
	Status            string          // active, inactive
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock indica si el artículo está en o bajo su umbral de reposición.
func (i *Item) IsLowStock() bool {
	return i.Quantity <= i.LowStockThreshold
}
