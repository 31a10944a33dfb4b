package entity

import "github.com/shopspring/decimal"

// InventorySummary agregados del inventario de un dueño para el dashboard.
type InventorySummary struct {
	TotalItems     int
	TotalUnits     int64
	InventoryValue decimal.Decimal // sum(quantity * price)
	LowStockCount  int
}
