package dto

import "github.com/shopspring/decimal"

// DashboardResponse resumen del inventario del usuario.
type DashboardResponse struct {
	TotalItems     int             `json:"total_items"`
	TotalUnits     int64           `json:"total_units"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	LowStockCount  int             `json:"low_stock_count"`
	LowStockItems  []ItemResponse  `json:"low_stock_items"`
}
