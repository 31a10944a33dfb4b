package repository

import "github.com/invorya/stockledger-api/internal/domain/entity"

// AnalyticsRepository consultas agregadas de solo lectura para el dashboard.
type AnalyticsRepository interface {
	Summary(ownerID string) (*entity.InventorySummary, error)
	LowStockItems(ownerID string, limit int) ([]*entity.Item, error)
}
