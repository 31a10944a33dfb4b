package postgres

import (
	"context"
	"fmt"

	"github.com/invorya/stockledger-api/internal/domain/entity"
	"github.com/invorya/stockledger-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analytics.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// Summary agrega totales del inventario del dueño en una sola pasada.
func (r *AnalyticsRepo) Summary(ownerID string) (*entity.InventorySummary, error) {
	query := `
		SELECT
			count(*),
			COALESCE(sum(quantity), 0),
			COALESCE(sum(quantity * price), 0),
			count(*) FILTER (WHERE quantity <= low_stock_threshold)
		FROM items
		WHERE owner_id = $1 AND status = 'active'`
	var s entity.InventorySummary
	err := r.q.QueryRow(context.Background(), query, ownerID).Scan(
		&s.TotalItems, &s.TotalUnits, &s.InventoryValue, &s.LowStockCount,
	)
	if err != nil {
		return nil, fmt.Errorf("inventory summary: %w", err)
	}
	return &s, nil
}

// LowStockItems lista los items activos en o bajo su umbral, los más
// escasos primero.
func (r *AnalyticsRepo) LowStockItems(ownerID string, limit int) ([]*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE owner_id = $1 AND status = 'active' AND quantity <= low_stock_threshold
		ORDER BY quantity ASC, name
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("low stock items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
