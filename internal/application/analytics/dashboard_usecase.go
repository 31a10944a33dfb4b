package analytics

import (
	"context"

	"github.com/invorya/stockledger-api/internal/application/dto"
	"github.com/invorya/stockledger-api/internal/domain/repository"
)

// DashboardUseCase arma el resumen de inventario de un usuario a partir de
// las consultas agregadas del repositorio de analytics.
type DashboardUseCase struct {
	repo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// Summary devuelve totales, valor de inventario y los items en bajo stock.
func (uc *DashboardUseCase) Summary(ctx context.Context, ownerID string) (*dto.DashboardResponse, error) {
	summary, err := uc.repo.Summary(ownerID)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.repo.LowStockItems(ownerID, 10)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(lowStock))
	for _, it := range lowStock {
		items = append(items, dto.ToItemResponse(it))
	}
	return &dto.DashboardResponse{
		TotalItems:     summary.TotalItems,
		TotalUnits:     summary.TotalUnits,
		InventoryValue: summary.InventoryValue,
		LowStockCount:  summary.LowStockCount,
		LowStockItems:  items,
	}, nil
}
