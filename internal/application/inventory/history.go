package inventory

import (
	"context"

	"github.com/invorya/stockledger-api/internal/application/dto"
	"github.com/invorya/stockledger-api/internal/domain"
	"github.com/invorya/stockledger-api/internal/domain/ledger"
)

// ListMovements devuelve una página newest-first del historial de un item,
// anotada con el saldo corrido histórico por fila, más la continuación para
// la página siguiente.
//
// El anchor es parte del contrato de paginación: la página 1 (offset 0) usa
// la cantidad viva del item; toda página siguiente exige el
// continuation_quantity devuelto por la anterior. Sin él los saldos
// históricos no pueden reconstruirse y la petición se rechaza.
func (uc *InventoryUseCase) ListMovements(ctx context.Context, ownerID, itemID string, page dto.PageRequest, anchor *int64) (*dto.MovementHistoryResponse, error) {
	page.DefaultPage()

	item, err := uc.items.GetByID(ownerID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	start := item.Quantity
	if page.Offset > 0 {
		if anchor == nil {
			return nil, domain.ErrMissingAnchor
		}
		start = *anchor
	} else if anchor != nil {
		start = *anchor
	}

	movs, err := uc.movements.ListByItem(ownerID, itemID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.movements.CountByItem(ownerID, itemID)
	if err != nil {
		return nil, err
	}

	projected, continuation := ledger.Project(movs, start)
	out := make([]dto.MovementWithBalance, 0, len(projected))
	for _, p := range projected {
		out = append(out, dto.MovementWithBalance{
			MovementResponse: dto.ToMovementResponse(p.Movement),
			QuantityAfter:    p.QuantityAfter,
		})
	}
	return &dto.MovementHistoryResponse{
		Movements:            out,
		Page:                 dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
		ContinuationQuantity: continuation,
	}, nil
}
