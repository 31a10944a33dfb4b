package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/invorya/stockledger-api/internal/domain"
	"github.com/invorya/stockledger-api/internal/domain/entity"
	"github.com/invorya/stockledger-api/internal/domain/repository"
)

// ReverseSaleMovement revierte una venta a partir de su movimiento:
// "devolución desde el movimiento". Solo los movimientos de venta son
// reversibles; revertir una reversa sería ambiguo, así que returns, ajustes,
// compras e initial se rechazan antes de tocar nada.
//
// El delta aplicado es la negación del delta original (una venta es negativa,
// su reversa positiva), por lo que no necesita condición de suficiencia. El
// movimiento nuevo es de tipo return, hereda el cliente de la venta y, si el
// caller no da una razón, se genera una referenciando la fecha original.
func (uc *InventoryUseCase) ReverseSaleMovement(ctx context.Context, ownerID, movementID, reason string) (*entity.StockMovement, error) {
	orig, err := uc.movements.GetByID(ownerID, movementID)
	if err != nil {
		return nil, err
	}
	if orig == nil {
		return nil, domain.ErrNotFound
	}
	if orig.Type != entity.MovementTypeSale {
		return nil, domain.ErrNotReversible
	}

	delta := -orig.Delta
	item, err := uc.items.ApplyDelta(repository.ItemFilter{OwnerID: ownerID, ID: orig.ItemID}, delta)
	if err != nil {
		return nil, err
	}
	if item == nil {
		// El item fue borrado después de la venta: nada se aplicó, falla
		// dura sin compensación.
		return nil, domain.ErrNotFound
	}

	if reason == "" {
		reason = fmt.Sprintf("Devolución de venta del %s", orig.CreatedAt.Format("2006-01-02"))
	}
	mov := &entity.StockMovement{
		ID:           uuid.New().String(),
		OwnerID:      ownerID,
		ItemID:       item.ID,
		Type:         entity.MovementTypeReturn,
		Delta:        delta,
		CustomerName: orig.CustomerName,
		Reason:       reason,
		CreatedAt:    time.Now(),
	}
	if err := uc.movements.Create(mov); err != nil {
		uc.rollback([]appliedLine{{ownerID: ownerID, itemID: item.ID, sku: item.SKU, delta: delta}})
		return nil, err
	}
	uc.publishMovement(item, mov)
	return mov, nil
}
