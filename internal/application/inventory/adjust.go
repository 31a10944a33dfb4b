package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/invorya/stockledger-api/internal/application/dto"
	"github.com/invorya/stockledger-api/internal/domain"
	"github.com/invorya/stockledger-api/internal/domain/entity"
	"github.com/invorya/stockledger-api/internal/domain/repository"
)

// movementTypeFor aplica la regla de inferencia de tipo de un ajuste: un tipo
// explícito válido gana; sin tipo, un delta positivo se registra como
// purchase y uno negativo como adjustment. Así "agregar stock" y "asentar un
// tipo concreto" comparten el mismo endpoint.
func movementTypeFor(explicit string, delta int64) string {
	if entity.ValidMovementType(explicit) {
		return explicit
	}
	if delta > 0 {
		return entity.MovementTypePurchase
	}
	return entity.MovementTypeAdjustment
}

// AdjustQuantity aplica un ajuste puntual a un item: cualquier delta firmado
// distinto de cero, sujeto a la misma condición de suficiencia del mutador
// para deltas negativos. Registra el movimiento con el tipo explícito o el
// inferido.
func (uc *InventoryUseCase) AdjustQuantity(ctx context.Context, ownerID, itemID string, in dto.AdjustItemRequest) (*entity.StockMovement, error) {
	if in.Delta == 0 {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.items.ApplyDelta(repository.ItemFilter{OwnerID: ownerID, ID: itemID}, in.Delta)
	if err != nil {
		return nil, err
	}
	if item == nil {
		// Not-applied: re-consultar solo para darle al caller el motivo
		// concreto (el mutador no lo distingue).
		existing, gerr := uc.items.GetByID(ownerID, itemID)
		if gerr == nil && existing != nil {
			return nil, domain.ErrInsufficientStock
		}
		return nil, domain.ErrNotFound
	}
	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		ItemID:    item.ID,
		Type:      movementTypeFor(in.Type, in.Delta),
		Delta:     in.Delta,
		Reason:    in.Reason,
		CreatedAt: time.Now(),
	}
	if err := uc.movements.Create(mov); err != nil {
		uc.rollback([]appliedLine{{ownerID: ownerID, itemID: item.ID, sku: item.SKU, delta: in.Delta}})
		return nil, err
	}
	uc.publishMovement(item, mov)
	return mov, nil
}
