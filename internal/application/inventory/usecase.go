package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/invorya/stockledger-api/internal/application/dto"
	"github.com/invorya/stockledger-api/internal/domain"
	"github.com/invorya/stockledger-api/internal/domain/entity"
	"github.com/invorya/stockledger-api/internal/domain/repository"
	"github.com/invorya/stockledger-api/pkg/logger"
)

// InventoryUseCase implementa el núcleo del ledger de inventario: altas y
// bajas de items, ventas y devoluciones por lote con compensación best-effort,
// ajustes, reversas y el historial con saldo corrido.
//
// El store no ofrece transacciones multi-documento: la única primitiva de
// consistencia es el update condicional atómico de una fila (ApplyDelta).
// Cada cambio de cantidad se confirma primero y recién entonces se registra
// su movimiento; un fallo parcial dispara la compensación en orden inverso.
type InventoryUseCase struct {
	items     repository.ItemRepository
	movements repository.StockMovementRepository
	notifier  Notifier
	log       *logger.Logger
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(
	items repository.ItemRepository,
	movements repository.StockMovementRepository,
	notifier Notifier,
	log *logger.Logger,
) *InventoryUseCase {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &InventoryUseCase{items: items, movements: movements, notifier: notifier, log: log}
}

// CreateItem da de alta un item y, si la cantidad inicial es positiva,
// registra su movimiento "initial" con delta = cantidad.
func (uc *InventoryUseCase) CreateItem(ctx context.Context, ownerID string, in dto.CreateItemRequest) (*entity.Item, error) {
	if in.SKU == "" || in.Name == "" || in.Quantity < 0 || in.LowStockThreshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	item := &entity.Item{
		ID:                uuid.New().String(),
		OwnerID:           ownerID,
		SKU:               in.SKU,
		Name:              in.Name,
		Quantity:          in.Quantity,
		LowStockThreshold: in.LowStockThreshold,
		SupplierName:      in.SupplierName,
		Price:             in.Price,
		Status:            entity.ItemStatusActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.items.Create(item); err != nil {
		return nil, err
	}
	// Un movimiento "initial" siempre tiene delta positivo: con cantidad 0
	// no hay nada que asentar en el ledger.
	if in.Quantity > 0 {
		mov := &entity.StockMovement{
			ID:        uuid.New().String(),
			OwnerID:   ownerID,
			ItemID:    item.ID,
			Type:      entity.MovementTypeInitial,
			Delta:     in.Quantity,
			CreatedAt: now,
		}
		if err := uc.movements.Create(mov); err != nil {
			return nil, err
		}
		uc.publishMovement(item, mov)
	}
	return item, nil
}

// GetItem devuelve un item del dueño.
func (uc *InventoryUseCase) GetItem(ctx context.Context, ownerID, itemID string) (*entity.Item, error) {
	item, err := uc.items.GetByID(ownerID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// ListItems devuelve una página de items del dueño y el total.
func (uc *InventoryUseCase) ListItems(ctx context.Context, ownerID string, page dto.PageRequest) ([]*entity.Item, int, error) {
	page.DefaultPage()
	items, err := uc.items.ListByOwner(ownerID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.items.CountByOwner(ownerID)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// UpdateItem edita campos del item (nombre, umbral, proveedor, precio,
// estado). La cantidad nunca pasa por aquí.
func (uc *InventoryUseCase) UpdateItem(ctx context.Context, ownerID, itemID string, in dto.UpdateItemRequest) (*entity.Item, error) {
	item, err := uc.items.GetByID(ownerID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Name = *in.Name
	}
	if in.LowStockThreshold != nil {
		if *in.LowStockThreshold < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.LowStockThreshold = *in.LowStockThreshold
	}
	if in.SupplierName != nil {
		item.SupplierName = *in.SupplierName
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	if in.Status != nil {
		item.Status = *in.Status
	}
	item.UpdatedAt = time.Now()
	if err := uc.items.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem borra el item y en cascada todos sus movimientos. El borrado es
// delete-then-delete, no atómico entre ambas colecciones: primero cae el item
// y luego su historial. Un movimiento huérfano por un fallo intermedio es
// basura inocua, no un problema de consistencia.
func (uc *InventoryUseCase) DeleteItem(ctx context.Context, ownerID, itemID string) error {
	item, err := uc.items.GetByID(ownerID, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if err := uc.items.Delete(ownerID, itemID); err != nil {
		return err
	}
	return uc.movements.DeleteByItem(ownerID, itemID)
}

// publishMovement difunde el movimiento ya confirmado y, si el item quedó en
// o bajo su umbral por un delta negativo, la alerta de bajo stock.
func (uc *InventoryUseCase) publishMovement(item *entity.Item, mov *entity.StockMovement) {
	uc.notifier.Publish(item.OwnerID, StockEvent{
		Event:    EventStockMovement,
		ItemID:   item.ID,
		SKU:      item.SKU,
		Type:     mov.Type,
		Delta:    mov.Delta,
		Quantity: item.Quantity,
	})
	if mov.Delta < 0 && item.IsLowStock() {
		uc.notifier.Publish(item.OwnerID, StockEvent{
			Event:    EventStockLow,
			ItemID:   item.ID,
			SKU:      item.SKU,
			Quantity: item.Quantity,
		})
	}
}
