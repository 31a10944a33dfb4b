package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/invorya/stockledger-api/internal/application/dto"
	"github.com/invorya/stockledger-api/internal/domain"
	"github.com/invorya/stockledger-api/internal/domain/entity"
	"github.com/invorya/stockledger-api/internal/domain/repository"
)

// appliedLine es una línea ya confirmada de un lote, con lo necesario para
// compensarla: el delta tal como se aplicó y el movimiento creado.
// MovementID queda vacío si la cantidad cambió pero el registro del
// movimiento falló (en ese caso solo hay delta que revertir).
type appliedLine struct {
	ownerID    string
	itemID     string
	sku        string
	delta      int64
	movementID string
}

// pendingEvent evento retenido hasta que el lote completo quede confirmado,
// para no difundir movimientos que luego se compensan.
type pendingEvent struct {
	item *entity.Item
	mov  *entity.StockMovement
}

// RecordSale registra una venta por lote. Las líneas se procesan una a una en
// el orden recibido (una línea posterior sobre el mismo SKU ve el efecto de la
// anterior). En la primera línea que no aplica — SKU inexistente para el dueño
// o stock insuficiente — se compensa todo lo aplicado en orden inverso y se
// devuelve un único error identificando el SKU ofensor.
func (uc *InventoryUseCase) RecordSale(ctx context.Context, ownerID string, in dto.RecordSaleRequest) error {
	if len(in.Lines) == 0 {
		return domain.ErrInvalidInput
	}
	for _, l := range in.Lines {
		if l.SKU == "" || l.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	}

	var applied []appliedLine
	var events []pendingEvent
	for _, line := range in.Lines {
		delta := -line.Quantity
		item, err := uc.items.ApplyDelta(repository.ItemFilter{OwnerID: ownerID, SKU: line.SKU}, delta)
		if err != nil {
			uc.rollback(applied)
			return fmt.Errorf("aplicar delta sku %s: %w", line.SKU, err)
		}
		if item == nil {
			// Not-applied: no distinguimos aquí entre "no existe" y "sin
			// stock" porque la acción correctiva es la misma (abortar).
			uc.rollback(applied)
			return &domain.LineError{SKU: line.SKU, Reason: domain.ErrInsufficientStock}
		}
		mov := &entity.StockMovement{
			ID:           uuid.New().String(),
			OwnerID:      ownerID,
			ItemID:       item.ID,
			Type:         entity.MovementTypeSale,
			Delta:        delta,
			CustomerName: in.CustomerName,
			CreatedAt:    time.Now(),
		}
		if err := uc.movements.Create(mov); err != nil {
			// La cantidad ya cambió sin movimiento: esta línea también se
			// compensa, solo que sin movimiento que borrar.
			applied = append(applied, appliedLine{ownerID: ownerID, itemID: item.ID, sku: item.SKU, delta: delta})
			uc.rollback(applied)
			return fmt.Errorf("registrar movimiento sku %s: %w", line.SKU, err)
		}
		applied = append(applied, appliedLine{ownerID: ownerID, itemID: item.ID, sku: item.SKU, delta: delta, movementID: mov.ID})
		events = append(events, pendingEvent{item: item, mov: mov})
	}

	for _, ev := range events {
		uc.publishMovement(ev.item, ev.mov)
	}
	return nil
}

// RecordReturn registra una devolución por lote. Los deltas son positivos,
// así que no hay condición de suficiencia: una línea solo falla si el SKU no
// existe para el dueño. La política de compensación es la misma que en la
// venta.
func (uc *InventoryUseCase) RecordReturn(ctx context.Context, ownerID string, in dto.RecordReturnRequest) error {
	if len(in.Lines) == 0 {
		return domain.ErrInvalidInput
	}
	for _, l := range in.Lines {
		if l.SKU == "" || l.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	}

	var applied []appliedLine
	var events []pendingEvent
	for _, line := range in.Lines {
		item, err := uc.items.ApplyDelta(repository.ItemFilter{OwnerID: ownerID, SKU: line.SKU}, line.Quantity)
		if err != nil {
			uc.rollback(applied)
			return fmt.Errorf("aplicar delta sku %s: %w", line.SKU, err)
		}
		if item == nil {
			uc.rollback(applied)
			return &domain.LineError{SKU: line.SKU, Reason: domain.ErrNotFound}
		}
		mov := &entity.StockMovement{
			ID:        uuid.New().String(),
			OwnerID:   ownerID,
			ItemID:    item.ID,
			Type:      entity.MovementTypeReturn,
			Delta:     line.Quantity,
			Reason:    line.Reason,
			CreatedAt: time.Now(),
		}
		if err := uc.movements.Create(mov); err != nil {
			applied = append(applied, appliedLine{ownerID: ownerID, itemID: item.ID, sku: item.SKU, delta: line.Quantity})
			uc.rollback(applied)
			return fmt.Errorf("registrar movimiento sku %s: %w", line.SKU, err)
		}
		applied = append(applied, appliedLine{ownerID: ownerID, itemID: item.ID, sku: item.SKU, delta: line.Quantity, movementID: mov.ID})
		events = append(events, pendingEvent{item: item, mov: mov})
	}

	for _, ev := range events {
		uc.publishMovement(ev.item, ev.mov)
	}
	return nil
}

// rollback compensa las líneas aplicadas en orden inverso de aplicación:
// vuelve a aplicar el delta negado (relativo, nunca un set absoluto, así
// sigue siendo correcto aunque otro request haya tocado el item en el medio)
// y borra el movimiento creado. Best-effort: cada fallo se loguea y se sigue
// con la anterior; nunca se propaga ni se reintenta.
func (uc *InventoryUseCase) rollback(applied []appliedLine) {
	for i := len(applied) - 1; i >= 0; i-- {
		a := applied[i]
		item, err := uc.items.ApplyDelta(repository.ItemFilter{OwnerID: a.ownerID, ID: a.itemID}, -a.delta)
		switch {
		case err != nil:
			uc.log.Error().Err(err).
				Str("item_id", a.itemID).Str("sku", a.sku).Int64("delta", -a.delta).
				Msg("compensación de cantidad fallida; posible inconsistencia transitoria")
		case item == nil:
			uc.log.Warn().
				Str("item_id", a.itemID).Str("sku", a.sku).
				Msg("item inexistente al compensar; se omite")
		}
		if a.movementID == "" {
			continue
		}
		if err := uc.movements.Delete(a.movementID); err != nil {
			uc.log.Error().Err(err).
				Str("movement_id", a.movementID).Str("sku", a.sku).
				Msg("compensación de movimiento fallida; posible inconsistencia transitoria")
		}
	}
}
