package repository

import "github.com/invorya/stockledger-api/internal/domain/entity"

// StockMovementRepository puerto de persistencia del ledger de movimientos.
// Create debe llamarse solo después de que ApplyDelta confirmó el cambio de
// cantidad correspondiente; nunca de forma especulativa.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(ownerID, id string) (*entity.StockMovement, error)
	// ListByItem devuelve movimientos del item ordenados de más nuevo a más
	// viejo (precondición del proyector de saldo corrido).
	ListByItem(ownerID, itemID string, limit, offset int) ([]*entity.StockMovement, error)
	CountByItem(ownerID, itemID string) (int, error)
	// Delete borra un movimiento por id (compensación de rollback).
	Delete(id string) error
	// DeleteByItem borra todos los movimientos de un item (cascada).
	DeleteByItem(ownerID, itemID string) error
}
