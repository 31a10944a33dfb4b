package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/invorya/stockledger-api/internal/domain/entity"
	"github.com/invorya/stockledger-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, owner_id, item_id, type, delta, customer_name, reason, created_at`

// StockMovementRepo implementación del puerto StockMovementRepository sobre
// PostgreSQL. Los movimientos son append-only: no hay Update.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador de persistencia del ledger.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var customer, reason *string
	err := row.Scan(&m.ID, &m.OwnerID, &m.ItemID, &m.Type, &m.Delta, &customer, &reason, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	if customer != nil {
		m.CustomerName = *customer
	}
	if reason != nil {
		m.Reason = *reason
	}
	return &m, nil
}

// Create persiste un movimiento ya confirmado por el mutador de cantidad.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, owner_id, item_id, type, delta, customer_name, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	customer := (*string)(nil)
	if movement.CustomerName != "" {
		customer = &movement.CustomerName
	}
	reason := (*string)(nil)
	if movement.Reason != "" {
		reason = &movement.Reason
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.OwnerID, movement.ItemID, movement.Type, movement.Delta,
		customer, reason, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento del dueño por ID.
func (r *StockMovementRepo) GetByID(ownerID, id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE owner_id = $1 AND id = $2`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, ownerID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// ListByItem lista los movimientos de un item de más nuevo a más viejo.
// El desempate por id mantiene un orden total estable para la paginación.
func (r *StockMovementRepo) ListByItem(ownerID, itemID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE owner_id = $1 AND item_id = $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, ownerID, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// CountByItem cuenta los movimientos de un item.
func (r *StockMovementRepo) CountByItem(ownerID, itemID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM stock_movements WHERE owner_id = $1 AND item_id = $2`,
		ownerID, itemID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

// Delete borra un movimiento por id (compensación de rollback).
func (r *StockMovementRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	return nil
}

// DeleteByItem borra todos los movimientos de un item (cascada del borrado
// del item).
func (r *StockMovementRepo) DeleteByItem(ownerID, itemID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM stock_movements WHERE owner_id = $1 AND item_id = $2`, ownerID, itemID)
	if err != nil {
		return fmt.Errorf("delete movements by item: %w", err)
	}
	return nil
}
