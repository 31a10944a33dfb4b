package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/invorya/stockledger-api/internal/domain"
	"github.com/invorya/stockledger-api/internal/domain/entity"
	"github.com/invorya/stockledger-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, owner_id, sku, name, quantity, low_stock_threshold, supplier_name, price, status, created_at, updated_at`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para items.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	var supplier *string
	err := row.Scan(
		&it.ID, &it.OwnerID, &it.SKU, &it.Name, &it.Quantity, &it.LowStockThreshold,
		&supplier, &it.Price, &it.Status, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if supplier != nil {
		it.SupplierName = *supplier
	}
	return &it, nil
}

// Create persiste un item nuevo. Devuelve ErrDuplicate si el SKU ya existe
// para ese dueño.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (id, owner_id, sku, name, quantity, low_stock_threshold, supplier_name, price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	supplier := (*string)(nil)
	if item.SupplierName != "" {
		supplier = &item.SupplierName
	}
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OwnerID, item.SKU, item.Name, item.Quantity, item.LowStockThreshold,
		supplier, item.Price, item.Status, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un item del dueño por ID.
func (r *ItemRepo) GetByID(ownerID, id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE owner_id = $1 AND id = $2`
	it, err := scanItem(r.q.QueryRow(context.Background(), query, ownerID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// GetBySKU obtiene un item del dueño por SKU.
func (r *ItemRepo) GetBySKU(ownerID, sku string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE owner_id = $1 AND sku = $2`
	it, err := scanItem(r.q.QueryRow(context.Background(), query, ownerID, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by sku: %w", err)
	}
	return it, nil
}

// ListByOwner lista los items del dueño ordenados por nombre.
func (r *ItemRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE owner_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
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

// CountByOwner cuenta los items del dueño.
func (r *ItemRepo) CountByOwner(ownerID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM items WHERE owner_id = $1`, ownerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

// Update persiste los campos editables del item. La cantidad no pasa por
// aquí: solo cambia vía ApplyDelta.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items
		SET name = $1, low_stock_threshold = $2, supplier_name = $3, price = $4, status = $5, updated_at = $6
		WHERE owner_id = $7 AND id = $8`
	supplier := (*string)(nil)
	if item.SupplierName != "" {
		supplier = &item.SupplierName
	}
	tag, err := r.q.Exec(context.Background(), query,
		item.Name, item.LowStockThreshold, supplier, item.Price, item.Status, item.UpdatedAt,
		item.OwnerID, item.ID,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra el item del dueño.
func (r *ItemRepo) Delete(ownerID, id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ApplyDelta ejecuta el update condicional atómico sobre la cantidad: una
// sola sentencia que filtra por dueño + sku/id, exige suficiencia para deltas
// negativos y aplica el delta, todo en el mismo paso atómico por fila. Sin
// fila que case devuelve (nil, nil): not-applied. No hay read-then-write en
// ninguna parte de este camino.
func (r *ItemRepo) ApplyDelta(f repository.ItemFilter, delta int64) (*entity.Item, error) {
	if f.OwnerID == "" || (f.ID == "" && f.SKU == "") {
		return nil, domain.ErrInvalidInput
	}
	keyCol, keyVal := "sku", f.SKU
	if f.ID != "" {
		keyCol, keyVal = "id", f.ID
	}
	query := `
		UPDATE items
		SET quantity = quantity + $1, updated_at = now()
		WHERE owner_id = $2 AND ` + keyCol + ` = $3 AND ($1 >= 0 OR quantity + $1 >= 0)
		RETURNING ` + itemColumns
	it, err := scanItem(r.q.QueryRow(context.Background(), query, delta, f.OwnerID, keyVal))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // not-applied: item inexistente o stock insuficiente
		}
		return nil, fmt.Errorf("apply delta: %w", err)
	}
	return it, nil
}
