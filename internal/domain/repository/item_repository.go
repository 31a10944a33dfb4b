package repository

import "github.com/invorya/stockledger-api/internal/domain/entity"

// ItemFilter identifica un item de un dueño por SKU o por ID (exactamente uno
// de los dos). OwnerID es obligatorio: ningún acceso cruza dueños.
type ItemFilter struct {
	OwnerID string
	SKU     string
	ID      string
}

// ItemRepository puerto de persistencia de items.
//
// ApplyDelta es la única autoridad sobre Item.Quantity: un único update
// condicional atómico que suma delta solo si el filtro casa y, para deltas
// negativos, solo si quantity + delta >= 0. Devuelve el item ya actualizado,
// o (nil, nil) si ningún documento casó — item inexistente para ese dueño o
// stock insuficiente. Ese "not-applied" es un resultado normal, no un error;
// el caller que necesite distinguir ambos casos debe re-consultar.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(ownerID, id string) (*entity.Item, error)
	GetBySKU(ownerID, sku string) (*entity.Item, error)
	ListByOwner(ownerID string, limit, offset int) ([]*entity.Item, error)
	CountByOwner(ownerID string) (int, error)
	Update(item *entity.Item) error
	Delete(ownerID, id string) error
	ApplyDelta(f ItemFilter, delta int64) (*entity.Item, error)
}
