package inventory

import (
	"errors"
	"sync"

	"github.com/invorya/stockledger-api/internal/domain/entity"
	"github.com/invorya/stockledger-api/internal/domain/repository"
	"github.com/invorya/stockledger-api/pkg/logger"
)

// fakeItemRepo repositorio de items en memoria con la misma semántica
// condicional de ApplyDelta que el repositorio real.
type fakeItemRepo struct {
	mu    sync.Mutex
	items map[string]*entity.Item // por ID
}

var _ repository.ItemRepository = (*fakeItemRepo)(nil)

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[string]*entity.Item)}
}

func copyItem(i *entity.Item) *entity.Item {
	c := *i
	return &c
}

func (r *fakeItemRepo) Create(item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = copyItem(item)
	return nil
}

func (r *fakeItemRepo) GetByID(ownerID, id string) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i, ok := r.items[id]; ok && i.OwnerID == ownerID {
		return copyItem(i), nil
	}
	return nil, nil
}

func (r *fakeItemRepo) GetBySKU(ownerID, sku string) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.items {
		if i.OwnerID == ownerID && i.SKU == sku {
			return copyItem(i), nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Item
	for _, i := range r.items {
		if i.OwnerID == ownerID {
			out = append(out, copyItem(i))
		}
	}
	return out, nil
}

func (r *fakeItemRepo) CountByOwner(ownerID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, i := range r.items {
		if i.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (r *fakeItemRepo) Update(item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[item.ID]
	if !ok || existing.OwnerID != item.OwnerID {
		return errors.New("item inexistente")
	}
	// La cantidad no pasa por Update, solo por ApplyDelta.
	q := existing.Quantity
	c := copyItem(item)
	c.Quantity = q
	r.items[item.ID] = c
	return nil
}

func (r *fakeItemRepo) Delete(ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i, ok := r.items[id]; ok && i.OwnerID == ownerID {
		delete(r.items, id)
	}
	return nil
}

func (r *fakeItemRepo) ApplyDelta(f repository.ItemFilter, delta int64) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.items {
		if i.OwnerID != f.OwnerID {
			continue
		}
		if f.ID != "" && i.ID != f.ID {
			continue
		}
		if f.ID == "" && i.SKU != f.SKU {
			continue
		}
		if delta < 0 && i.Quantity+delta < 0 {
			return nil, nil
		}
		i.Quantity += delta
		return copyItem(i), nil
	}
	return nil, nil
}

// fakeMovementRepo ledger en memoria, en orden de inserción. failCreateAt
// permite inyectar un fallo en el n-ésimo Create (0-based); -1 nunca falla.
type fakeMovementRepo struct {
	mu           sync.Mutex
	movs         []*entity.StockMovement
	creates      int
	failCreateAt int
}

var _ repository.StockMovementRepository = (*fakeMovementRepo)(nil)

func newFakeMovementRepo() *fakeMovementRepo {
	return &fakeMovementRepo{failCreateAt: -1}
}

func copyMovement(m *entity.StockMovement) *entity.StockMovement {
	c := *m
	return &c
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreateAt >= 0 && r.creates == r.failCreateAt {
		r.creates++
		return errors.New("create fallido")
	}
	r.creates++
	r.movs = append(r.movs, copyMovement(m))
	return nil
}

func (r *fakeMovementRepo) GetByID(ownerID, id string) (*entity.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.movs {
		if m.ID == id && m.OwnerID == ownerID {
			return copyMovement(m), nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) ListByItem(ownerID, itemID string, limit, offset int) ([]*entity.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Newest-first: se insertan en orden cronológico, se devuelven al revés.
	var all []*entity.StockMovement
	for i := len(r.movs) - 1; i >= 0; i-- {
		m := r.movs[i]
		if m.OwnerID == ownerID && m.ItemID == itemID {
			all = append(all, copyMovement(m))
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeMovementRepo) CountByItem(ownerID, itemID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.movs {
		if m.OwnerID == ownerID && m.ItemID == itemID {
			n++
		}
	}
	return n, nil
}

func (r *fakeMovementRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.movs {
		if m.ID == id {
			r.movs = append(r.movs[:i], r.movs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeMovementRepo) DeleteByItem(ownerID, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []*entity.StockMovement
	for _, m := range r.movs {
		if m.OwnerID == ownerID && m.ItemID == itemID {
			continue
		}
		kept = append(kept, m)
	}
	r.movs = kept
	return nil
}

func (r *fakeMovementRepo) byItem(ownerID, itemID string) []*entity.StockMovement {
	out, _ := r.ListByItem(ownerID, itemID, 0, 0)
	return out
}

// recordingNotifier captura los eventos publicados, en orden.
type recordingNotifier struct {
	mu     sync.Mutex
	events []StockEvent
}

func (n *recordingNotifier) Publish(ownerID string, event StockEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) all() []StockEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]StockEvent(nil), n.events...)
}

func newTestUseCase() (*InventoryUseCase, *fakeItemRepo, *fakeMovementRepo, *recordingNotifier) {
	items := newFakeItemRepo()
	movs := newFakeMovementRepo()
	notifier := &recordingNotifier{}
	uc := NewInventoryUseCase(items, movs, notifier, logger.Nop())
	return uc, items, movs, notifier
}

func seedItem(items *fakeItemRepo, ownerID, id, sku string, quantity, threshold int64) *entity.Item {
	item := &entity.Item{
		ID:                id,
		OwnerID:           ownerID,
		SKU:               sku,
		Name:              "Item " + sku,
		Quantity:          quantity,
		LowStockThreshold: threshold,
		Status:            entity.ItemStatusActive,
	}
	_ = items.Create(item)
	return item
}
