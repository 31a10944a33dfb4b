package inventory

// Eventos de stock difundidos a los clientes conectados.
const (
	EventStockMovement = "stock.movement"
	EventStockLow      = "stock.low"
)

// StockEvent evento de stock para el hub WebSocket del dueño.
type StockEvent struct {
	Event    string `json:"event"`
	ItemID   string `json:"item_id"`
	SKU      string `json:"sku"`
	Type     string `json:"type,omitempty"`
	Delta    int64  `json:"delta,omitempty"`
	Quantity int64  `json:"quantity"`
}

// Notifier puerto de difusión de eventos. Best-effort: Publish no puede
// bloquear ni fallar el camino de la petición.
type Notifier interface {
	Publish(ownerID string, event StockEvent)
}

// NopNotifier descarta todos los eventos (tests, arranque sin hub).
type NopNotifier struct{}

// Publish no hace nada.
func (NopNotifier) Publish(string, StockEvent) {}
