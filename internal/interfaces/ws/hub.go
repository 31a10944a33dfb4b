package ws

import (
	"encoding/json"

	"github.com/gofiber/contrib/websocket"

	"github.com/invorya/stockledger-api/internal/application/inventory"
	"github.com/invorya/stockledger-api/pkg/logger"
)

type registration struct {
	conn    *websocket.Conn
	ownerID string
}

type message struct {
	ownerID string
	payload []byte
}

// Hub difunde eventos de stock a los clientes WebSocket conectados,
// particionados por dueño: un cliente solo recibe eventos de su propio
// inventario. Implementa inventory.Notifier.
type Hub struct {
	clients    map[string]map[*websocket.Conn]bool
	owners     map[*websocket.Conn]string
	register   chan registration
	unregister chan *websocket.Conn
	broadcast  chan message
	log        *logger.Logger
}

// NewHub construye el hub. Llamar Run en una goroutine antes de usarlo.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*websocket.Conn]bool),
		owners:     make(map[*websocket.Conn]string),
		register:   make(chan registration),
		unregister: make(chan *websocket.Conn),
		// Con buffer: Publish nunca debe bloquear el camino de la petición.
		broadcast: make(chan message, 64),
		log:       log,
	}
}

// Run atiende registros, bajas y difusión. Bucle único: todo el estado del
// hub se toca solo desde esta goroutine.
func (h *Hub) Run() {
	for {
		select {
		case reg := <-h.register:
			conns, ok := h.clients[reg.ownerID]
			if !ok {
				conns = make(map[*websocket.Conn]bool)
				h.clients[reg.ownerID] = conns
			}
			conns[reg.conn] = true
			h.owners[reg.conn] = reg.ownerID
			h.log.Debug().Str("owner_id", reg.ownerID).Msg("cliente WS conectado")

		case conn := <-h.unregister:
			h.drop(conn)

		case msg := <-h.broadcast:
			for conn := range h.clients[msg.ownerID] {
				if err := conn.WriteMessage(websocket.TextMessage, msg.payload); err != nil {
					h.drop(conn)
				}
			}
		}
	}
}

// Register suscribe una conexión al inventario de un dueño.
func (h *Hub) Register(conn *websocket.Conn, ownerID string) {
	h.register <- registration{conn: conn, ownerID: ownerID}
}

// Unregister da de baja una conexión.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.unregister <- conn
}

// Publish difunde un evento a los clientes del dueño. Best-effort: si el hub
// está saturado el evento se descarta con un log, nunca se bloquea.
func (h *Hub) Publish(ownerID string, event inventory.StockEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.log.Error().Err(err).Msg("serializar evento de stock")
		return
	}
	select {
	case h.broadcast <- message{ownerID: ownerID, payload: payload}:
	default:
		h.log.Warn().Str("owner_id", ownerID).Str("event", event.Event).Msg("hub saturado, evento descartado")
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	ownerID, ok := h.owners[conn]
	if !ok {
		return
	}
	delete(h.owners, conn)
	if conns, ok := h.clients[ownerID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.clients, ownerID)
		}
	}
	conn.Close()
}
