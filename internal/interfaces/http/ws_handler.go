package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/stockledger-api/internal/application/dto"
	"github.com/invorya/stockledger-api/internal/interfaces/ws"
	"github.com/invorya/stockledger-api/pkg/jwt"
)

// WSUpgrade exige que la petición sea un upgrade WebSocket y autentica con el
// token JWT en query string (los navegadores no mandan headers en el upgrade).
func WSUpgrade(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		userID, _, err := jwt.Parse(jwtSecret, c.Query("token"))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		return c.Next()
	}
}

// StockEvents suscribe la conexión al stream de eventos de stock del dueño.
// La conexión solo recibe; cualquier error de lectura la da de baja.
func StockEvents(hub *ws.Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		ownerID, _ := conn.Locals(LocalUserID).(string)
		hub.Register(conn, ownerID)
		defer hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
