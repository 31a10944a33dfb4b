package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/stockledger-api/internal/application/analytics"
	"github.com/invorya/stockledger-api/internal/application/auth"
	"github.com/invorya/stockledger-api/internal/application/inventory"
	"github.com/invorya/stockledger-api/internal/interfaces/ws"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	InventoryUC *inventory.InventoryUseCase
	DashboardUC *analytics.DashboardUseCase
	Hub         *ws.Hub
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Items (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.InventoryUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)

	// Ledger (protegido)
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	items.Post("/:id/adjust", inventoryHandler.Adjust)
	items.Get("/:id/movements", inventoryHandler.ListMovements)
	protected.Post("/sales", inventoryHandler.RecordSale)
	protected.Post("/returns", inventoryHandler.RecordReturn)
	protected.Post("/movements/:id/reverse", inventoryHandler.Reverse)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Summary)

	// Eventos de stock en vivo (token por query string)
	if deps.Hub != nil {
		app.Get("/ws/stock", WSUpgrade(deps.JWTSecret), StockEvents(deps.Hub))
	}
}
