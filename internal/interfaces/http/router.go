package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/salcar420/InnovaLogix/internal/infrastructure/ws"
)

// RouterDeps handlers que monta el router.
type RouterDeps struct {
	Products  *ProductHandler
	Sales     *SaleHandler
	Purchases *PurchaseHandler
	Inventory *InventoryHandler
	Hub       *ws.Hub
}

// SetupRoutes registra todas las rutas de la API y el canal websocket.
func SetupRoutes(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	products := api.Group("/products")
	products.Get("/", deps.Products.List)
	products.Post("/", deps.Products.Create)
	products.Get("/low-stock", deps.Products.LowStock)
	products.Get("/:id", deps.Products.GetByID)
	products.Put("/:id", deps.Products.Update)
	products.Delete("/:id", deps.Products.Delete)

	sales := api.Group("/sales")
	sales.Get("/", deps.Sales.List)
	sales.Post("/", deps.Sales.Create)

	purchases := api.Group("/purchases")
	purchases.Get("/", deps.Purchases.List)
	purchases.Post("/", deps.Purchases.Create)
	purchases.Put("/:id/status", deps.Purchases.UpdateStatus)

	inv := api.Group("/inventory")
	inv.Get("/alerts", deps.Inventory.Alerts)
	inv.Get("/stock", deps.Inventory.StockSnapshot)
	inv.Get("/stock/:id", deps.Inventory.Stock)
	inv.Get("/kardex/:id", deps.Inventory.Kardex)
	inv.Post("/adjustments", deps.Inventory.Adjust)

	// Canal de notificaciones de stock. Solo acepta peticiones de upgrade.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(deps.Hub.Handle))
}
