package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-estanterias/internal/application/warehouse"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Store  *warehouse.Store
	Logger zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	warehouseHandler := NewWarehouseHandler(deps.Store, deps.Logger)
	api.Get("/warehouse", warehouseHandler.Snapshot)
	api.Get("/search", warehouseHandler.Search)
	api.Get("/transactions", warehouseHandler.Transactions)

	// Estanterías
	shelves := api.Group("/shelf")
	shelfHandler := NewShelfHandler(deps.Store, deps.Logger)
	shelves.Get("/:position", shelfHandler.Get)
	shelves.Post("/:position/occupy", shelfHandler.Occupy)
	shelves.Post("/:position/vacate", shelfHandler.Vacate)

	// Productos
	productHandler := NewProductHandler(deps.Store, deps.Logger)
	api.Get("/products", productHandler.List)
	api.Get("/product/:id", productHandler.GetByID)
	api.Put("/product/:id", productHandler.Update)
}
