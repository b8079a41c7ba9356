package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/modus-erp/modus-api/internal/application/analytics"
	"github.com/modus-erp/modus-api/internal/application/catalog"
	"github.com/modus-erp/modus-api/internal/application/customer"
	"github.com/modus-erp/modus-api/internal/application/demand"
	"github.com/modus-erp/modus-api/internal/application/inventory"
	"github.com/modus-erp/modus-api/internal/application/offer"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC        *catalog.ProductUseCase
	WarehouseUC      *catalog.WarehouseUseCase
	CustomerUC       *customer.CustomerUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	Transfer         *inventory.TransferUseCase
	StockQuery       *inventory.StockQueryUseCase
	DemandUC         *demand.DemandUseCase
	OfferUC          *offer.OfferUseCase
	DashboardUC      *analytics.DashboardUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	// Catálogo
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id/active", warehouseHandler.SetActive)

	// Terceros
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)

	// Motor de stock
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.RegisterMovement, deps.Transfer, deps.StockQuery)
	stock.Post("/movements", stockHandler.RegisterMovement)
	stock.Post("/transfers", stockHandler.Transfer)
	stock.Get("/balance/:product_id/:warehouse_id", stockHandler.GetBalance)
	stock.Get("/history/:product_id", stockHandler.GetHistory)
	stock.Get("/overview", stockHandler.GetGlobalOverview)
	stock.Get("/overview/:warehouse_id", stockHandler.GetOverview)

	// Workflow de demandas
	demands := api.Group("/demands")
	demandHandler := NewDemandHandler(deps.DemandUC)
	demands.Post("/", demandHandler.Create)
	demands.Get("/", demandHandler.List)
	demands.Get("/:id", demandHandler.GetByID)
	demands.Post("/:id/submit", demandHandler.Submit)
	demands.Post("/:id/approve", demandHandler.Approve)
	demands.Post("/:id/reject", demandHandler.Reject)

	// Workflow de ofertas
	offers := api.Group("/offers")
	offerHandler := NewOfferHandler(deps.OfferUC)
	offers.Post("/", offerHandler.Create)
	offers.Post("/from-demand", offerHandler.CreateFromDemand)
	offers.Get("/", offerHandler.List)
	offers.Get("/:id", offerHandler.GetByID)
	offers.Put("/:id/items/:item_id", offerHandler.UpdateItem)
	offers.Post("/:id/send", offerHandler.Send)
	offers.Post("/:id/accept", offerHandler.Accept)
	offers.Post("/:id/reject", offerHandler.Reject)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", dashboardHandler.GetDashboard)
}
