package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/modus-erp/modus-api/internal/application/analytics"
	"github.com/modus-erp/modus-api/internal/application/catalog"
	"github.com/modus-erp/modus-api/internal/application/customer"
	"github.com/modus-erp/modus-api/internal/application/demand"
	"github.com/modus-erp/modus-api/internal/application/inventory"
	"github.com/modus-erp/modus-api/internal/application/offer"
	"github.com/modus-erp/modus-api/internal/domain/repository"
	"github.com/modus-erp/modus-api/internal/infrastructure/memory"
	"github.com/modus-erp/modus-api/internal/infrastructure/postgres"
	httpRouter "github.com/modus-erp/modus-api/internal/interfaces/http"
	"github.com/modus-erp/modus-api/pkg/config"
	"github.com/modus-erp/modus-api/pkg/logger"
)

// repoSet puertos de persistencia ya construidos para un driver concreto.
type repoSet struct {
	products   repository.ProductRepository
	warehouses repository.WarehouseRepository
	customers  repository.CustomerRepository
	movements  repository.StockMovementRepository
	stock      repository.StockRepository
	demands    repository.DemandRepository
	offers     repository.OfferRepository
	txRunner   inventory.TxRunner
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	storeLog := log.Component("store")

	var repos repoSet
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		store := memory.NewStore()
		repos = repoSet{
			products:   memory.NewProductRepository(store),
			warehouses: memory.NewWarehouseRepository(store),
			customers:  memory.NewCustomerRepository(store),
			movements:  memory.NewStockMovementRepository(store),
			stock:      memory.NewStockRepository(store),
			demands:    memory.NewDemandRepository(store),
			offers:     memory.NewOfferRepository(store),
			txRunner:   memory.NewTxRunner(store),
		}
		storeLog.Warn().Msg("driver de almacenamiento en memoria: los datos no sobreviven al proceso")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			storeLog.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repos = repoSet{
			products:   postgres.NewProductRepository(pool),
			warehouses: postgres.NewWarehouseRepository(pool),
			customers:  postgres.NewCustomerRepository(pool),
			movements:  postgres.NewStockMovementRepository(pool),
			stock:      postgres.NewStockRepository(pool),
			demands:    postgres.NewDemandRepository(pool),
			offers:     postgres.NewOfferRepository(pool),
			txRunner:   postgres.NewTxRunner(pool),
		}
	}

	productUC := catalog.NewProductUseCase(repos.products)
	warehouseUC := catalog.NewWarehouseUseCase(repos.warehouses)
	customerUC := customer.NewCustomerUseCase(repos.customers)
	registerMovementUC := inventory.NewRegisterMovementUseCase(repos.txRunner, repos.products, repos.warehouses)
	transferUC := inventory.NewTransferUseCase(repos.txRunner, repos.products, repos.warehouses)
	stockQueryUC := inventory.NewStockQueryUseCase(repos.stock, repos.movements, repos.products, repos.warehouses)
	demandUC := demand.NewDemandUseCase(repos.demands, repos.products)
	offerUC := offer.NewOfferUseCase(repos.offers, repos.demands, repos.customers, repos.products)
	dashboardUC := analytics.NewDashboardUseCase(
		repos.products, repos.warehouses, repos.customers,
		repos.demands, repos.offers, repos.stock, repos.movements,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./api/openapi.json",
		Path:     "docs",
		Title:    "Modus API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:        productUC,
		WarehouseUC:      warehouseUC,
		CustomerUC:       customerUC,
		RegisterMovement: registerMovementUC,
		Transfer:         transferUC,
		StockQuery:       stockQueryUC,
		DemandUC:         demandUC,
		OfferUC:          offerUC,
		DashboardUC:      dashboardUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
