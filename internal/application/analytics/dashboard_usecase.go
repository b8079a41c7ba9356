// Package analytics contiene las proyecciones read-only del dashboard.
package analytics

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/modus-erp/modus-api/internal/application/dto"
	"github.com/modus-erp/modus-api/internal/domain/entity"
	"github.com/modus-erp/modus-api/internal/domain/repository"
)

const (
	lowStockThreshold   = 10 // balance por debajo del cual un par (producto, bodega) entra en alerta
	recentActivityLimit = 10 // entradas del feed de actividad reciente
)

// DashboardUseCase construye el resumen del dashboard.
//
// Todo es derivado: nunca muta estado y es seguro de ejecutar en paralelo con
// cualquier escritura; el resultado es un snapshot eventualmente consistente.
type DashboardUseCase struct {
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	customerRepo  repository.CustomerRepository
	demandRepo    repository.DemandRepository
	offerRepo     repository.OfferRepository
	stockRepo     repository.StockRepository
	movementRepo  repository.StockMovementRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	customerRepo repository.CustomerRepository,
	demandRepo repository.DemandRepository,
	offerRepo repository.OfferRepository,
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		customerRepo:  customerRepo,
		demandRepo:    demandRepo,
		offerRepo:     offerRepo,
		stockRepo:     stockRepo,
		movementRepo:  movementRepo,
	}
}

// GetDashboard construye el DashboardResponse.
//
// Cuatro consultas en paralelo:
//  1. conteos (productos, clientes, demandas pendientes)
//  2. suma de ofertas aceptadas
//  3. balances por debajo del umbral
//  4. feed de actividad reciente
func (uc *DashboardUseCase) GetDashboard() (*dto.DashboardResponse, error) {
	type countsResult struct {
		products, customers, pending int64
		err                          error
	}
	type sumResult struct {
		total decimal.Decimal
		err   error
	}
	type lowStockResult struct {
		items []dto.LowStockItemDTO
		err   error
	}
	type activityResult struct {
		items []dto.ActivityDTO
		err   error
	}

	countsCh := make(chan countsResult, 1)
	sumCh := make(chan sumResult, 1)
	lowCh := make(chan lowStockResult, 1)
	actCh := make(chan activityResult, 1)

	go func() {
		var r countsResult
		if r.products, r.err = uc.productRepo.Count(); r.err != nil {
			countsCh <- r
			return
		}
		if r.customers, r.err = uc.customerRepo.Count(); r.err != nil {
			countsCh <- r
			return
		}
		r.pending, r.err = uc.demandRepo.CountByStatus(entity.DemandStatusPending)
		countsCh <- r
	}()
	go func() {
		total, err := uc.offerRepo.SumTotalByStatus(entity.OfferStatusAccepted)
		sumCh <- sumResult{total, err}
	}()
	go func() {
		items, err := uc.lowStockItems()
		lowCh <- lowStockResult{items, err}
	}()
	go func() {
		items, err := uc.recentActivities()
		actCh <- activityResult{items, err}
	}()

	counts := <-countsCh
	sum := <-sumCh
	low := <-lowCh
	act := <-actCh

	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: conteos: %w", counts.err)
	}
	if sum.err != nil {
		return nil, fmt.Errorf("dashboard: ofertas aceptadas: %w", sum.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}
	if act.err != nil {
		return nil, fmt.Errorf("dashboard: actividad reciente: %w", act.err)
	}

	return &dto.DashboardResponse{
		TotalProducts:           counts.products,
		TotalCustomers:          counts.customers,
		PendingDemands:          counts.pending,
		TotalAcceptedOfferValue: sum.total,
		LowStockItems:           low.items,
		RecentActivities:        act.items,
	}, nil
}

// lowStockItems devuelve todos los pares (producto, bodega) con balance bajo
// el umbral, en todas las bodegas.
func (uc *DashboardUseCase) lowStockItems() ([]dto.LowStockItemDTO, error) {
	stocks, err := uc.stockRepo.ListBelow(decimal.NewFromInt(lowStockThreshold))
	if err != nil {
		return nil, err
	}
	items := make([]dto.LowStockItemDTO, 0, len(stocks))
	for _, s := range stocks {
		product, err := uc.productRepo.GetByID(s.ProductID)
		if err != nil {
			return nil, err
		}
		warehouse, err := uc.warehouseRepo.GetByID(s.WarehouseID)
		if err != nil {
			return nil, err
		}
		if product == nil || warehouse == nil {
			continue
		}
		items = append(items, dto.LowStockItemDTO{
			ProductID:     s.ProductID,
			ProductName:   product.Name,
			SKU:           product.SKU,
			WarehouseID:   s.WarehouseID,
			WarehouseName: warehouse.Name,
			Quantity:      s.Quantity,
		})
	}
	return items, nil
}

// recentActivities mezcla los últimos movimientos del ledger con los últimos
// cambios de estado de demandas y ofertas, del más nuevo al más viejo.
func (uc *DashboardUseCase) recentActivities() ([]dto.ActivityDTO, error) {
	movements, err := uc.movementRepo.ListRecent(recentActivityLimit)
	if err != nil {
		return nil, err
	}
	demands, err := uc.demandRepo.ListRecent(recentActivityLimit)
	if err != nil {
		return nil, err
	}
	offers, err := uc.offerRepo.ListRecent(recentActivityLimit)
	if err != nil {
		return nil, err
	}

	feed := make([]dto.ActivityDTO, 0, len(movements)+len(demands)+len(offers))
	for _, m := range movements {
		feed = append(feed, dto.ActivityDTO{
			Description: fmt.Sprintf("Movimiento %s: producto %s, bodega %s, cantidad %s", m.Type, m.ProductID, m.WarehouseID, m.Quantity),
			Timestamp:   m.CreatedAt,
		})
	}
	for _, d := range demands {
		feed = append(feed, dto.ActivityDTO{
			Description: fmt.Sprintf("Demanda %q en estado %s", d.Title, d.Status),
			Timestamp:   d.UpdatedAt,
		})
	}
	for _, o := range offers {
		feed = append(feed, dto.ActivityDTO{
			Description: fmt.Sprintf("Oferta %s en estado %s (total %s %s)", o.ID, o.Status, o.TotalAmount, o.Currency),
			Timestamp:   o.UpdatedAt,
		})
	}
	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Timestamp.After(feed[j].Timestamp)
	})
	if len(feed) > recentActivityLimit {
		feed = feed[:recentActivityLimit]
	}
	return feed, nil
}
