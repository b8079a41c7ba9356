package inventory

import (
	"iter"

	"github.com/shopspring/decimal"

	"github.com/modus-erp/modus-api/internal/application/dto"
	"github.com/modus-erp/modus-api/internal/domain"
	"github.com/modus-erp/modus-api/internal/domain/entity"
	"github.com/modus-erp/modus-api/internal/domain/repository"
)

// StockQueryUseCase consultas read-only sobre balances e histórico.
// No toma locks: observa el snapshot que el driver de almacenamiento ofrezca.
type StockQueryUseCase struct {
	stockRepo     repository.StockRepository
	movementRepo  repository.StockMovementRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *StockQueryUseCase {
	return &StockQueryUseCase{
		stockRepo:     stockRepo,
		movementRepo:  movementRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// GetBalance devuelve el balance actual de (producto, bodega); cero si el par
// no tiene movimientos.
func (uc *StockQueryUseCase) GetBalance(productID, warehouseID string) (*dto.BalanceResponse, error) {
	stock, err := uc.stockRepo.Get(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	return &dto.BalanceResponse{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    stock.Quantity,
	}, nil
}

// GetHistory devuelve los movimientos del producto en orden cronológico
// ascendente (empates por orden de inserción). La secuencia es perezosa y
// reiniciable: cada range vuelve a consultar el repositorio.
func (uc *StockQueryUseCase) GetHistory(productID string) iter.Seq2[*entity.StockMovement, error] {
	return func(yield func(*entity.StockMovement, error) bool) {
		movements, err := uc.movementRepo.ListByProduct(productID)
		if err != nil {
			yield(nil, err)
			return
		}
		for _, m := range movements {
			if !yield(m, nil) {
				return
			}
		}
	}
}

// HistoryResponses materializa GetHistory como DTOs (para la capa HTTP).
func (uc *StockQueryUseCase) HistoryResponses(productID string) ([]dto.MovementResponse, error) {
	out := []dto.MovementResponse{}
	for m, err := range uc.GetHistory(productID) {
		if err != nil {
			return nil, err
		}
		out = append(out, *toMovementResponse(m))
	}
	return out, nil
}

// GetOverview devuelve el balance por producto de todos los productos con al
// menos un movimiento en la bodega.
func (uc *StockQueryUseCase) GetOverview(warehouseID string) ([]dto.StockSummaryResponse, error) {
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.NewNotFound("bodega", warehouseID)
	}
	stocks, err := uc.stockRepo.ListByWarehouse(warehouseID)
	if err != nil {
		return nil, err
	}
	return uc.toSummaries(stocks)
}

// GetGlobalOverview balance por producto en todas las bodegas (suma).
func (uc *StockQueryUseCase) GetGlobalOverview() ([]dto.StockSummaryResponse, error) {
	warehouses, err := uc.warehouseRepo.List()
	if err != nil {
		return nil, err
	}
	totals := map[string]decimal.Decimal{}
	for _, w := range warehouses {
		stocks, err := uc.stockRepo.ListByWarehouse(w.ID)
		if err != nil {
			return nil, err
		}
		for _, s := range stocks {
			totals[s.ProductID] = totals[s.ProductID].Add(s.Quantity)
		}
	}
	out := make([]dto.StockSummaryResponse, 0, len(totals))
	for productID, qty := range totals {
		product, err := uc.productRepo.GetByID(productID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			continue
		}
		out = append(out, dto.StockSummaryResponse{
			ProductID:   productID,
			ProductName: product.Name,
			SKU:         product.SKU,
			Quantity:    qty,
		})
	}
	return out, nil
}

func (uc *StockQueryUseCase) toSummaries(stocks []*entity.Stock) ([]dto.StockSummaryResponse, error) {
	out := make([]dto.StockSummaryResponse, 0, len(stocks))
	for _, s := range stocks {
		product, err := uc.productRepo.GetByID(s.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			continue
		}
		out = append(out, dto.StockSummaryResponse{
			ProductID:   s.ProductID,
			ProductName: product.Name,
			SKU:         product.SKU,
			WarehouseID: s.WarehouseID,
			Quantity:    s.Quantity,
		})
	}
	return out, nil
}
