package memory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/modus-erp/modus-api/internal/domain/entity"
	"github.com/modus-erp/modus-api/internal/domain/repository"
)

// StockRepository vista read-only del read-model de balances fuera de
// transacción. Las escrituras de balance pasan por el TxRunner.
type StockRepository struct {
	store *Store
}

// NewStockRepository construye el repositorio.
func NewStockRepository(store *Store) *StockRepository {
	return &StockRepository{store: store}
}

var _ repository.StockRepository = (*StockRepository)(nil)

func (r *StockRepository) Get(productID, warehouseID string) (*entity.Stock, error) {
	return readCommittedStock(r.store, productID, warehouseID), nil
}

// GetForUpdate fuera de una transacción no hay exclusión que adquirir;
// equivale a Get. El motor de stock solo lo invoca vía TxRunner.
func (r *StockRepository) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	return r.Get(productID, warehouseID)
}

func (r *StockRepository) Upsert(stock *entity.Stock) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.stock[stockKey(stock.ProductID, stock.WarehouseID)] = copyStock(stock)
	return nil
}

func (r *StockRepository) ListByWarehouse(warehouseID string) ([]*entity.Stock, error) {
	return listStockByWarehouse(r.store, warehouseID)
}

func (r *StockRepository) ListBelow(threshold decimal.Decimal) ([]*entity.Stock, error) {
	return listStockBelow(r.store, threshold)
}

func listStockByWarehouse(s *Store, warehouseID string) ([]*entity.Stock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*entity.Stock{}
	for _, stock := range s.stock {
		if stock.WarehouseID == warehouseID {
			out = append(out, copyStock(stock))
		}
	}
	sortStocks(out)
	return out, nil
}

func listStockBelow(s *Store, threshold decimal.Decimal) ([]*entity.Stock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*entity.Stock{}
	for _, stock := range s.stock {
		if stock.Quantity.LessThan(threshold) {
			out = append(out, copyStock(stock))
		}
	}
	sortStocks(out)
	return out, nil
}

// sortStocks orden estable por (producto, bodega) para listados deterministas.
func sortStocks(stocks []*entity.Stock) {
	sort.Slice(stocks, func(i, j int) bool {
		if stocks[i].ProductID != stocks[j].ProductID {
			return stocks[i].ProductID < stocks[j].ProductID
		}
		return stocks[i].WarehouseID < stocks[j].WarehouseID
	})
}

// StockMovementRepository vista del log de movimientos fuera de transacción.
type StockMovementRepository struct {
	store *Store
}

// NewStockMovementRepository construye el repositorio.
func NewStockMovementRepository(store *Store) *StockMovementRepository {
	return &StockMovementRepository{store: store}
}

var _ repository.StockMovementRepository = (*StockMovementRepository)(nil)

func (r *StockMovementRepository) Create(movement *entity.StockMovement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.movements = append(r.store.movements, copyMovement(movement))
	return nil
}

func (r *StockMovementRepository) ListByProduct(productID string) ([]*entity.StockMovement, error) {
	return listMovementsByProduct(r.store, productID)
}

func (r *StockMovementRepository) ListRecent(limit int) ([]*entity.StockMovement, error) {
	return listRecentMovements(r.store, limit)
}

// listMovementsByProduct el slice ya está en orden de inserción, que coincide
// con el orden cronológico de commit; filtrar preserva ese orden.
func listMovementsByProduct(s *Store, productID string) ([]*entity.StockMovement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*entity.StockMovement{}
	for _, m := range s.movements {
		if m.ProductID == productID {
			out = append(out, copyMovement(m))
		}
	}
	return out, nil
}

func listRecentMovements(s *Store, limit int) ([]*entity.StockMovement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.movements)
	if limit > n {
		limit = n
	}
	out := make([]*entity.StockMovement, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, copyMovement(s.movements[i]))
	}
	return out, nil
}
