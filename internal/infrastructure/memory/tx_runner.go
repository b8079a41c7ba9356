package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/modus-erp/modus-api/internal/application/inventory"
	"github.com/modus-erp/modus-api/internal/domain/entity"
	"github.com/modus-erp/modus-api/internal/domain/repository"
)

// TxRunner scope atómico del driver en memoria: GetForUpdate adquiere el mutex
// de la clave (una sola vez por tx, reentrante dentro de ella) y las escrituras
// quedan en staging hasta el commit, que las publica bajo el lock del Store.
// Si fn falla, el staging se descarta y el almacén queda intacto.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el almacén compartido.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

var _ inventory.TxRunner = (*TxRunner)(nil)

// Run ejecuta fn con repositorios atados al scope. Los locks de clave se
// liberan en orden inverso de adquisición al salir, pase lo que pase.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := newTx(r.store)
	defer tx.release()

	if err := fn(&txMovementRepo{tx: tx}, &txStockRepo{tx: tx}); err != nil {
		return err
	}
	tx.commit()
	return nil
}

// memTx staging de una transacción en memoria.
type memTx struct {
	store       *Store
	locked      []string
	lockedSet   map[string]bool
	stagedStock map[string]*entity.Stock
	stagedMovs  []*entity.StockMovement
}

func newTx(store *Store) *memTx {
	return &memTx{
		store:       store,
		lockedSet:   map[string]bool{},
		stagedStock: map[string]*entity.Stock{},
	}
}

// lock adquiere el mutex de la clave si esta tx aún no lo tiene.
func (t *memTx) lock(key string) {
	if t.lockedSet[key] {
		return
	}
	t.store.keyLock(key).Lock()
	t.lockedSet[key] = true
	t.locked = append(t.locked, key)
}

// commit publica el staging bajo el lock del Store, de una sola vez: ningún
// lector ve una escritura del scope sin las demás.
func (t *memTx) commit() {
	s := t.store
	s.mu.Lock()
	for key, stock := range t.stagedStock {
		s.stock[key] = stock
	}
	s.movements = append(s.movements, t.stagedMovs...)
	s.mu.Unlock()
	t.stagedStock = map[string]*entity.Stock{}
	t.stagedMovs = nil
}

func (t *memTx) release() {
	for i := len(t.locked) - 1; i >= 0; i-- {
		t.store.keyLock(t.locked[i]).Unlock()
	}
	t.locked = nil
	t.lockedSet = map[string]bool{}
}

// txStockRepo StockRepository atado a la transacción: las lecturas ven el
// staging propio encima del estado commiteado.
type txStockRepo struct {
	tx *memTx
}

var _ repository.StockRepository = (*txStockRepo)(nil)

func (r *txStockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	key := stockKey(productID, warehouseID)
	if staged, ok := r.tx.stagedStock[key]; ok {
		return copyStock(staged), nil
	}
	return readCommittedStock(r.tx.store, productID, warehouseID), nil
}

func (r *txStockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	r.tx.lock(stockKey(productID, warehouseID))
	return r.Get(productID, warehouseID)
}

func (r *txStockRepo) Upsert(stock *entity.Stock) error {
	r.tx.stagedStock[stockKey(stock.ProductID, stock.WarehouseID)] = copyStock(stock)
	return nil
}

func (r *txStockRepo) ListByWarehouse(warehouseID string) ([]*entity.Stock, error) {
	return listStockByWarehouse(r.tx.store, warehouseID)
}

func (r *txStockRepo) ListBelow(threshold decimal.Decimal) ([]*entity.Stock, error) {
	return listStockBelow(r.tx.store, threshold)
}

// txMovementRepo StockMovementRepository atado a la transacción: Create agrega
// al staging; las lecturas ven solo lo commiteado.
type txMovementRepo struct {
	tx *memTx
}

var _ repository.StockMovementRepository = (*txMovementRepo)(nil)

func (r *txMovementRepo) Create(movement *entity.StockMovement) error {
	r.tx.stagedMovs = append(r.tx.stagedMovs, copyMovement(movement))
	return nil
}

func (r *txMovementRepo) ListByProduct(productID string) ([]*entity.StockMovement, error) {
	return listMovementsByProduct(r.tx.store, productID)
}

func (r *txMovementRepo) ListRecent(limit int) ([]*entity.StockMovement, error) {
	return listRecentMovements(r.tx.store, limit)
}

// readCommittedStock balance commiteado; balance cero si el par no existe.
func readCommittedStock(s *Store, productID, warehouseID string) *entity.Stock {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if stock, ok := s.stock[stockKey(productID, warehouseID)]; ok {
		return copyStock(stock)
	}
	return &entity.Stock{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    decimal.Zero,
	}
}
