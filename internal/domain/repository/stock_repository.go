package repository

import (
	"github.com/shopspring/decimal"

	"github.com/modus-erp/modus-api/internal/domain/entity"
)

// StockRepository puerto del read-model de balances por (producto, bodega).
// El motor de inventario es el único escritor; siempre dentro del mismo scope
// atómico que el append al log de movimientos.
type StockRepository interface {
	// Get devuelve el balance actual; balance cero si el par no tiene movimientos.
	Get(productID, warehouseID string) (*entity.Stock, error)
	// GetForUpdate obtiene el balance adquiriendo la exclusión de la clave
	// (fila bloqueada en Postgres, mutex por clave en memoria). Solo válido
	// dentro de una transacción del TxRunner.
	GetForUpdate(productID, warehouseID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	// ListByWarehouse balances de todos los productos con movimientos en la bodega.
	ListByWarehouse(warehouseID string) ([]*entity.Stock, error)
	// ListBelow balances por debajo del umbral, en todas las bodegas.
	ListBelow(threshold decimal.Decimal) ([]*entity.Stock, error)
}
