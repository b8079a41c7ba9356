package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa el balance actual de un producto en una bodega.
// Es un read-model derivado del log de movimientos; se actualiza en el mismo
// scope atómico que cada append para mantenerlo consistente con el log.
// Invariante: Quantity >= 0 en todo momento.
type Stock struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}
