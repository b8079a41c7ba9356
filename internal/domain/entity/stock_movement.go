package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeIN          = "IN"           // entrada
	MovementTypeOUT         = "OUT"          // salida
	MovementTypeTransferIN  = "TRANSFER_IN"  // pata de entrada de un traslado
	MovementTypeTransferOUT = "TRANSFER_OUT" // pata de salida de un traslado
)

// ValidMovementType indica si el tipo es uno de los cuatro conocidos.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeTransferIN, MovementTypeTransferOUT:
		return true
	}
	return false
}

// ReducesStock indica si el tipo resta del balance.
func ReducesStock(t string) bool {
	return t == MovementTypeOUT || t == MovementTypeTransferOUT
}

// StockMovement representa un movimiento de stock. Inmutable una vez creado;
// el log de movimientos es la única fuente de verdad del histórico.
type StockMovement struct {
	ID              string
	ProductID       string
	WarehouseID     string
	Type            string
	Quantity        decimal.Decimal // siempre positiva; el signo lo da el tipo
	TransferGroupID string          // agrupa las dos patas de un traslado; vacío si no aplica
	Note            string
	CreatedAt       time.Time
}

// Signed devuelve la cantidad con signo según el tipo:
// IN y TRANSFER_IN suman, OUT y TRANSFER_OUT restan.
func (m *StockMovement) Signed() decimal.Decimal {
	if ReducesStock(m.Type) {
		return m.Quantity.Neg()
	}
	return m.Quantity
}
