package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo.
// UnitPrice es el precio de lista vigente; las ofertas copian este valor al
// crearse (snapshot) y no se ven afectadas por cambios posteriores del catálogo.
type Product struct {
	ID          string
	SKU         string // único en todo el catálogo
	Name        string
	Description string
	Unit        string // unidad de medida (ej. "pcs", "kg", "m")
	UnitPrice   decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
