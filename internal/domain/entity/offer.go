package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una oferta. DRAFT es el inicial; ACCEPTED y REJECTED son terminales.
// Una vez SENT, las líneas y el total quedan congelados.
const (
	OfferStatusDraft    = "DRAFT"
	OfferStatusSent     = "SENT"
	OfferStatusAccepted = "ACCEPTED"
	OfferStatusRejected = "REJECTED"
)

// offerTransitions tabla cerrada de transiciones permitidas.
var offerTransitions = map[string]map[string]bool{
	OfferStatusDraft: {OfferStatusSent: true},
	OfferStatusSent:  {OfferStatusAccepted: true, OfferStatusRejected: true},
}

// CanOfferTransition indica si el cambio from -> to está en la tabla.
func CanOfferTransition(from, to string) bool {
	return offerTransitions[from][to]
}

// OfferItem línea de una oferta. UnitPrice es un snapshot del precio de
// catálogo al momento de crear la línea; cambios posteriores no lo alteran.
type OfferItem struct {
	ID        string
	ProductID string
	Quantity  int // > 0
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
	LineTotal decimal.Decimal
}

// ComputeLineTotal calcula cantidad × precio − descuento, con piso en 0.
func ComputeLineTotal(quantity int, unitPrice, discount decimal.Decimal) decimal.Decimal {
	total := unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Sub(discount)
	if total.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return total
}

// Offer representa una oferta comercial a un cliente, opcionalmente derivada
// de una demanda procesada. DemandID es una referencia de consulta (clave),
// nunca una copia embebida de la demanda.
type Offer struct {
	ID          string
	DemandID    string // vacío = oferta directa sin demanda de origen
	CustomerID  string
	Status      string
	Currency    string
	TotalAmount decimal.Decimal
	ValidUntil  *time.Time
	Items       []OfferItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecalculateTotal recalcula TotalAmount como la suma de los totales de línea.
// Solo tiene sentido mientras la oferta está en DRAFT.
func (o *Offer) RecalculateTotal() {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.LineTotal)
	}
	o.TotalAmount = total
}
