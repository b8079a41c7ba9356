package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OfferItemRequest línea de una oferta nueva.
type OfferItemRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  int              `json:"quantity"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	Discount  *decimal.Decimal `json:"discount,omitempty"` // nil = 0
}

// CreateOfferRequest entrada para crear una oferta directa.
type CreateOfferRequest struct {
	CustomerID string             `json:"customer_id"`
	Currency   string             `json:"currency,omitempty"` // ISO-4217; vacío = USD
	ValidUntil *time.Time         `json:"valid_until,omitempty"`
	Items      []OfferItemRequest `json:"items"`
}

// CreateOfferFromDemandRequest entrada para convertir una demanda procesada en oferta.
type CreateOfferFromDemandRequest struct {
	DemandID   string     `json:"demand_id"`
	CustomerID string     `json:"customer_id"`
	Currency   string     `json:"currency,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
}

// UpdateOfferItemRequest edición de una línea (solo mientras la oferta está en DRAFT).
type UpdateOfferItemRequest struct {
	Quantity  *int             `json:"quantity,omitempty"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Discount  *decimal.Decimal `json:"discount,omitempty"`
}

// OfferItemResponse línea de una oferta.
type OfferItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OfferResponse salida de una oferta.
type OfferResponse struct {
	ID          string              `json:"id"`
	DemandID    string              `json:"demand_id,omitempty"`
	CustomerID  string              `json:"customer_id"`
	Status      string              `json:"status"`
	Currency    string              `json:"currency"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	ValidUntil  *time.Time          `json:"valid_until,omitempty"`
	Items       []OfferItemResponse `json:"items"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}
