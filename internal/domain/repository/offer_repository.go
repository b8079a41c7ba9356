package repository

import (
	"github.com/shopspring/decimal"

	"github.com/modus-erp/modus-api/internal/domain/entity"
)

// OfferRepository puerto de persistencia para ofertas y sus líneas.
// GetByID devuelve (nil, nil) si la oferta no existe.
type OfferRepository interface {
	// Create persiste la oferta y sus líneas de forma atómica.
	Create(offer *entity.Offer) error
	GetByID(id string) (*entity.Offer, error)
	List() ([]*entity.Offer, error)
	// UpdateStatus compare-and-swap sobre el estado almacenado (ver DemandRepository).
	UpdateStatus(id, from, to string) (bool, error)
	// ReplaceItemsIfDraft reemplaza líneas y total solo si la oferta sigue en
	// DRAFT al momento de escribir. Devuelve false si ya salió de borrador.
	ReplaceItemsIfDraft(offer *entity.Offer) (bool, error)
	SumTotalByStatus(status string) (decimal.Decimal, error)
	// ListRecent ofertas con actividad reciente, la más nueva primero.
	ListRecent(limit int) ([]*entity.Offer, error)
}
