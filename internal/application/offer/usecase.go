// Package offer contiene el workflow de ofertas comerciales: creación directa
// o por conversión de una demanda procesada, y el ciclo DRAFT -> SENT ->
// ACCEPTED | REJECTED con precios snapshot.
package offer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/modus-erp/modus-api/internal/application/dto"
	"github.com/modus-erp/modus-api/internal/domain"
	"github.com/modus-erp/modus-api/internal/domain/entity"
	"github.com/modus-erp/modus-api/internal/domain/repository"
)

const defaultCurrency = "USD"

// OfferUseCase casos de uso del workflow de ofertas.
type OfferUseCase struct {
	repo         repository.OfferRepository
	demandRepo   repository.DemandRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
}

// NewOfferUseCase construye el caso de uso.
func NewOfferUseCase(
	repo repository.OfferRepository,
	demandRepo repository.DemandRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
) *OfferUseCase {
	return &OfferUseCase{
		repo:         repo,
		demandRepo:   demandRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

// Create crea una oferta directa en DRAFT. Cada línea calcula
// cantidad × precio − descuento con piso en 0; el total es la suma de líneas.
func (uc *OfferUseCase) Create(in dto.CreateOfferRequest) (*dto.OfferResponse, error) {
	curr, err := uc.resolveCurrency(in.Currency)
	if err != nil {
		return nil, err
	}
	if err := uc.checkCustomer(in.CustomerID); err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, domain.NewValidation("items", "se requiere al menos una línea")
	}

	items := make([]entity.OfferItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, domain.NewValidation("items.quantity", "debe ser mayor que cero")
		}
		if it.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.NewValidation("items.unit_price", "no puede ser negativo")
		}
		discount := decimal.Zero
		if it.Discount != nil {
			if it.Discount.LessThan(decimal.Zero) {
				return nil, domain.NewValidation("items.discount", "no puede ser negativo")
			}
			discount = *it.Discount
		}
		product, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.NewNotFound("producto", it.ProductID)
		}
		items = append(items, entity.OfferItem{
			ID:        uuid.New().String(),
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Discount:  discount,
			LineTotal: entity.ComputeLineTotal(it.Quantity, it.UnitPrice, discount),
		})
	}

	return uc.persistNew("", in.CustomerID, curr, in.ValidUntil, items)
}

// CreateFromDemand convierte una demanda PROCESSED en una oferta DRAFT.
// Copia producto y cantidad de cada línea; el precio unitario es un snapshot
// del precio de catálogo al momento de la conversión, con descuento 0. La
// oferta guarda el ID de la demanda como referencia de consulta.
func (uc *OfferUseCase) CreateFromDemand(in dto.CreateOfferFromDemandRequest) (*dto.OfferResponse, error) {
	curr, err := uc.resolveCurrency(in.Currency)
	if err != nil {
		return nil, err
	}
	if err := uc.checkCustomer(in.CustomerID); err != nil {
		return nil, err
	}
	demand, err := uc.demandRepo.GetByID(in.DemandID)
	if err != nil {
		return nil, err
	}
	if demand == nil {
		return nil, domain.NewNotFound("demanda", in.DemandID)
	}
	// Solo una demanda completamente procesada puede convertirse.
	if demand.Status != entity.DemandStatusProcessed {
		return nil, domain.NewInvalidTransition("demanda", demand.ID, demand.Status, "OFFER")
	}

	items := make([]entity.OfferItem, 0, len(demand.Items))
	for _, it := range demand.Items {
		product, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.NewNotFound("producto", it.ProductID)
		}
		items = append(items, entity.OfferItem{
			ID:        uuid.New().String(),
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: product.UnitPrice, // snapshot: cambios de catálogo posteriores no lo alteran
			Discount:  decimal.Zero,
			LineTotal: entity.ComputeLineTotal(it.Quantity, product.UnitPrice, decimal.Zero),
		})
	}

	return uc.persistNew(demand.ID, in.CustomerID, curr, in.ValidUntil, items)
}

func (uc *OfferUseCase) persistNew(demandID, customerID, curr string, validUntil *time.Time, items []entity.OfferItem) (*dto.OfferResponse, error) {
	now := time.Now()
	offer := &entity.Offer{
		ID:         uuid.New().String(),
		DemandID:   demandID,
		CustomerID: customerID,
		Status:     entity.OfferStatusDraft,
		Currency:   curr,
		ValidUntil: validUntil,
		Items:      items,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	offer.RecalculateTotal()
	if err := uc.repo.Create(offer); err != nil {
		return nil, err
	}
	return toOfferResponse(offer), nil
}

// Send pasa la oferta de DRAFT a SENT; a partir de ahí líneas y total quedan congelados.
func (uc *OfferUseCase) Send(id string) (*dto.OfferResponse, error) {
	return uc.transition(id, entity.OfferStatusDraft, entity.OfferStatusSent)
}

// Accept pasa la oferta de SENT a ACCEPTED (terminal).
func (uc *OfferUseCase) Accept(id string) (*dto.OfferResponse, error) {
	return uc.transition(id, entity.OfferStatusSent, entity.OfferStatusAccepted)
}

// Reject pasa la oferta de SENT a REJECTED (terminal).
func (uc *OfferUseCase) Reject(id string) (*dto.OfferResponse, error) {
	return uc.transition(id, entity.OfferStatusSent, entity.OfferStatusRejected)
}

func (uc *OfferUseCase) transition(id, from, to string) (*dto.OfferResponse, error) {
	offer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, domain.NewNotFound("oferta", id)
	}
	if offer.Status != from || !entity.CanOfferTransition(from, to) {
		return nil, domain.NewInvalidTransition("oferta", id, offer.Status, to)
	}
	ok, err := uc.repo.UpdateStatus(id, from, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewConflict("la oferta " + id + " cambió de estado concurrentemente")
	}
	offer.Status = to
	offer.UpdatedAt = time.Now()
	return toOfferResponse(offer), nil
}

// UpdateItem edita una línea mientras la oferta está en DRAFT y recalcula su
// total y el total de la oferta. Una oferta SENT o terminal es inmutable.
func (uc *OfferUseCase) UpdateItem(offerID, itemID string, in dto.UpdateOfferItemRequest) (*dto.OfferResponse, error) {
	offer, err := uc.repo.GetByID(offerID)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, domain.NewNotFound("oferta", offerID)
	}
	if offer.Status != entity.OfferStatusDraft {
		return nil, domain.NewInvalidTransition("oferta", offerID, offer.Status, offer.Status)
	}

	idx := -1
	for i := range offer.Items {
		if offer.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.NewNotFound("línea de oferta", itemID)
	}

	item := &offer.Items[idx]
	if in.Quantity != nil {
		if *in.Quantity <= 0 {
			return nil, domain.NewValidation("quantity", "debe ser mayor que cero")
		}
		item.Quantity = *in.Quantity
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.NewValidation("unit_price", "no puede ser negativo")
		}
		item.UnitPrice = *in.UnitPrice
	}
	if in.Discount != nil {
		if in.Discount.LessThan(decimal.Zero) {
			return nil, domain.NewValidation("discount", "no puede ser negativo")
		}
		item.Discount = *in.Discount
	}
	item.LineTotal = entity.ComputeLineTotal(item.Quantity, item.UnitPrice, item.Discount)
	offer.RecalculateTotal()
	offer.UpdatedAt = time.Now()

	ok, err := uc.repo.ReplaceItemsIfDraft(offer)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewConflict("la oferta " + offerID + " salió de borrador concurrentemente")
	}
	return toOfferResponse(offer), nil
}

// GetByID obtiene una oferta por ID.
func (uc *OfferUseCase) GetByID(id string) (*dto.OfferResponse, error) {
	offer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, domain.NewNotFound("oferta", id)
	}
	return toOfferResponse(offer), nil
}

// List lista todas las ofertas.
func (uc *OfferUseCase) List() ([]dto.OfferResponse, error) {
	offers, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.OfferResponse, 0, len(offers))
	for _, o := range offers {
		out = append(out, *toOfferResponse(o))
	}
	return out, nil
}

// resolveCurrency valida el código ISO-4217 (vacío = USD).
func (uc *OfferUseCase) resolveCurrency(code string) (string, error) {
	if code == "" {
		return defaultCurrency, nil
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", domain.NewValidation("currency", "código ISO-4217 desconocido: "+code)
	}
	return unit.String(), nil
}

func (uc *OfferUseCase) checkCustomer(customerID string) error {
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.NewNotFound("cliente", customerID)
	}
	return nil
}

func toOfferResponse(o *entity.Offer) *dto.OfferResponse {
	items := make([]dto.OfferItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OfferItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Discount:  it.Discount,
			LineTotal: it.LineTotal,
		})
	}
	return &dto.OfferResponse{
		ID:          o.ID,
		DemandID:    o.DemandID,
		CustomerID:  o.CustomerID,
		Status:      o.Status,
		Currency:    o.Currency,
		TotalAmount: o.TotalAmount,
		ValidUntil:  o.ValidUntil,
		Items:       items,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
