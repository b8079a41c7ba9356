// Package demand contiene el workflow de demandas: solicitudes internas de
// compra/asignación que avanzan DRAFT -> PENDING -> PROCESSED | CANCELLED.
package demand

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/modus-erp/modus-api/internal/application/dto"
	"github.com/modus-erp/modus-api/internal/domain"
	"github.com/modus-erp/modus-api/internal/domain/entity"
	"github.com/modus-erp/modus-api/internal/domain/repository"
)

// DemandUseCase casos de uso del workflow de demandas.
// Las transiciones son compare-and-swap sobre el estado almacenado: un evento
// que no coincide con el estado esperado falla, nunca pisa a otro escritor.
type DemandUseCase struct {
	repo        repository.DemandRepository
	productRepo repository.ProductRepository
}

// NewDemandUseCase construye el caso de uso.
func NewDemandUseCase(repo repository.DemandRepository, productRepo repository.ProductRepository) *DemandUseCase {
	return &DemandUseCase{repo: repo, productRepo: productRepo}
}

// Create crea una demanda en DRAFT. Requiere al menos una línea, cantidades
// positivas y productos existentes.
func (uc *DemandUseCase) Create(in dto.CreateDemandRequest) (*dto.DemandResponse, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, domain.NewValidation("title", "requerido")
	}
	if !entity.ValidPriority(in.Priority) {
		return nil, domain.NewValidation("priority", "debe ser LOW, MEDIUM o HIGH")
	}
	if len(in.Items) == 0 {
		return nil, domain.NewValidation("items", "se requiere al menos una línea")
	}

	items := make([]entity.DemandItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, domain.NewValidation("items.quantity", "debe ser mayor que cero")
		}
		product, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.NewNotFound("producto", it.ProductID)
		}
		items = append(items, entity.DemandItem{
			ID:        uuid.New().String(),
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Note:      it.Note,
		})
	}

	now := time.Now()
	demand := &entity.Demand{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		Requester:   in.Requester,
		Status:      entity.DemandStatusDraft,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		Items:       items,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(demand); err != nil {
		return nil, err
	}
	return toDemandResponse(demand), nil
}

// Submit pasa la demanda de DRAFT a PENDING.
func (uc *DemandUseCase) Submit(id string) (*dto.DemandResponse, error) {
	return uc.transition(id, entity.DemandStatusDraft, entity.DemandStatusPending)
}

// Approve pasa la demanda de PENDING a PROCESSED (terminal).
func (uc *DemandUseCase) Approve(id string) (*dto.DemandResponse, error) {
	return uc.transition(id, entity.DemandStatusPending, entity.DemandStatusProcessed)
}

// Reject pasa la demanda de PENDING a CANCELLED (terminal).
func (uc *DemandUseCase) Reject(id string) (*dto.DemandResponse, error) {
	return uc.transition(id, entity.DemandStatusPending, entity.DemandStatusCancelled)
}

// transition valida contra la tabla y aplica el compare-and-swap.
// Estado distinto al esperado -> InvalidStateTransition; CAS perdido -> Conflict.
func (uc *DemandUseCase) transition(id, from, to string) (*dto.DemandResponse, error) {
	demand, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if demand == nil {
		return nil, domain.NewNotFound("demanda", id)
	}
	if demand.Status != from || !entity.CanDemandTransition(from, to) {
		return nil, domain.NewInvalidTransition("demanda", id, demand.Status, to)
	}
	ok, err := uc.repo.UpdateStatus(id, from, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewConflict("la demanda " + id + " cambió de estado concurrentemente")
	}
	demand.Status = to
	demand.UpdatedAt = time.Now()
	return toDemandResponse(demand), nil
}

// GetByID obtiene una demanda por ID.
func (uc *DemandUseCase) GetByID(id string) (*dto.DemandResponse, error) {
	demand, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if demand == nil {
		return nil, domain.NewNotFound("demanda", id)
	}
	return toDemandResponse(demand), nil
}

// List lista todas las demandas.
func (uc *DemandUseCase) List() ([]dto.DemandResponse, error) {
	demands, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.DemandResponse, 0, len(demands))
	for _, d := range demands {
		out = append(out, *toDemandResponse(d))
	}
	return out, nil
}

func toDemandResponse(d *entity.Demand) *dto.DemandResponse {
	items := make([]dto.DemandItemResponse, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, dto.DemandItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Note:      it.Note,
		})
	}
	return &dto.DemandResponse{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Requester:   d.Requester,
		Status:      d.Status,
		Priority:    d.Priority,
		DueDate:     d.DueDate,
		Items:       items,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
