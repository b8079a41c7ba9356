package demand_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modus-erp/modus-api/internal/application/demand"
	"github.com/modus-erp/modus-api/internal/application/dto"
	"github.com/modus-erp/modus-api/internal/domain"
	"github.com/modus-erp/modus-api/internal/domain/entity"
	"github.com/modus-erp/modus-api/internal/domain/repository"
	"github.com/modus-erp/modus-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func buildDemandUC(t *testing.T) *demand.DemandUseCase {
	t.Helper()
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	now := time.Now()
	require.NoError(t, products.Create(&entity.Product{
		ID: "prod-1", SKU: "SKU-1", Name: "Cemento 50kg", Unit: "bulto",
		UnitPrice: decimal.RequireFromString("32000"), CreatedAt: now, UpdatedAt: now,
	}))
	repo := memory.NewDemandRepository(store)
	return demand.NewDemandUseCase(repo, products)
}

func createDraft(t *testing.T, uc *demand.DemandUseCase) *dto.DemandResponse {
	t.Helper()
	out, err := uc.Create(dto.CreateDemandRequest{
		Title:    "Reposición obra norte",
		Priority: entity.PriorityHigh,
		Items:    []dto.DemandItemRequest{{ProductID: "prod-1", Quantity: 20}},
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

func TestDemandCreate_NaceEnDraft(t *testing.T) {
	uc := buildDemandUC(t)
	out := createDraft(t, uc)

	assert.Equal(t, entity.DemandStatusDraft, out.Status)
	assert.NotEmpty(t, out.ID)
	require.Len(t, out.Items, 1)
	assert.Equal(t, 20, out.Items[0].Quantity)
}

func TestDemandCreate_Validaciones(t *testing.T) {
	uc := buildDemandUC(t)

	_, err := uc.Create(dto.CreateDemandRequest{Priority: entity.PriorityLow,
		Items: []dto.DemandItemRequest{{ProductID: "prod-1", Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "título requerido")

	_, err = uc.Create(dto.CreateDemandRequest{Title: "x", Priority: "URGENTE",
		Items: []dto.DemandItemRequest{{ProductID: "prod-1", Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "prioridad desconocida")

	_, err = uc.Create(dto.CreateDemandRequest{Title: "x", Priority: entity.PriorityLow})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = uc.Create(dto.CreateDemandRequest{Title: "x", Priority: entity.PriorityLow,
		Items: []dto.DemandItemRequest{{ProductID: "prod-1", Quantity: 0}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = uc.Create(dto.CreateDemandRequest{Title: "x", Priority: entity.PriorityLow,
		Items: []dto.DemandItemRequest{{ProductID: "no-existe", Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inexistente")
}

// Las líneas son una colección ordenada: releer la demanda las devuelve en el
// orden en que se crearon.
func TestDemandCreate_LineasConservanElOrden(t *testing.T) {
	uc := buildDemandUC(t)

	cantidades := []int{7, 3, 11, 5}
	items := make([]dto.DemandItemRequest, 0, len(cantidades))
	for _, q := range cantidades {
		items = append(items, dto.DemandItemRequest{ProductID: "prod-1", Quantity: q})
	}
	created, err := uc.Create(dto.CreateDemandRequest{
		Title: "Pedido multilínea", Priority: entity.PriorityMedium, Items: items,
	})
	require.NoError(t, err)

	releida, err := uc.GetByID(created.ID)
	require.NoError(t, err)
	require.Len(t, releida.Items, len(cantidades))
	for i, q := range cantidades {
		assert.Equal(t, q, releida.Items[i].Quantity,
			"la línea %d debe seguir en su posición original", i)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones del workflow
// ──────────────────────────────────────────────────────────────────────────────

func TestDemandWorkflow_CaminoFeliz(t *testing.T) {
	uc := buildDemandUC(t)
	d := createDraft(t, uc)

	out, err := uc.Submit(d.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DemandStatusPending, out.Status)

	out, err = uc.Approve(d.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DemandStatusProcessed, out.Status)
}

func TestDemandWorkflow_RechazoDesdePending(t *testing.T) {
	uc := buildDemandUC(t)
	d := createDraft(t, uc)
	_, err := uc.Submit(d.ID)
	require.NoError(t, err)

	out, err := uc.Reject(d.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DemandStatusCancelled, out.Status)
}

func TestDemandWorkflow_AprobarBorrador_Rechazado(t *testing.T) {
	uc := buildDemandUC(t)
	d := createDraft(t, uc)

	_, err := uc.Approve(d.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition,
		"DRAFT no puede saltar a PROCESSED")
}

func TestDemandWorkflow_EstadosTerminalesSonFinales(t *testing.T) {
	uc := buildDemandUC(t)
	d := createDraft(t, uc)
	_, err := uc.Submit(d.ID)
	require.NoError(t, err)
	_, err = uc.Approve(d.ID)
	require.NoError(t, err)

	_, err = uc.Submit(d.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = uc.Reject(d.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestDemandWorkflow_DemandaInexistente(t *testing.T) {
	uc := buildDemandUC(t)
	_, err := uc.Submit("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Carrera perdida en el compare-and-swap
// ──────────────────────────────────────────────────────────────────────────────

// casLosingRepo envuelve el repositorio real y simula que otro escritor ganó
// la carrera: la lectura ve el estado esperado pero el CAS no coincide.
type casLosingRepo struct {
	repository.DemandRepository
}

func (r *casLosingRepo) UpdateStatus(id, from, to string) (bool, error) {
	return false, nil
}

func TestDemandWorkflow_CarreraPerdida_Conflict(t *testing.T) {
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	now := time.Now()
	require.NoError(t, products.Create(&entity.Product{
		ID: "prod-1", SKU: "SKU-1", Name: "Cemento 50kg", Unit: "bulto",
		UnitPrice: decimal.RequireFromString("32000"), CreatedAt: now, UpdatedAt: now,
	}))
	realRepo := memory.NewDemandRepository(store)
	d := createDraft(t, demand.NewDemandUseCase(realRepo, products))

	// La lectura ve DRAFT y pasa la validación, pero el CAS falla.
	racingUC := demand.NewDemandUseCase(&casLosingRepo{DemandRepository: realRepo}, products)
	_, err := racingUC.Submit(d.ID)
	assert.ErrorIs(t, err, domain.ErrConflict,
		"un CAS perdido se reporta como conflicto, nunca pisa al otro escritor")
}
