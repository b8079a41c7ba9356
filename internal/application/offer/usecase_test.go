package offer_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modus-erp/modus-api/internal/application/catalog"
	"github.com/modus-erp/modus-api/internal/application/demand"
	"github.com/modus-erp/modus-api/internal/application/dto"
	"github.com/modus-erp/modus-api/internal/application/offer"
	"github.com/modus-erp/modus-api/internal/domain"
	"github.com/modus-erp/modus-api/internal/domain/entity"
	"github.com/modus-erp/modus-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type offerFixture struct {
	offers   *offer.OfferUseCase
	demands  *demand.DemandUseCase
	products *catalog.ProductUseCase
}

// buildOfferFixture arma los casos de uso con un producto y un cliente sembrados.
func buildOfferFixture(t *testing.T) offerFixture {
	t.Helper()
	store := memory.NewStore()
	productRepo := memory.NewProductRepository(store)
	customerRepo := memory.NewCustomerRepository(store)
	demandRepo := memory.NewDemandRepository(store)
	offerRepo := memory.NewOfferRepository(store)

	now := time.Now()
	require.NoError(t, productRepo.Create(&entity.Product{
		ID: "prod-1", SKU: "SKU-1", Name: "Panel solar 450W", Unit: "pcs",
		UnitPrice: decimal.RequireFromString("120.00"), CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, customerRepo.Create(&entity.Customer{
		ID: "cust-1", Name: "Constructora Andina", Type: entity.CustomerTypeCustomer,
		CreatedAt: now, UpdatedAt: now,
	}))

	return offerFixture{
		offers:   offer.NewOfferUseCase(offerRepo, demandRepo, customerRepo, productRepo),
		demands:  demand.NewDemandUseCase(demandRepo, productRepo),
		products: catalog.NewProductUseCase(productRepo),
	}
}

func (f offerFixture) createDraftOffer(t *testing.T) *dto.OfferResponse {
	t.Helper()
	discount := decimal.RequireFromString("1.50")
	out, err := f.offers.Create(dto.CreateOfferRequest{
		CustomerID: "cust-1",
		Items: []dto.OfferItemRequest{
			{ProductID: "prod-1", Quantity: 3, UnitPrice: decimal.RequireFromString("10.50"), Discount: &discount},
		},
	})
	require.NoError(t, err)
	return out
}

// processedDemand crea una demanda y la lleva hasta PROCESSED.
func (f offerFixture) processedDemand(t *testing.T) string {
	t.Helper()
	d, err := f.demands.Create(dto.CreateDemandRequest{
		Title:    "Demanda paneles",
		Priority: entity.PriorityMedium,
		Items:    []dto.DemandItemRequest{{ProductID: "prod-1", Quantity: 4}},
	})
	require.NoError(t, err)
	_, err = f.demands.Submit(d.ID)
	require.NoError(t, err)
	_, err = f.demands.Approve(d.ID)
	require.NoError(t, err)
	return d.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación directa y precios
// ──────────────────────────────────────────────────────────────────────────────

func TestOfferCreate_CalculaLineasYTotal(t *testing.T) {
	f := buildOfferFixture(t)
	out := f.createDraftOffer(t)

	assert.Equal(t, entity.OfferStatusDraft, out.Status)
	assert.Equal(t, "USD", out.Currency, "sin moneda explícita aplica USD")
	require.Len(t, out.Items, 1)
	// 3 × 10.50 − 1.50 = 30.00
	assert.True(t, out.Items[0].LineTotal.Equal(decimal.RequireFromString("30.00")))
	assert.True(t, out.TotalAmount.Equal(decimal.RequireFromString("30.00")))
}

func TestOfferCreate_DescuentoMayorQueBruto_LineaEnCero(t *testing.T) {
	f := buildOfferFixture(t)
	discount := decimal.NewFromInt(1000)
	out, err := f.offers.Create(dto.CreateOfferRequest{
		CustomerID: "cust-1",
		Items: []dto.OfferItemRequest{
			{ProductID: "prod-1", Quantity: 2, UnitPrice: decimal.NewFromInt(10), Discount: &discount},
		},
	})
	require.NoError(t, err)
	assert.True(t, out.Items[0].LineTotal.IsZero())
	assert.True(t, out.TotalAmount.IsZero())
}

func TestOfferCreate_MonedaISO(t *testing.T) {
	f := buildOfferFixture(t)

	out, err := f.offers.Create(dto.CreateOfferRequest{
		CustomerID: "cust-1", Currency: "cop",
		Items: []dto.OfferItemRequest{{ProductID: "prod-1", Quantity: 1, UnitPrice: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "COP", out.Currency, "el código se normaliza a mayúsculas")

	_, err = f.offers.Create(dto.CreateOfferRequest{
		CustomerID: "cust-1", Currency: "XQZ",
		Items: []dto.OfferItemRequest{{ProductID: "prod-1", Quantity: 1, UnitPrice: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "moneda fuera de ISO-4217")
}

func TestOfferCreate_Validaciones(t *testing.T) {
	f := buildOfferFixture(t)

	_, err := f.offers.Create(dto.CreateOfferRequest{CustomerID: "no-existe",
		Items: []dto.OfferItemRequest{{ProductID: "prod-1", Quantity: 1, UnitPrice: decimal.NewFromInt(1)}}})
	assert.ErrorIs(t, err, domain.ErrNotFound, "cliente inexistente")

	_, err = f.offers.Create(dto.CreateOfferRequest{CustomerID: "cust-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = f.offers.Create(dto.CreateOfferRequest{CustomerID: "cust-1",
		Items: []dto.OfferItemRequest{{ProductID: "prod-1", Quantity: 0, UnitPrice: decimal.NewFromInt(1)}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = f.offers.Create(dto.CreateOfferRequest{CustomerID: "cust-1",
		Items: []dto.OfferItemRequest{{ProductID: "prod-1", Quantity: 1, UnitPrice: decimal.NewFromInt(-1)}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio negativo")
}

// Las líneas son una colección ordenada: releer la oferta devuelve las líneas
// exactamente en el orden en que se crearon.
func TestOfferItems_ConservanElOrdenDeCreacion(t *testing.T) {
	f := buildOfferFixture(t)

	precios := []string{"10.00", "20.00", "30.00", "40.00"}
	items := make([]dto.OfferItemRequest, 0, len(precios))
	for _, p := range precios {
		items = append(items, dto.OfferItemRequest{
			ProductID: "prod-1", Quantity: 1, UnitPrice: decimal.RequireFromString(p),
		})
	}
	created, err := f.offers.Create(dto.CreateOfferRequest{CustomerID: "cust-1", Items: items})
	require.NoError(t, err)

	releida, err := f.offers.GetByID(created.ID)
	require.NoError(t, err)
	require.Len(t, releida.Items, len(precios))
	for i, p := range precios {
		assert.True(t, releida.Items[i].UnitPrice.Equal(decimal.RequireFromString(p)),
			"la línea %d debe seguir en su posición original", i)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Conversión de demanda a oferta
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateFromDemand_CopiaLineasConPrecioDeCatalogo(t *testing.T) {
	f := buildOfferFixture(t)
	demandID := f.processedDemand(t)

	out, err := f.offers.CreateFromDemand(dto.CreateOfferFromDemandRequest{
		DemandID: demandID, CustomerID: "cust-1",
	})
	require.NoError(t, err)

	assert.Equal(t, demandID, out.DemandID, "la oferta referencia la demanda de origen")
	require.Len(t, out.Items, 1)
	assert.Equal(t, 4, out.Items[0].Quantity)
	// Precio snapshot del catálogo, descuento 0.
	assert.True(t, out.Items[0].UnitPrice.Equal(decimal.RequireFromString("120.00")))
	assert.True(t, out.Items[0].Discount.IsZero())
	assert.True(t, out.TotalAmount.Equal(decimal.RequireFromString("480.00")))
}

func TestCreateFromDemand_SoloDemandasProcesadas(t *testing.T) {
	f := buildOfferFixture(t)
	d, err := f.demands.Create(dto.CreateDemandRequest{
		Title:    "Demanda en borrador",
		Priority: entity.PriorityLow,
		Items:    []dto.DemandItemRequest{{ProductID: "prod-1", Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = f.offers.CreateFromDemand(dto.CreateOfferFromDemandRequest{
		DemandID: d.ID, CustomerID: "cust-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition,
		"una demanda DRAFT no puede convertirse")

	_, err = f.offers.CreateFromDemand(dto.CreateOfferFromDemandRequest{
		DemandID: "no-existe", CustomerID: "cust-1",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El precio de la línea es un snapshot: subir el precio de catálogo después
// de la conversión no altera la oferta existente.
func TestCreateFromDemand_SnapshotInmuneACambiosDeCatalogo(t *testing.T) {
	f := buildOfferFixture(t)
	demandID := f.processedDemand(t)

	created, err := f.offers.CreateFromDemand(dto.CreateOfferFromDemandRequest{
		DemandID: demandID, CustomerID: "cust-1",
	})
	require.NoError(t, err)

	nuevoPrecio := decimal.RequireFromString("999.99")
	_, err = f.products.Update("prod-1", dto.UpdateProductRequest{UnitPrice: &nuevoPrecio})
	require.NoError(t, err)

	releida, err := f.offers.GetByID(created.ID)
	require.NoError(t, err)
	assert.True(t, releida.Items[0].UnitPrice.Equal(decimal.RequireFromString("120.00")),
		"el snapshot no sigue al catálogo")
	assert.True(t, releida.TotalAmount.Equal(decimal.RequireFromString("480.00")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones del workflow
// ──────────────────────────────────────────────────────────────────────────────

func TestOfferWorkflow_CaminoFeliz(t *testing.T) {
	f := buildOfferFixture(t)
	o := f.createDraftOffer(t)

	out, err := f.offers.Send(o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OfferStatusSent, out.Status)

	out, err = f.offers.Accept(o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OfferStatusAccepted, out.Status)
}

func TestOfferWorkflow_AceptarBorrador_Rechazado(t *testing.T) {
	f := buildOfferFixture(t)
	o := f.createDraftOffer(t)

	_, err := f.offers.Accept(o.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestOfferWorkflow_EstadosTerminalesSonFinales(t *testing.T) {
	f := buildOfferFixture(t)
	o := f.createDraftOffer(t)
	_, err := f.offers.Send(o.ID)
	require.NoError(t, err)
	_, err = f.offers.Reject(o.ID)
	require.NoError(t, err)

	_, err = f.offers.Send(o.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = f.offers.Accept(o.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición de líneas: solo en borrador
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateItem_RecalculaLineaYTotal(t *testing.T) {
	f := buildOfferFixture(t)
	o := f.createDraftOffer(t)

	qty := 5
	out, err := f.offers.UpdateItem(o.ID, o.Items[0].ID, dto.UpdateOfferItemRequest{Quantity: &qty})
	require.NoError(t, err)
	// 5 × 10.50 − 1.50 = 51.00
	assert.True(t, out.Items[0].LineTotal.Equal(decimal.RequireFromString("51.00")))
	assert.True(t, out.TotalAmount.Equal(decimal.RequireFromString("51.00")))
}

func TestUpdateItem_OfertaEnviadaEsInmutable(t *testing.T) {
	f := buildOfferFixture(t)
	o := f.createDraftOffer(t)
	_, err := f.offers.Send(o.ID)
	require.NoError(t, err)

	qty := 9
	_, err = f.offers.UpdateItem(o.ID, o.Items[0].ID, dto.UpdateOfferItemRequest{Quantity: &qty})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition,
		"una oferta SENT congela líneas y total")
}

func TestUpdateItem_LineaInexistente(t *testing.T) {
	f := buildOfferFixture(t)
	o := f.createDraftOffer(t)

	qty := 2
	_, err := f.offers.UpdateItem(o.ID, "no-existe", dto.UpdateOfferItemRequest{Quantity: &qty})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
