package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modus-erp/modus-api/internal/application/dto"
	"github.com/modus-erp/modus-api/internal/application/inventory"
	"github.com/modus-erp/modus-api/internal/domain"
	"github.com/modus-erp/modus-api/internal/domain/entity"
	"github.com/modus-erp/modus-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test: motor de stock completo sobre el driver en memoria
// ──────────────────────────────────────────────────────────────────────────────

type stockEngine struct {
	register *inventory.RegisterMovementUseCase
	transfer *inventory.TransferUseCase
	query    *inventory.StockQueryUseCase
}

// buildEngine arma el motor con un producto y dos bodegas ya sembrados.
func buildEngine(t *testing.T) stockEngine {
	t.Helper()
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	warehouses := memory.NewWarehouseRepository(store)
	movements := memory.NewStockMovementRepository(store)
	stock := memory.NewStockRepository(store)
	txRunner := memory.NewTxRunner(store)

	now := time.Now()
	require.NoError(t, products.Create(&entity.Product{
		ID: "prod-1", SKU: "SKU-1", Name: "Tornillo M8", Unit: "pcs",
		UnitPrice: decimal.RequireFromString("0.35"), CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, warehouses.Create(&entity.Warehouse{ID: "wh-a", Name: "Bodega A", Active: true, CreatedAt: now}))
	require.NoError(t, warehouses.Create(&entity.Warehouse{ID: "wh-b", Name: "Bodega B", Active: true, CreatedAt: now}))

	return stockEngine{
		register: inventory.NewRegisterMovementUseCase(txRunner, products, warehouses),
		transfer: inventory.NewTransferUseCase(txRunner, products, warehouses),
		query:    inventory.NewStockQueryUseCase(stock, movements, products, warehouses),
	}
}

func (e stockEngine) mustMove(t *testing.T, tipo string, qty int64, warehouseID string) {
	t.Helper()
	_, err := e.register.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
		ProductID: "prod-1", WarehouseID: warehouseID, Type: tipo, Quantity: decimal.NewFromInt(qty),
	})
	require.NoError(t, err)
}

func (e stockEngine) balance(t *testing.T, warehouseID string) decimal.Decimal {
	t.Helper()
	out, err := e.query.GetBalance("prod-1", warehouseID)
	require.NoError(t, err)
	return out.Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_EntradasYSalidasActualizanBalance(t *testing.T) {
	e := buildEngine(t)

	e.mustMove(t, entity.MovementTypeIN, 100, "wh-a")
	e.mustMove(t, entity.MovementTypeOUT, 30, "wh-a")
	e.mustMove(t, entity.MovementTypeIN, 5, "wh-a")

	assert.True(t, e.balance(t, "wh-a").Equal(decimal.NewFromInt(75)),
		"100 - 30 + 5 = 75")
}

func TestRegisterMovement_BalanceInicialEsCero(t *testing.T) {
	e := buildEngine(t)
	assert.True(t, e.balance(t, "wh-a").IsZero(),
		"un par sin movimientos reporta balance cero")
}

func TestRegisterMovement_SalidaSinStock_FallaYNoEscribe(t *testing.T) {
	e := buildEngine(t)
	e.mustMove(t, entity.MovementTypeIN, 10, "wh-a")

	_, err := e.register.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
		ProductID: "prod-1", WarehouseID: "wh-a",
		Type: entity.MovementTypeOUT, Quantity: decimal.NewFromInt(11),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El rechazo no deja rastro: ni en el balance ni en el histórico.
	assert.True(t, e.balance(t, "wh-a").Equal(decimal.NewFromInt(10)))
	hist, err := e.query.HistoryResponses("prod-1")
	require.NoError(t, err)
	assert.Len(t, hist, 1, "solo la entrada inicial debe estar en el log")
}

func TestRegisterMovement_Validaciones(t *testing.T) {
	e := buildEngine(t)

	_, err := e.register.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
		ProductID: "prod-1", WarehouseID: "wh-a", Type: "AJUSTE", Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido")

	_, err = e.register.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
		ProductID: "prod-1", WarehouseID: "wh-a", Type: entity.MovementTypeIN, Quantity: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = e.register.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
		ProductID: "prod-1", WarehouseID: "wh-a", Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(-3),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad negativa")

	_, err = e.register.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
		ProductID: "no-existe", WarehouseID: "wh-a", Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inexistente")

	_, err = e.register.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
		ProductID: "prod-1", WarehouseID: "no-existe", Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "bodega inexistente")
}

// Propiedad: el balance siempre es la suma con signo del histórico.
func TestRegisterMovement_BalanceEsSumaConSignoDelHistorico(t *testing.T) {
	e := buildEngine(t)
	e.mustMove(t, entity.MovementTypeIN, 50, "wh-a")
	e.mustMove(t, entity.MovementTypeOUT, 12, "wh-a")
	e.mustMove(t, entity.MovementTypeIN, 7, "wh-a")
	e.mustMove(t, entity.MovementTypeOUT, 20, "wh-a")

	suma := decimal.Zero
	for m, err := range e.query.GetHistory("prod-1") {
		require.NoError(t, err)
		suma = suma.Add(m.Signed())
	}
	assert.True(t, e.balance(t, "wh-a").Equal(suma),
		"balance %s != suma del log %s", e.balance(t, "wh-a"), suma)
}

func TestGetHistory_OrdenCronologicoYReiniciable(t *testing.T) {
	e := buildEngine(t)
	e.mustMove(t, entity.MovementTypeIN, 1, "wh-a")
	e.mustMove(t, entity.MovementTypeIN, 2, "wh-a")
	e.mustMove(t, entity.MovementTypeOUT, 1, "wh-a")

	seq := e.query.GetHistory("prod-1")

	// Primera pasada: orden ascendente de inserción.
	tipos := []string{}
	for m, err := range seq {
		require.NoError(t, err)
		tipos = append(tipos, m.Type)
	}
	assert.Equal(t, []string{"IN", "IN", "OUT"}, tipos)

	// La secuencia es reiniciable: una segunda pasada vuelve a consultar.
	n := 0
	for _, err := range seq {
		require.NoError(t, err)
		n++
	}
	assert.Equal(t, 3, n)
}

// ──────────────────────────────────────────────────────────────────────────────
// Traslados entre bodegas
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_MueveStockYCompartenGrupo(t *testing.T) {
	e := buildEngine(t)
	e.mustMove(t, entity.MovementTypeIN, 100, "wh-a")

	out, err := e.transfer.ExecuteTransfer(context.Background(), dto.TransferRequest{
		ProductID: "prod-1", SourceWarehouseID: "wh-a", TargetWarehouseID: "wh-b",
		Quantity: decimal.NewFromInt(40),
	})
	require.NoError(t, err)

	assert.True(t, e.balance(t, "wh-a").Equal(decimal.NewFromInt(60)))
	assert.True(t, e.balance(t, "wh-b").Equal(decimal.NewFromInt(40)))

	require.NotEmpty(t, out.TransferGroupID)
	assert.Equal(t, out.TransferGroupID, out.Out.TransferGroupID)
	assert.Equal(t, out.TransferGroupID, out.In.TransferGroupID)
	assert.Equal(t, entity.MovementTypeTransferOUT, out.Out.Type)
	assert.Equal(t, entity.MovementTypeTransferIN, out.In.Type)
}

func TestTransfer_IdaYVueltaRestauraBalances(t *testing.T) {
	e := buildEngine(t)
	e.mustMove(t, entity.MovementTypeIN, 100, "wh-a")

	ctx := context.Background()
	_, err := e.transfer.ExecuteTransfer(ctx, dto.TransferRequest{
		ProductID: "prod-1", SourceWarehouseID: "wh-a", TargetWarehouseID: "wh-b",
		Quantity: decimal.NewFromInt(25),
	})
	require.NoError(t, err)
	_, err = e.transfer.ExecuteTransfer(ctx, dto.TransferRequest{
		ProductID: "prod-1", SourceWarehouseID: "wh-b", TargetWarehouseID: "wh-a",
		Quantity: decimal.NewFromInt(25),
	})
	require.NoError(t, err)

	assert.True(t, e.balance(t, "wh-a").Equal(decimal.NewFromInt(100)))
	assert.True(t, e.balance(t, "wh-b").IsZero())
}

func TestTransfer_SinStockEnOrigen_NoDejaEstadoParcial(t *testing.T) {
	e := buildEngine(t)
	e.mustMove(t, entity.MovementTypeIN, 10, "wh-a")

	_, err := e.transfer.ExecuteTransfer(context.Background(), dto.TransferRequest{
		ProductID: "prod-1", SourceWarehouseID: "wh-a", TargetWarehouseID: "wh-b",
		Quantity: decimal.NewFromInt(11),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Ninguna pata se aplicó.
	assert.True(t, e.balance(t, "wh-a").Equal(decimal.NewFromInt(10)))
	assert.True(t, e.balance(t, "wh-b").IsZero())
	hist, err := e.query.HistoryResponses("prod-1")
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}

func TestTransfer_MismaBodega_Rechazado(t *testing.T) {
	e := buildEngine(t)
	_, err := e.transfer.ExecuteTransfer(context.Background(), dto.TransferRequest{
		ProductID: "prod-1", SourceWarehouseID: "wh-a", TargetWarehouseID: "wh-a",
		Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: el check-then-write nunca sobregira
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_SalidasConcurrentes_NoSobregiran(t *testing.T) {
	e := buildEngine(t)
	e.mustMove(t, entity.MovementTypeIN, 30, "wh-a")

	const intentos = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	exitosos := 0

	for i := 0; i < intentos; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.register.RegisterMovement(context.Background(), dto.RegisterMovementRequest{
				ProductID: "prod-1", WarehouseID: "wh-a",
				Type: entity.MovementTypeOUT, Quantity: decimal.NewFromInt(1),
			})
			if err == nil {
				mu.Lock()
				exitosos++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 30, exitosos, "solo caben 30 salidas de 1 con balance 30")
	assert.True(t, e.balance(t, "wh-a").IsZero())
}

func TestTransfer_SentidosOpuestosConcurrentes_SinAbrazoMortal(t *testing.T) {
	e := buildEngine(t)
	e.mustMove(t, entity.MovementTypeIN, 100, "wh-a")
	e.mustMove(t, entity.MovementTypeIN, 100, "wh-b")

	// Traslados cruzados entre el mismo par de bodegas: el orden global de
	// adquisición evita que se abracen; todos deben terminar.
	const rondas = 20
	var wg sync.WaitGroup
	for i := 0; i < rondas; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := e.transfer.ExecuteTransfer(context.Background(), dto.TransferRequest{
				ProductID: "prod-1", SourceWarehouseID: "wh-a", TargetWarehouseID: "wh-b",
				Quantity: decimal.NewFromInt(1),
			})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := e.transfer.ExecuteTransfer(context.Background(), dto.TransferRequest{
				ProductID: "prod-1", SourceWarehouseID: "wh-b", TargetWarehouseID: "wh-a",
				Quantity: decimal.NewFromInt(1),
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Mismo número de traslados en cada sentido: los balances no cambian.
	assert.True(t, e.balance(t, "wh-a").Equal(decimal.NewFromInt(100)))
	assert.True(t, e.balance(t, "wh-b").Equal(decimal.NewFromInt(100)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas de overview
// ──────────────────────────────────────────────────────────────────────────────

func TestGetOverview_SoloProductosConMovimientos(t *testing.T) {
	e := buildEngine(t)
	e.mustMove(t, entity.MovementTypeIN, 15, "wh-a")

	resumen, err := e.query.GetOverview("wh-a")
	require.NoError(t, err)
	require.Len(t, resumen, 1)
	assert.Equal(t, "prod-1", resumen[0].ProductID)
	assert.Equal(t, "SKU-1", resumen[0].SKU)
	assert.True(t, resumen[0].Quantity.Equal(decimal.NewFromInt(15)))

	vacio, err := e.query.GetOverview("wh-b")
	require.NoError(t, err)
	assert.Empty(t, vacio)

	_, err = e.query.GetOverview("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetGlobalOverview_SumaEntreBodegas(t *testing.T) {
	e := buildEngine(t)
	e.mustMove(t, entity.MovementTypeIN, 10, "wh-a")
	e.mustMove(t, entity.MovementTypeIN, 4, "wh-b")

	resumen, err := e.query.GetGlobalOverview()
	require.NoError(t, err)
	require.Len(t, resumen, 1)
	assert.True(t, resumen[0].Quantity.Equal(decimal.NewFromInt(14)))
}
