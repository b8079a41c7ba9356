package memory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modus-erp/modus-api/internal/domain/entity"
	"github.com/modus-erp/modus-api/internal/infrastructure/memory"
)

// Con timestamps idénticos el feed desempata por orden de inserción, así dos
// lecturas seguidas siempre devuelven lo mismo.
func TestDemandListRecent_EmpatesDeterministasPorInsercion(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewDemandRepository(store)

	ts := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	ids := []string{"dem-a", "dem-b", "dem-c"}
	for _, id := range ids {
		require.NoError(t, repo.Create(&entity.Demand{
			ID: id, Title: "Demanda " + id, Status: entity.DemandStatusDraft,
			Priority: entity.PriorityLow,
			Items:    []entity.DemandItem{{ID: id + "-1", ProductID: "prod-1", Quantity: 1}},
			CreatedAt: ts, UpdatedAt: ts,
		}))
	}

	primera, err := repo.ListRecent(10)
	require.NoError(t, err)
	segunda, err := repo.ListRecent(10)
	require.NoError(t, err)

	require.Len(t, primera, len(ids))
	for i := range primera {
		assert.Equal(t, ids[i], primera[i].ID, "empate resuelto por inserción")
		assert.Equal(t, primera[i].ID, segunda[i].ID, "dos lecturas coinciden")
	}
}

func TestOfferListRecent_EmpatesDeterministasPorInsercion(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewOfferRepository(store)

	ts := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	ids := []string{"off-a", "off-b", "off-c"}
	for _, id := range ids {
		require.NoError(t, repo.Create(&entity.Offer{
			ID: id, CustomerID: "cust-1", Status: entity.OfferStatusDraft,
			Currency: "USD", TotalAmount: decimal.NewFromInt(1),
			CreatedAt: ts, UpdatedAt: ts,
		}))
	}

	out, err := repo.ListRecent(10)
	require.NoError(t, err)
	require.Len(t, out, len(ids))
	for i := range out {
		assert.Equal(t, ids[i], out[i].ID, "empate resuelto por inserción")
	}
}
