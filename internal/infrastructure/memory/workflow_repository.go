package memory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/modus-erp/modus-api/internal/domain/entity"
	"github.com/modus-erp/modus-api/internal/domain/repository"
)

// DemandRepository repositorio de demandas en memoria.
// UpdateStatus ejecuta el compare-and-swap bajo el lock del Store, así dos
// transiciones concurrentes sobre la misma demanda nunca ganan ambas.
type DemandRepository struct {
	store *Store
}

// NewDemandRepository construye el repositorio.
func NewDemandRepository(store *Store) *DemandRepository {
	return &DemandRepository{store: store}
}

var _ repository.DemandRepository = (*DemandRepository)(nil)

func (r *DemandRepository) Create(demand *entity.Demand) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.demands[demand.ID] = copyDemand(demand)
	r.store.demandSeq = append(r.store.demandSeq, demand.ID)
	return nil
}

func (r *DemandRepository) GetByID(id string) (*entity.Demand, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	d, ok := r.store.demands[id]
	if !ok {
		return nil, nil
	}
	return copyDemand(d), nil
}

func (r *DemandRepository) List() ([]*entity.Demand, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]*entity.Demand, 0, len(r.store.demandSeq))
	for _, id := range r.store.demandSeq {
		out = append(out, copyDemand(r.store.demands[id]))
	}
	return out, nil
}

func (r *DemandRepository) UpdateStatus(id, from, to string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	d, ok := r.store.demands[id]
	if !ok || d.Status != from {
		return false, nil
	}
	d.Status = to
	d.UpdatedAt = time.Now()
	return true, nil
}

func (r *DemandRepository) CountByStatus(status string) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var n int64
	for _, d := range r.store.demands {
		if d.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *DemandRepository) ListRecent(limit int) ([]*entity.Demand, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	// Se recorre la secuencia de inserción y el sort es estable: con
	// timestamps iguales el orden queda determinista.
	out := make([]*entity.Demand, 0, len(r.store.demandSeq))
	for _, id := range r.store.demandSeq {
		out = append(out, copyDemand(r.store.demands[id]))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// OfferRepository repositorio de ofertas en memoria.
type OfferRepository struct {
	store *Store
}

// NewOfferRepository construye el repositorio.
func NewOfferRepository(store *Store) *OfferRepository {
	return &OfferRepository{store: store}
}

var _ repository.OfferRepository = (*OfferRepository)(nil)

func (r *OfferRepository) Create(offer *entity.Offer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.offers[offer.ID] = copyOffer(offer)
	r.store.offerSeq = append(r.store.offerSeq, offer.ID)
	return nil
}

func (r *OfferRepository) GetByID(id string) (*entity.Offer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	o, ok := r.store.offers[id]
	if !ok {
		return nil, nil
	}
	return copyOffer(o), nil
}

func (r *OfferRepository) List() ([]*entity.Offer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]*entity.Offer, 0, len(r.store.offerSeq))
	for _, id := range r.store.offerSeq {
		out = append(out, copyOffer(r.store.offers[id]))
	}
	return out, nil
}

func (r *OfferRepository) UpdateStatus(id, from, to string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.offers[id]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	o.UpdatedAt = time.Now()
	return true, nil
}

// ReplaceItemsIfDraft el check de estado y el reemplazo de líneas van bajo el
// mismo lock: si la oferta salió de DRAFT en el medio, no se escribe nada.
func (r *OfferRepository) ReplaceItemsIfDraft(offer *entity.Offer) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.offers[offer.ID]
	if !ok || stored.Status != entity.OfferStatusDraft {
		return false, nil
	}
	stored.Items = append([]entity.OfferItem(nil), offer.Items...)
	stored.TotalAmount = offer.TotalAmount
	stored.UpdatedAt = time.Now()
	return true, nil
}

func (r *OfferRepository) SumTotalByStatus(status string) (decimal.Decimal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	total := decimal.Zero
	for _, o := range r.store.offers {
		if o.Status == status {
			total = total.Add(o.TotalAmount)
		}
	}
	return total, nil
}

func (r *OfferRepository) ListRecent(limit int) ([]*entity.Offer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	// Igual que en demandas: secuencia de inserción + sort estable.
	out := make([]*entity.Offer, 0, len(r.store.offerSeq))
	for _, id := range r.store.offerSeq {
		out = append(out, copyOffer(r.store.offers[id]))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
