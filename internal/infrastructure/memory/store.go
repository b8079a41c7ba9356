// Package memory implementa los puertos de persistencia sobre estructuras en
// memoria. Se usa con STORE_DRIVER=memory (demos, tests): mismo contrato que
// el driver PostgreSQL, con una arena de mutex por clave (producto, bodega)
// como mecanismo de exclusión para el motor de stock.
package memory

import (
	"sync"

	"github.com/modus-erp/modus-api/internal/domain/entity"
)

// Store estado compartido de todos los repositorios en memoria.
// mu protege las colecciones; la arena keyLocks serializa el check-then-write
// del motor de stock por clave (producto, bodega).
type Store struct {
	mu         sync.RWMutex
	products   map[string]*entity.Product
	warehouses map[string]*entity.Warehouse
	customers  map[string]*entity.Customer
	movements  []*entity.StockMovement
	stock      map[string]*entity.Stock
	demands    map[string]*entity.Demand
	offers     map[string]*entity.Offer
	demandSeq  []string // orden de inserción para listados estables
	offerSeq   []string

	keyLocks sync.Map // clave stock -> *sync.Mutex
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		products:   map[string]*entity.Product{},
		warehouses: map[string]*entity.Warehouse{},
		customers:  map[string]*entity.Customer{},
		stock:      map[string]*entity.Stock{},
		demands:    map[string]*entity.Demand{},
		offers:     map[string]*entity.Offer{},
	}
}

func stockKey(productID, warehouseID string) string {
	return productID + "|" + warehouseID
}

// keyLock devuelve el mutex de la clave, creándolo si no existe.
func (s *Store) keyLock(key string) *sync.Mutex {
	l, _ := s.keyLocks.LoadOrStore(key, &sync.Mutex{})
	return l.(*sync.Mutex)
}

// ── copias defensivas: los repos nunca entregan punteros internos ─────────────

func copyProduct(p *entity.Product) *entity.Product {
	cp := *p
	return &cp
}

func copyWarehouse(w *entity.Warehouse) *entity.Warehouse {
	cw := *w
	return &cw
}

func copyCustomer(c *entity.Customer) *entity.Customer {
	cc := *c
	return &cc
}

func copyStock(s *entity.Stock) *entity.Stock {
	cs := *s
	return &cs
}

func copyMovement(m *entity.StockMovement) *entity.StockMovement {
	cm := *m
	return &cm
}

func copyDemand(d *entity.Demand) *entity.Demand {
	cd := *d
	cd.Items = append([]entity.DemandItem(nil), d.Items...)
	if d.DueDate != nil {
		due := *d.DueDate
		cd.DueDate = &due
	}
	return &cd
}

func copyOffer(o *entity.Offer) *entity.Offer {
	co := *o
	co.Items = append([]entity.OfferItem(nil), o.Items...)
	if o.ValidUntil != nil {
		valid := *o.ValidUntil
		co.ValidUntil = &valid
	}
	return &co
}
