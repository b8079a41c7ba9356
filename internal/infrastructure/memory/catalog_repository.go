package memory

import (
	"sort"

	"github.com/modus-erp/modus-api/internal/domain"
	"github.com/modus-erp/modus-api/internal/domain/entity"
	"github.com/modus-erp/modus-api/internal/domain/repository"
)

// ProductRepository repositorio de productos en memoria.
type ProductRepository struct {
	store *Store
}

// NewProductRepository construye el repositorio.
func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

// Create falla con Conflict si el SKU ya existe; el check y la escritura van
// bajo el mismo lock para imitar la restricción única de la base.
func (r *ProductRepository) Create(product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.products {
		if p.SKU == product.SKU {
			return domain.NewConflict("ya existe un producto con SKU " + product.SKU)
		}
	}
	r.store.products[product.ID] = copyProduct(product)
	return nil
}

func (r *ProductRepository) GetByID(id string) (*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	return copyProduct(p), nil
}

func (r *ProductRepository) ExistsBySKU(sku string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, p := range r.store.products {
		if p.SKU == sku {
			return true, nil
		}
	}
	return false, nil
}

func (r *ProductRepository) Update(product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.products[product.ID]; !ok {
		return domain.NewNotFound("producto", product.ID)
	}
	r.store.products[product.ID] = copyProduct(product)
	return nil
}

func (r *ProductRepository) List() ([]*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]*entity.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		out = append(out, copyProduct(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *ProductRepository) Count() (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return int64(len(r.store.products)), nil
}

// WarehouseRepository repositorio de bodegas en memoria.
type WarehouseRepository struct {
	store *Store
}

// NewWarehouseRepository construye el repositorio.
func NewWarehouseRepository(store *Store) *WarehouseRepository {
	return &WarehouseRepository{store: store}
}

var _ repository.WarehouseRepository = (*WarehouseRepository)(nil)

func (r *WarehouseRepository) Create(warehouse *entity.Warehouse) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.warehouses[warehouse.ID] = copyWarehouse(warehouse)
	return nil
}

func (r *WarehouseRepository) GetByID(id string) (*entity.Warehouse, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	w, ok := r.store.warehouses[id]
	if !ok {
		return nil, nil
	}
	return copyWarehouse(w), nil
}

func (r *WarehouseRepository) Update(warehouse *entity.Warehouse) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.warehouses[warehouse.ID]; !ok {
		return domain.NewNotFound("bodega", warehouse.ID)
	}
	r.store.warehouses[warehouse.ID] = copyWarehouse(warehouse)
	return nil
}

func (r *WarehouseRepository) List() ([]*entity.Warehouse, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]*entity.Warehouse, 0, len(r.store.warehouses))
	for _, w := range r.store.warehouses {
		out = append(out, copyWarehouse(w))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// CustomerRepository repositorio de terceros en memoria.
type CustomerRepository struct {
	store *Store
}

// NewCustomerRepository construye el repositorio.
func NewCustomerRepository(store *Store) *CustomerRepository {
	return &CustomerRepository{store: store}
}

var _ repository.CustomerRepository = (*CustomerRepository)(nil)

func (r *CustomerRepository) Create(customer *entity.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if customer.Email != "" {
		for _, c := range r.store.customers {
			if c.Email == customer.Email {
				return domain.NewConflict("ya existe un tercero con ese email")
			}
		}
	}
	r.store.customers[customer.ID] = copyCustomer(customer)
	return nil
}

func (r *CustomerRepository) GetByID(id string) (*entity.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	c, ok := r.store.customers[id]
	if !ok {
		return nil, nil
	}
	return copyCustomer(c), nil
}

func (r *CustomerRepository) Update(customer *entity.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.customers[customer.ID]; !ok {
		return domain.NewNotFound("cliente", customer.ID)
	}
	if customer.Email != "" {
		for _, c := range r.store.customers {
			if c.ID != customer.ID && c.Email == customer.Email {
				return domain.NewConflict("ya existe un tercero con ese email")
			}
		}
	}
	r.store.customers[customer.ID] = copyCustomer(customer)
	return nil
}

func (r *CustomerRepository) List() ([]*entity.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]*entity.Customer, 0, len(r.store.customers))
	for _, c := range r.store.customers {
		out = append(out, copyCustomer(c))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *CustomerRepository) Count() (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return int64(len(r.store.customers)), nil
}
