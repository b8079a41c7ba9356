package repository

import "github.com/modus-erp/modus-api/internal/domain/entity"

// CustomerRepository puerto de persistencia para clientes/proveedores.
// GetByID devuelve (nil, nil) si el tercero no existe.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	Update(customer *entity.Customer) error
	List() ([]*entity.Customer, error)
	Count() (int64, error)
}
