package repository

import "github.com/modus-erp/modus-api/internal/domain/entity"

// ProductRepository puerto de persistencia para productos.
// GetByID devuelve (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	ExistsBySKU(sku string) (bool, error)
	Update(product *entity.Product) error
	List() ([]*entity.Product, error)
	Count() (int64, error)
}
