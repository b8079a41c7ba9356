package repository

import "github.com/modus-erp/modus-api/internal/domain/entity"

// WarehouseRepository puerto de persistencia para bodegas.
// GetByID devuelve (nil, nil) si la bodega no existe.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	List() ([]*entity.Warehouse, error)
}
