package repository

import "github.com/modus-erp/modus-api/internal/domain/entity"

// DemandRepository puerto de persistencia para demandas y sus líneas.
// GetByID devuelve (nil, nil) si la demanda no existe.
type DemandRepository interface {
	// Create persiste la demanda y sus líneas de forma atómica.
	Create(demand *entity.Demand) error
	GetByID(id string) (*entity.Demand, error)
	List() ([]*entity.Demand, error)
	// UpdateStatus aplica un compare-and-swap sobre el estado almacenado:
	// solo escribe si el estado actual es from. Devuelve false si no hubo
	// coincidencia (carrera perdida contra otro escritor).
	UpdateStatus(id, from, to string) (bool, error)
	CountByStatus(status string) (int64, error)
	// ListRecent demandas con actividad reciente, la más nueva primero.
	ListRecent(limit int) ([]*entity.Demand, error)
}
