package repository

import "github.com/modus-erp/modus-api/internal/domain/entity"

// StockMovementRepository puerto del log de movimientos.
// El log es append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	// ListByProduct devuelve los movimientos del producto en orden cronológico
	// ascendente; los empates se resuelven por orden de inserción.
	ListByProduct(productID string) ([]*entity.StockMovement, error)
	// ListRecent devuelve los últimos movimientos, el más nuevo primero.
	ListRecent(limit int) ([]*entity.StockMovement, error)
}
