package inventory

import (
	"context"

	"github.com/modus-erp/modus-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de un scope atómico del almacén,
// pasando repositorios atados a ese scope. Garantiza que el append al log de
// movimientos y la actualización del balance se vean juntos o no se vean.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
	) error) error
}
