// Package inventory contiene el motor de stock: registro de movimientos,
// traslados atómicos entre bodegas y las consultas derivadas del log.
package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/modus-erp/modus-api/internal/application/dto"
	"github.com/modus-erp/modus-api/internal/domain"
	"github.com/modus-erp/modus-api/internal/domain/entity"
	"github.com/modus-erp/modus-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de stock de forma transaccional.
// El check de disponibilidad para salidas y el append del movimiento ocurren
// bajo la exclusión de la clave (producto, bodega), así dos salidas
// concurrentes no pueden sobregirar el balance entre el check y la escritura.
type RegisterMovementUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// RegisterMovement valida, adquiere la exclusión de la clave y aplica el
// movimiento: para OUT/TRANSFER_OUT verifica disponibilidad y falla con
// InsufficientStock sin escribir nada; si pasa, agrega el movimiento al log y
// actualiza el balance en el mismo scope atómico.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	if !entity.ValidMovementType(in.Type) {
		return nil, domain.NewValidation("type", "debe ser IN, OUT, TRANSFER_IN o TRANSFER_OUT")
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.NewValidation("quantity", "debe ser mayor que cero")
	}
	if err := uc.checkRefs(in.ProductID, in.WarehouseID); err != nil {
		return nil, err
	}

	mov := &entity.StockMovement{
		ID:          uuid.New().String(),
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Note:        in.Note,
		CreatedAt:   time.Now(),
	}

	err := uc.txRunner.Run(ctx, func(movRepo repository.StockMovementRepository, stockRepo repository.StockRepository) error {
		return applyMovement(movRepo, stockRepo, mov)
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(mov), nil
}

func (uc *RegisterMovementUseCase) checkRefs(productID, warehouseID string) error {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.NewNotFound("producto", productID)
	}
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.NewNotFound("bodega", warehouseID)
	}
	return nil
}

// applyMovement aplica un movimiento ya validado dentro del scope atómico:
// bloquea la clave, verifica disponibilidad si resta, y escribe log + balance.
// Compartido entre RegisterMovement y las dos patas de un traslado.
func applyMovement(movRepo repository.StockMovementRepository, stockRepo repository.StockRepository, mov *entity.StockMovement) error {
	stock, err := stockRepo.GetForUpdate(mov.ProductID, mov.WarehouseID)
	if err != nil {
		return err
	}
	if entity.ReducesStock(mov.Type) && stock.Quantity.LessThan(mov.Quantity) {
		return &domain.InsufficientStockError{
			ProductID:   mov.ProductID,
			WarehouseID: mov.WarehouseID,
			Requested:   mov.Quantity,
			Available:   stock.Quantity,
		}
	}
	stock.Quantity = stock.Quantity.Add(mov.Signed())
	stock.UpdatedAt = mov.CreatedAt
	if err := stockRepo.Upsert(stock); err != nil {
		return err
	}
	return movRepo.Create(mov)
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:              m.ID,
		ProductID:       m.ProductID,
		WarehouseID:     m.WarehouseID,
		Type:            m.Type,
		Quantity:        m.Quantity,
		TransferGroupID: m.TransferGroupID,
		Note:            m.Note,
		CreatedAt:       m.CreatedAt,
	}
}
