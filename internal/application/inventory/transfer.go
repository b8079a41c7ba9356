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

// TransferUseCase ejecuta traslados atómicos de stock entre dos bodegas:
// una pata TRANSFER_OUT en origen y una TRANSFER_IN en destino, ambas con el
// mismo transfer_group_id y dentro de un único scope atómico. Un lector nunca
// ve una pata aplicada sin la otra.
type TransferUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// ExecuteTransfer valida y ejecuta el traslado. Las exclusiones de las dos
// claves se adquieren en orden lexicográfico de bodega, de modo que dos
// traslados en sentidos opuestos entre el mismo par no puedan abrazarse.
func (uc *TransferUseCase) ExecuteTransfer(ctx context.Context, in dto.TransferRequest) (*dto.TransferResponse, error) {
	if in.SourceWarehouseID == in.TargetWarehouseID {
		return nil, domain.NewValidation("target_warehouse_id", "origen y destino deben ser distintos")
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.NewValidation("quantity", "debe ser mayor que cero")
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewNotFound("producto", in.ProductID)
	}
	for _, whID := range []string{in.SourceWarehouseID, in.TargetWarehouseID} {
		wh, err := uc.warehouseRepo.GetByID(whID)
		if err != nil {
			return nil, err
		}
		if wh == nil {
			return nil, domain.NewNotFound("bodega", whID)
		}
	}

	now := time.Now()
	groupID := uuid.New().String()
	outMov := &entity.StockMovement{
		ID:              uuid.New().String(),
		ProductID:       in.ProductID,
		WarehouseID:     in.SourceWarehouseID,
		Type:            entity.MovementTypeTransferOUT,
		Quantity:        in.Quantity,
		TransferGroupID: groupID,
		Note:            in.Note,
		CreatedAt:       now,
	}
	inMov := &entity.StockMovement{
		ID:              uuid.New().String(),
		ProductID:       in.ProductID,
		WarehouseID:     in.TargetWarehouseID,
		Type:            entity.MovementTypeTransferIN,
		Quantity:        in.Quantity,
		TransferGroupID: groupID,
		Note:            in.Note,
		CreatedAt:       now,
	}

	err = uc.txRunner.Run(ctx, func(movRepo repository.StockMovementRepository, stockRepo repository.StockRepository) error {
		// Orden global fijo de adquisición: primero la bodega con ID menor.
		first, second := outMov, inMov
		if in.TargetWarehouseID < in.SourceWarehouseID {
			first, second = inMov, outMov
		}
		if _, err := stockRepo.GetForUpdate(first.ProductID, first.WarehouseID); err != nil {
			return err
		}
		if _, err := stockRepo.GetForUpdate(second.ProductID, second.WarehouseID); err != nil {
			return err
		}
		// Con ambas claves bloqueadas, la pata de salida verifica disponibilidad.
		if err := applyMovement(movRepo, stockRepo, outMov); err != nil {
			return err
		}
		return applyMovement(movRepo, stockRepo, inMov)
	})
	if err != nil {
		return nil, err
	}

	return &dto.TransferResponse{
		TransferGroupID: groupID,
		Out:             *toMovementResponse(outMov),
		In:              *toMovementResponse(inMov),
	}, nil
}
