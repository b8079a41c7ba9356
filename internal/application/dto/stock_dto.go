package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/v1/stock/movements.
type RegisterMovementRequest struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Type        string          `json:"type"` // IN, OUT, TRANSFER_IN, TRANSFER_OUT
	Quantity    decimal.Decimal `json:"quantity"`
	Note        string          `json:"note,omitempty"`
}

// TransferRequest body para POST /api/v1/stock/transfers.
type TransferRequest struct {
	ProductID         string          `json:"product_id"`
	SourceWarehouseID string          `json:"source_warehouse_id"`
	TargetWarehouseID string          `json:"target_warehouse_id"`
	Quantity          decimal.Decimal `json:"quantity"`
	Note              string          `json:"note,omitempty"`
}

// MovementResponse salida de un movimiento de stock.
type MovementResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	WarehouseID     string          `json:"warehouse_id"`
	Type            string          `json:"type"`
	Quantity        decimal.Decimal `json:"quantity"`
	TransferGroupID string          `json:"transfer_group_id,omitempty"`
	Note            string          `json:"note,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TransferResponse salida de un traslado: las dos patas comparten el grupo.
type TransferResponse struct {
	TransferGroupID string           `json:"transfer_group_id"`
	Out             MovementResponse `json:"out"`
	In              MovementResponse `json:"in"`
}

// StockSummaryResponse balance de un producto en una bodega.
type StockSummaryResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// BalanceResponse balance puntual de (producto, bodega).
type BalanceResponse struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}
