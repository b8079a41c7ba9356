package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockItemDTO balance por debajo del umbral de alerta.
type LowStockItemDTO struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	SKU           string          `json:"sku"`
	WarehouseID   string          `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	Quantity      decimal.Decimal `json:"quantity"`
}

// ActivityDTO entrada del feed de actividad reciente.
type ActivityDTO struct {
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// DashboardResponse resumen del dashboard. Derivado, nunca muta estado.
type DashboardResponse struct {
	TotalProducts           int64             `json:"total_products"`
	TotalCustomers          int64             `json:"total_customers"`
	PendingDemands          int64             `json:"pending_demands"`
	TotalAcceptedOfferValue decimal.Decimal   `json:"total_accepted_offer_value"`
	LowStockItems           []LowStockItemDTO `json:"low_stock_items"`
	RecentActivities        []ActivityDTO     `json:"recent_activities"`
}
