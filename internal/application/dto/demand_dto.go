package dto

import "time"

// DemandItemRequest línea de una demanda nueva.
type DemandItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note,omitempty"`
}

// CreateDemandRequest entrada para crear una demanda.
type CreateDemandRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Requester   string              `json:"requester,omitempty"`
	Priority    string              `json:"priority"` // LOW, MEDIUM, HIGH
	DueDate     *time.Time          `json:"due_date,omitempty"`
	Items       []DemandItemRequest `json:"items"`
}

// DemandItemResponse línea de una demanda.
type DemandItemResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note,omitempty"`
}

// DemandResponse salida de una demanda.
type DemandResponse struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	Requester   string               `json:"requester,omitempty"`
	Status      string               `json:"status"`
	Priority    string               `json:"priority"`
	DueDate     *time.Time           `json:"due_date,omitempty"`
	Items       []DemandItemResponse `json:"items"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}
