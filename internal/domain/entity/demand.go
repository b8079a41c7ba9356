package entity

import "time"

// Estados de una demanda (solicitud interna de compra/asignación).
// DRAFT es el estado inicial; PROCESSED y CANCELLED son terminales.
const (
	DemandStatusDraft     = "DRAFT"
	DemandStatusPending   = "PENDING"
	DemandStatusProcessed = "PROCESSED"
	DemandStatusCancelled = "CANCELLED"
)

// Prioridades de una demanda.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

// ValidPriority indica si la prioridad es una de las conocidas.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// demandTransitions tabla cerrada de transiciones permitidas.
// Todo lo que no esté aquí se rechaza; las transiciones no se infieren.
var demandTransitions = map[string]map[string]bool{
	DemandStatusDraft:   {DemandStatusPending: true},
	DemandStatusPending: {DemandStatusProcessed: true, DemandStatusCancelled: true},
}

// CanDemandTransition indica si el cambio from -> to está en la tabla.
func CanDemandTransition(from, to string) bool {
	return demandTransitions[from][to]
}

// DemandItem línea de una demanda.
type DemandItem struct {
	ID        string
	ProductID string
	Quantity  int // > 0
	Note      string
}

// Demand representa una solicitud interna de compra/asignación de productos.
// Invariante: al menos una línea. Solo muta a través de las transiciones de la tabla.
type Demand struct {
	ID          string
	Title       string
	Description string
	Requester   string
	Status      string
	Priority    string
	DueDate     *time.Time
	Items       []DemandItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
