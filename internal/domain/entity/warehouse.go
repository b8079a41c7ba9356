package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario.
// No se elimina: el ciclo de vida es soft vía el flag Active.
type Warehouse struct {
	ID        string
	Name      string
	Location  string
	Active    bool
	CreatedAt time.Time
}
