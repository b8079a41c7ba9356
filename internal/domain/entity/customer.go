package entity

import "time"

// Tipos de tercero.
const (
	CustomerTypeCustomer = "CUSTOMER"
	CustomerTypeSupplier = "SUPPLIER"
	CustomerTypeBoth     = "BOTH"
)

// ValidCustomerType indica si el tipo es uno de los conocidos.
func ValidCustomerType(t string) bool {
	switch t {
	case CustomerTypeCustomer, CustomerTypeSupplier, CustomerTypeBoth:
		return true
	}
	return false
}

// Customer representa un cliente o proveedor al que se le pueden emitir ofertas.
type Customer struct {
	ID        string
	Name      string
	Type      string // CUSTOMER, SUPPLIER, BOTH
	Email     string
	Phone     string
	Address   string
	TaxID     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
