// Package customer contiene los casos de uso del directorio de terceros
// (clientes y proveedores), referenciados por las ofertas.
package customer

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/modus-erp/modus-api/internal/application/dto"
	"github.com/modus-erp/modus-api/internal/domain"
	"github.com/modus-erp/modus-api/internal/domain/entity"
	"github.com/modus-erp/modus-api/internal/domain/repository"
)

// CustomerUseCase casos de uso CRUD para terceros.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un tercero.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.NewValidation("name", "requerido")
	}
	if in.Type == "" {
		in.Type = entity.CustomerTypeCustomer
	}
	if !entity.ValidCustomerType(in.Type) {
		return nil, domain.NewValidation("type", "debe ser CUSTOMER, SUPPLIER o BOTH")
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Type:      in.Type,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		TaxID:     in.TaxID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un tercero por ID.
func (uc *CustomerUseCase) GetByID(id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.NewNotFound("cliente", id)
	}
	return toCustomerResponse(customer), nil
}

// Update actualiza campos de un tercero.
func (uc *CustomerUseCase) Update(id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.NewNotFound("cliente", id)
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.NewValidation("name", "no puede quedar vacío")
		}
		customer.Name = *in.Name
	}
	if in.Type != nil {
		if !entity.ValidCustomerType(*in.Type) {
			return nil, domain.NewValidation("type", "debe ser CUSTOMER, SUPPLIER o BOTH")
		}
		customer.Type = *in.Type
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Address != nil {
		customer.Address = *in.Address
	}
	if in.TaxID != nil {
		customer.TaxID = *in.TaxID
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List lista todos los terceros.
func (uc *CustomerUseCase) List() ([]dto.CustomerResponse, error) {
	customers, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, *toCustomerResponse(c))
	}
	return out, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Type:      c.Type,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		TaxID:     c.TaxID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
