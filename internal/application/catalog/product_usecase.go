// Package catalog contiene los casos de uso del catálogo de referencia:
// productos y bodegas.
package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/modus-erp/modus-api/internal/application/dto"
	"github.com/modus-erp/modus-api/internal/domain"
	"github.com/modus-erp/modus-api/internal/domain/entity"
	"github.com/modus-erp/modus-api/internal/domain/repository"
)

// ProductUseCase casos de uso para productos del catálogo.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto. SKU único; precio de lista no negativo.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if strings.TrimSpace(in.SKU) == "" {
		return nil, domain.NewValidation("sku", "requerido")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.NewValidation("name", "requerido")
	}
	if strings.TrimSpace(in.Unit) == "" {
		return nil, domain.NewValidation("unit", "requerido")
	}
	if in.UnitPrice.LessThan(decimal.Zero) {
		return nil, domain.NewValidation("unit_price", "no puede ser negativo")
	}

	exists, err := uc.repo.ExistsBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewConflict("el SKU " + in.SKU + " ya existe")
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Unit:        in.Unit,
		UnitPrice:   in.UnitPrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewNotFound("producto", id)
	}
	return toProductResponse(product), nil
}

// Update actualiza campos del producto. Un cambio de precio no reescribe
// ofertas existentes: sus líneas conservan el precio snapshot.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewNotFound("producto", id)
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.NewValidation("name", "no puede quedar vacío")
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Unit != nil {
		if strings.TrimSpace(*in.Unit) == "" {
			return nil, domain.NewValidation("unit", "no puede quedar vacío")
		}
		product.Unit = *in.Unit
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.NewValidation("unit_price", "no puede ser negativo")
		}
		product.UnitPrice = *in.UnitPrice
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista todos los productos.
func (uc *ProductUseCase) List() ([]dto.ProductResponse, error) {
	products, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Unit:        p.Unit,
		UnitPrice:   p.UnitPrice,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
