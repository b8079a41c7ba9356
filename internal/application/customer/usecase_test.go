package customer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modus-erp/modus-api/internal/application/customer"
	"github.com/modus-erp/modus-api/internal/application/dto"
	"github.com/modus-erp/modus-api/internal/domain"
	"github.com/modus-erp/modus-api/internal/domain/entity"
	"github.com/modus-erp/modus-api/internal/infrastructure/memory"
)

func buildCustomerUC(t *testing.T) *customer.CustomerUseCase {
	t.Helper()
	return customer.NewCustomerUseCase(memory.NewCustomerRepository(memory.NewStore()))
}

func TestCustomerCreate_TipoPorDefecto(t *testing.T) {
	uc := buildCustomerUC(t)

	out, err := uc.Create(dto.CreateCustomerRequest{Name: "Ferretería El Martillo"})
	require.NoError(t, err)
	assert.Equal(t, entity.CustomerTypeCustomer, out.Type)
	assert.NotEmpty(t, out.ID)
}

func TestCustomerCreate_Validaciones(t *testing.T) {
	uc := buildCustomerUC(t)

	_, err := uc.Create(dto.CreateCustomerRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nombre requerido")

	_, err = uc.Create(dto.CreateCustomerRequest{Name: "X", Type: "PARTNER"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido")
}

func TestCustomerCreate_EmailDuplicado_Conflict(t *testing.T) {
	uc := buildCustomerUC(t)

	_, err := uc.Create(dto.CreateCustomerRequest{Name: "Uno", Email: "compras@acme.co"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateCustomerRequest{Name: "Dos", Email: "compras@acme.co"})
	assert.ErrorIs(t, err, domain.ErrConflict, "el email identifica al tercero")

	// Dos terceros sin email conviven sin problema.
	_, err = uc.Create(dto.CreateCustomerRequest{Name: "Tres"})
	require.NoError(t, err)
	_, err = uc.Create(dto.CreateCustomerRequest{Name: "Cuatro"})
	require.NoError(t, err)
}

func TestCustomerUpdate_CamposOpcionales(t *testing.T) {
	uc := buildCustomerUC(t)
	out, err := uc.Create(dto.CreateCustomerRequest{Name: "Uno", Type: entity.CustomerTypeSupplier})
	require.NoError(t, err)

	phone := "+57 300 000 0000"
	tipo := entity.CustomerTypeBoth
	actualizado, err := uc.Update(out.ID, dto.UpdateCustomerRequest{Phone: &phone, Type: &tipo})
	require.NoError(t, err)
	assert.Equal(t, phone, actualizado.Phone)
	assert.Equal(t, entity.CustomerTypeBoth, actualizado.Type)
	assert.Equal(t, "Uno", actualizado.Name, "los campos no enviados no cambian")

	_, err = uc.Update("no-existe", dto.UpdateCustomerRequest{Phone: &phone})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
