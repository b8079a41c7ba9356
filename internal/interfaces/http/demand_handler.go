package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/modus-erp/modus-api/internal/application/demand"
	"github.com/modus-erp/modus-api/internal/application/dto"
)

// DemandHandler maneja las peticiones HTTP del workflow de demandas.
type DemandHandler struct {
	uc *demand.DemandUseCase
}

// NewDemandHandler construye el handler.
func NewDemandHandler(uc *demand.DemandUseCase) *DemandHandler {
	return &DemandHandler{uc: uc}
}

// Create godoc
// @Summary      Crear demanda (en borrador)
// @Tags         demands
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDemandRequest  true  "Datos de la demanda"
// @Success      201   {object}  dto.DemandResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/demands [post]
func (h *DemandHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDemandRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener demanda por ID
// @Tags         demands
// @Produce      json
// @Param        id   path  string  true  "ID de la demanda"
// @Success      200  {object}  dto.DemandResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/demands/{id} [get]
func (h *DemandHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar demandas
// @Tags         demands
// @Produce      json
// @Success      200  {array}  dto.DemandResponse
// @Router       /api/v1/demands [get]
func (h *DemandHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Enviar demanda a revisión (DRAFT -> PENDING)
// @Tags         demands
// @Produce      json
// @Param        id   path  string  true  "ID de la demanda"
// @Success      200  {object}  dto.DemandResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "transición no permitida"
// @Router       /api/v1/demands/{id}/submit [post]
func (h *DemandHandler) Submit(c *fiber.Ctx) error {
	out, err := h.uc.Submit(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar demanda (PENDING -> PROCESSED)
// @Tags         demands
// @Produce      json
// @Param        id   path  string  true  "ID de la demanda"
// @Success      200  {object}  dto.DemandResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "transición no permitida"
// @Router       /api/v1/demands/{id}/approve [post]
func (h *DemandHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar demanda (PENDING -> CANCELLED)
// @Tags         demands
// @Produce      json
// @Param        id   path  string  true  "ID de la demanda"
// @Success      200  {object}  dto.DemandResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "transición no permitida"
// @Router       /api/v1/demands/{id}/reject [post]
func (h *DemandHandler) Reject(c *fiber.Ctx) error {
	out, err := h.uc.Reject(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
