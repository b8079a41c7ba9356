package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/modus-erp/modus-api/internal/application/dto"
	"github.com/modus-erp/modus-api/internal/application/offer"
)

// OfferHandler maneja las peticiones HTTP del workflow de ofertas.
type OfferHandler struct {
	uc *offer.OfferUseCase
}

// NewOfferHandler construye el handler.
func NewOfferHandler(uc *offer.OfferUseCase) *OfferHandler {
	return &OfferHandler{uc: uc}
}

// Create godoc
// @Summary      Crear oferta directa (en borrador)
// @Tags         offers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOfferRequest  true  "Datos de la oferta"
// @Success      201   {object}  dto.OfferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/offers [post]
func (h *OfferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOfferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateFromDemand godoc
// @Summary      Crear oferta desde una demanda procesada
// @Tags         offers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOfferFromDemandRequest  true  "Demanda de origen y cliente"
// @Success      201   {object}  dto.OfferResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "la demanda no está en PROCESSED"
// @Router       /api/v1/offers/from-demand [post]
func (h *OfferHandler) CreateFromDemand(c *fiber.Ctx) error {
	var in dto.CreateOfferFromDemandRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateFromDemand(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener oferta por ID
// @Tags         offers
// @Produce      json
// @Param        id   path  string  true  "ID de la oferta"
// @Success      200  {object}  dto.OfferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/offers/{id} [get]
func (h *OfferHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ofertas
// @Tags         offers
// @Produce      json
// @Success      200  {array}  dto.OfferResponse
// @Router       /api/v1/offers [get]
func (h *OfferHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateItem godoc
// @Summary      Editar línea de una oferta en borrador
// @Tags         offers
// @Accept       json
// @Produce      json
// @Param        id       path  string  true  "ID de la oferta"
// @Param        item_id  path  string  true  "ID de la línea"
// @Param        body     body  dto.UpdateOfferItemRequest  true  "Campos a actualizar"
// @Success      200  {object}  dto.OfferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "la oferta ya no está en borrador"
// @Router       /api/v1/offers/{id}/items/{item_id} [put]
func (h *OfferHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateOfferItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateItem(c.Params("id"), c.Params("item_id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Send godoc
// @Summary      Enviar oferta (DRAFT -> SENT)
// @Tags         offers
// @Produce      json
// @Param        id   path  string  true  "ID de la oferta"
// @Success      200  {object}  dto.OfferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "transición no permitida"
// @Router       /api/v1/offers/{id}/send [post]
func (h *OfferHandler) Send(c *fiber.Ctx) error {
	out, err := h.uc.Send(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Accept godoc
// @Summary      Aceptar oferta (SENT -> ACCEPTED)
// @Tags         offers
// @Produce      json
// @Param        id   path  string  true  "ID de la oferta"
// @Success      200  {object}  dto.OfferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "transición no permitida"
// @Router       /api/v1/offers/{id}/accept [post]
func (h *OfferHandler) Accept(c *fiber.Ctx) error {
	out, err := h.uc.Accept(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar oferta (SENT -> REJECTED)
// @Tags         offers
// @Produce      json
// @Param        id   path  string  true  "ID de la oferta"
// @Success      200  {object}  dto.OfferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "transición no permitida"
// @Router       /api/v1/offers/{id}/reject [post]
func (h *OfferHandler) Reject(c *fiber.Ctx) error {
	out, err := h.uc.Reject(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
