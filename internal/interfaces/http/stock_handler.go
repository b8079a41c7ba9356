package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/modus-erp/modus-api/internal/application/dto"
	"github.com/modus-erp/modus-api/internal/application/inventory"
)

// StockHandler maneja las peticiones HTTP del motor de stock: movimientos,
// traslados y consultas de balance e histórico.
type StockHandler struct {
	registerUC *inventory.RegisterMovementUseCase
	transferUC *inventory.TransferUseCase
	queryUC    *inventory.StockQueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(
	registerUC *inventory.RegisterMovementUseCase,
	transferUC *inventory.TransferUseCase,
	queryUC *inventory.StockQueryUseCase,
) *StockHandler {
	return &StockHandler{registerUC: registerUC, transferUC: transferUC, queryUC: queryUC}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente"
// @Router       /api/v1/stock/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.registerUC.RegisterMovement(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Transfer godoc
// @Summary      Trasladar stock entre bodegas
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "Traslado"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente en origen"
// @Router       /api/v1/stock/transfers [post]
func (h *StockHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.transferUC.ExecuteTransfer(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetBalance godoc
// @Summary      Balance de un producto en una bodega
// @Tags         stock
// @Produce      json
// @Param        product_id    path  string  true  "ID del producto"
// @Param        warehouse_id  path  string  true  "ID de la bodega"
// @Success      200  {object}  dto.BalanceResponse
// @Router       /api/v1/stock/balance/{product_id}/{warehouse_id} [get]
func (h *StockHandler) GetBalance(c *fiber.Ctx) error {
	out, err := h.queryUC.GetBalance(c.Params("product_id"), c.Params("warehouse_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetHistory godoc
// @Summary      Histórico de movimientos de un producto
// @Tags         stock
// @Produce      json
// @Param        product_id  path  string  true  "ID del producto"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/v1/stock/history/{product_id} [get]
func (h *StockHandler) GetHistory(c *fiber.Ctx) error {
	out, err := h.queryUC.HistoryResponses(c.Params("product_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetOverview godoc
// @Summary      Balances por producto de una bodega
// @Tags         stock
// @Produce      json
// @Param        warehouse_id  path  string  true  "ID de la bodega"
// @Success      200  {array}  dto.StockSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/stock/overview/{warehouse_id} [get]
func (h *StockHandler) GetOverview(c *fiber.Ctx) error {
	out, err := h.queryUC.GetOverview(c.Params("warehouse_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetGlobalOverview godoc
// @Summary      Balances por producto sumados en todas las bodegas
// @Tags         stock
// @Produce      json
// @Success      200  {array}  dto.StockSummaryResponse
// @Router       /api/v1/stock/overview [get]
func (h *StockHandler) GetGlobalOverview(c *fiber.Ctx) error {
	out, err := h.queryUC.GetGlobalOverview()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
