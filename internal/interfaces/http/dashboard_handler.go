package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/modus-erp/modus-api/internal/application/analytics"
)

// DashboardHandler maneja las peticiones HTTP del dashboard.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetDashboard godoc
// @Summary      Resumen del dashboard
// @Description  Conteos, valor de ofertas aceptadas, alertas de stock bajo y actividad reciente.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/v1/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	out, err := h.uc.GetDashboard()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
