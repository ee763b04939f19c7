package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/medtrustid-lab/medtrust_api/dto"
	"github.com/medtrustid-lab/medtrust_api/shared"
)

type SecurityHandler struct {
	securitySvc SecurityServiceInterface
}

func NewSecurityHandler(securitySvc SecurityServiceInterface) *SecurityHandler {
	return &SecurityHandler{
		securitySvc: securitySvc,
	}
}

// @Summary List security alerts
// @Description Most recent security alerts, newest first
// @Tags security
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.AlertListResponse}
// @Router /api/security/alerts [get]
func (h *SecurityHandler) GetAlerts(c *fiber.Ctx) error {
	alerts, err := h.securitySvc.GetAlerts()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Alerts retrieved", dto.AlertListResponse{Alerts: alerts})
}

// @Summary Security stats
// @Description Active alert count, blocked IP count and overall system health
// @Tags security
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.SecurityStats}
// @Router /api/security/stats [get]
func (h *SecurityHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.securitySvc.GetStats()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Stats retrieved", stats)
}

// @Summary Resolve a security alert
// @Description Mark an active alert as resolved
// @Tags security
// @Produce json
// @Security Bearer
// @Param id path string true "Alert ID"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/security/alerts/{id}/resolve [post]
func (h *SecurityHandler) ResolveAlert(c *fiber.Ctx) error {
	if err := h.securitySvc.ResolveAlert(c.Params("id")); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Alert resolved", nil)
}
