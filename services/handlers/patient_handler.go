package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/medtrustid-lab/medtrust_api/dto"
	"github.com/medtrustid-lab/medtrust_api/shared"
)

type PatientHandler struct {
	patientSvc PatientServiceInterface
}

func NewPatientHandler(patientSvc PatientServiceInterface) *PatientHandler {
	return &PatientHandler{
		patientSvc: patientSvc,
	}
}

// @Summary Search patients
// @Description Staff lookup of patient accounts by name or email substring
// @Tags patients
// @Produce json
// @Security Bearer
// @Param q query string true "Search query"
// @Success 200 {object} shared.Response{data=dto.PatientSearchResponse}
// @Router /api/patients/search [get]
func (h *PatientHandler) Search(c *fiber.Ctx) error {
	patients, err := h.patientSvc.Search(c.Query("q"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Patients retrieved", dto.PatientSearchResponse{Patients: patients})
}

// @Summary Service health
// @Tags patients
// @Produce json
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/patients/health [get]
func (h *PatientHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}
