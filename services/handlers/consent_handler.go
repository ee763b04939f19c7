package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/medtrustid-lab/medtrust_api/dto"
	"github.com/medtrustid-lab/medtrust_api/shared"
)

type ConsentHandler struct {
	consentSvc ConsentServiceInterface
}

func NewConsentHandler(consentSvc ConsentServiceInterface) *ConsentHandler {
	return &ConsentHandler{
		consentSvc: consentSvc,
	}
}

// @Summary Grant consent
// @Description Patient grants a requester access to their records
// @Tags consent
// @Accept json
// @Produce json
// @Security Bearer
// @Param createConsentRequest body dto.CreateConsentRequest true "Consent details"
// @Success 201 {object} shared.Response{data=dto.ConsentResponse}
// @Router /api/consent/create [post]
func (h *ConsentHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateConsentRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	callerID := c.Locals(shared.UserID).(string)

	consent, err := h.consentSvc.Create(callerID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Consent granted", dto.ConsentResponse{
		Message: "Consent granted",
		Consent: consent,
	})
}

// @Summary Revoke consent
// @Description Patient revokes one of their own consents
// @Tags consent
// @Produce json
// @Security Bearer
// @Param consentId path string true "Consent ID"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/consent/{consentId}/revoke [post]
func (h *ConsentHandler) Revoke(c *fiber.Ctx) error {
	consentID := c.Params("consentId")
	callerID := c.Locals(shared.UserID).(string)

	if err := h.consentSvc.Revoke(consentID, callerID); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Consent revoked", nil)
}

// @Summary List my consents
// @Description Consents granted by the authenticated patient
// @Tags consent
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.ConsentListResponse}
// @Router /api/consent/patient/current [get]
func (h *ConsentHandler) ListCurrent(c *fiber.Ctx) error {
	callerID := c.Locals(shared.UserID).(string)

	consents, err := h.consentSvc.ListByPatient(callerID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Consents retrieved", dto.ConsentListResponse{Consents: consents})
}

// @Summary List a patient's consents
// @Description Staff view of one patient's consents
// @Tags consent
// @Produce json
// @Security Bearer
// @Param patientId path string true "Patient ID"
// @Success 200 {object} shared.Response{data=dto.ConsentListResponse}
// @Router /api/consent/patient/{patientId} [get]
func (h *ConsentHandler) ListByPatient(c *fiber.Ctx) error {
	patientID := c.Params("patientId")

	consents, err := h.consentSvc.ListByPatient(patientID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Consents retrieved", dto.ConsentListResponse{Consents: consents})
}

// @Summary List all consents
// @Description Staff view of the most recent consents across patients
// @Tags consent
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.ConsentListResponse}
// @Router /api/consent/staff/consents [get]
func (h *ConsentHandler) ListAll(c *fiber.Ctx) error {
	consents, err := h.consentSvc.ListAll()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Consents retrieved", dto.ConsentListResponse{Consents: consents})
}
