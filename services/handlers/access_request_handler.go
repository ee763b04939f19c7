package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/medtrustid-lab/medtrust_api/dto"
	"github.com/medtrustid-lab/medtrust_api/shared"
)

type AccessRequestHandler struct {
	requestSvc AccessRequestServiceInterface
}

func NewAccessRequestHandler(requestSvc AccessRequestServiceInterface) *AccessRequestHandler {
	return &AccessRequestHandler{
		requestSvc: requestSvc,
	}
}

// @Summary File an access request
// @Description Staff requests access to a patient's records
// @Tags access-requests
// @Accept json
// @Produce json
// @Security Bearer
// @Param createAccessRequestRequest body dto.CreateAccessRequestRequest true "Request details"
// @Success 201 {object} shared.Response{data=dto.AccessRequestResponse}
// @Router /api/access-requests/create [post]
func (h *AccessRequestHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateAccessRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	staffID := c.Locals(shared.UserID).(string)

	request, err := h.requestSvc.Create(staffID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Access request submitted", dto.AccessRequestResponse{
		Message: "Access request submitted",
		Request: request,
	})
}

// @Summary List my access requests
// @Description Requests the caller filed (staff) or requests naming them (patient)
// @Tags access-requests
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.AccessRequestListResponse}
// @Router /api/access-requests/my [get]
func (h *AccessRequestHandler) ListMine(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	role := c.Locals(shared.UserRole).(string)

	requests, err := h.requestSvc.ListMine(userID, role)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Requests retrieved", dto.AccessRequestListResponse{Requests: requests})
}

// @Summary Decide an access request
// @Description Patient approves or rejects a pending request naming them
// @Tags access-requests
// @Accept json
// @Produce json
// @Security Bearer
// @Param requestId path string true "Request ID"
// @Param decideAccessRequestRequest body dto.DecideAccessRequestRequest true "Decision"
// @Success 200 {object} shared.Response{data=dto.AccessRequestResponse}
// @Router /api/access-requests/{requestId}/decision [post]
func (h *AccessRequestHandler) Decide(c *fiber.Ctx) error {
	var req dto.DecideAccessRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	requestID := c.Params("requestId")
	patientID := c.Locals(shared.UserID).(string)

	request, err := h.requestSvc.Decide(requestID, patientID, req.Status)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Request "+request.Status, dto.AccessRequestResponse{
		Message: "Request " + request.Status,
		Request: request,
	})
}
