package services

import (
	"time"

	"github.com/alphabatem/common/context"
	"github.com/medtrustid-lab/medtrust_api/dto"
	"github.com/medtrustid-lab/medtrust_api/model"
	"github.com/medtrustid-lab/medtrust_api/services/repositories"
	"github.com/medtrustid-lab/medtrust_api/shared"
)

// AccessRequestService drives the staff access-request workflow. Only the
// patient named on a request may decide it; approval grants a 7 day consent
// and records a granted access log in the same transaction.
type AccessRequestService struct {
	context.DefaultService

	sqlSvc *SqlService

	consents *repositories.ConsentRepository

	now func() time.Time
}

const ACCESS_REQUEST_SVC = "access_request_svc"

const (
	requestListLimit    = 100
	approvedConsentTerm = 7 * 24 * time.Hour
)

func (svc AccessRequestService) Id() string {
	return ACCESS_REQUEST_SVC
}

func (svc *AccessRequestService) Configure(ctx *context.Context) error {
	svc.now = time.Now
	return svc.DefaultService.Configure(ctx)
}

func (svc *AccessRequestService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	svc.consents = repositories.NewConsentRepository(svc.sqlSvc.Db())
	return nil
}

func (svc *AccessRequestService) Create(staffID string, req dto.CreateAccessRequestRequest) (*model.AccessRequest, error) {
	request, err := svc.consents.CreateAccessRequest(&model.AccessRequest{
		PatientID: req.PatientID,
		StaffID:   staffID,
		Purpose:   req.Purpose,
		Status:    shared.RequestStatusPending,
	})
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return request, nil
}

// ListMine returns the requests the caller participates in: requests they
// filed for staff, requests naming them for patients.
func (svc *AccessRequestService) ListMine(userID, role string) ([]model.AccessRequest, error) {
	column := "patient_id"
	if role == shared.RoleStaff {
		column = "staff_id"
	}

	requests, err := svc.consents.GetAccessRequestsByParticipant(column, userID, requestListLimit)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return requests, nil
}

func (svc *AccessRequestService) Decide(requestID, patientID, status string) (*model.AccessRequest, error) {
	request, err := svc.consents.GetAccessRequest(requestID)
	if err != nil {
		return nil, shared.ErrNotFound("Request not found")
	}

	if request.PatientID != patientID {
		return nil, shared.ErrNotFound("Request not found")
	}

	if request.Status == status {
		return request, nil
	}

	if request.Status != shared.RequestStatusPending {
		return nil, shared.ErrConflict("Request already resolved")
	}

	switch status {
	case shared.RequestStatusApproved:
		_, err = svc.consents.ApproveRequest(request, svc.now().Add(approvedConsentTerm))
	case shared.RequestStatusRejected:
		err = svc.consents.RejectRequest(request)
	default:
		return nil, shared.ErrBadRequest("Invalid decision")
	}
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	request.Status = status
	return request, nil
}
