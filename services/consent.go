package services

import (
	"time"

	"github.com/alphabatem/common/context"
	"github.com/medtrustid-lab/medtrust_api/dto"
	"github.com/medtrustid-lab/medtrust_api/model"
	"github.com/medtrustid-lab/medtrust_api/services/repositories"
	"github.com/medtrustid-lab/medtrust_api/shared"
)

// ConsentService owns the consent lifecycle: grant, list, revoke.
// Revocation is terminal and owner-only; a non-owner probing a consent id
// gets the same not-found response as a missing row.
type ConsentService struct {
	context.DefaultService

	sqlSvc *SqlService

	consents *repositories.ConsentRepository
}

const CONSENT_SVC = "consent_svc"

const consentListLimit = 100

func (svc ConsentService) Id() string {
	return CONSENT_SVC
}

func (svc *ConsentService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	svc.consents = repositories.NewConsentRepository(svc.sqlSvc.Db())
	return nil
}

func (svc *ConsentService) Create(callerID string, req dto.CreateConsentRequest) (*model.Consent, error) {
	patientID := req.PatientID
	if patientID == "" {
		patientID = callerID
	}

	expiry, err := parseExpiry(req.Expiry)
	if err != nil {
		return nil, shared.ErrBadRequest("Invalid expiry date")
	}

	consent, err := svc.consents.CreateConsent(&model.Consent{
		PatientID:   patientID,
		RequesterID: req.RequesterID,
		Purpose:     req.Purpose,
		ExpiryDate:  expiry,
		Status:      shared.ConsentStatusActive,
		CreatedBy:   callerID,
	})
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return consent, nil
}

func (svc *ConsentService) Revoke(consentID string, callerID string) error {
	consent, err := svc.consents.GetConsent(consentID)
	if err != nil {
		return shared.ErrNotFound("Consent not found")
	}

	if consent.PatientID != callerID {
		return shared.ErrNotFound("Consent not found")
	}

	if consent.Status == shared.ConsentStatusRevoked {
		return nil
	}

	if err := svc.consents.RevokeConsent(consent); err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	return nil
}

func (svc *ConsentService) ListByPatient(patientID string) ([]model.Consent, error) {
	consents, err := svc.consents.GetConsentsByPatient(patientID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return consents, nil
}

func (svc *ConsentService) ListAll() ([]model.Consent, error) {
	consents, err := svc.consents.GetAllConsents(consentListLimit)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return consents, nil
}

// parseExpiry accepts a bare date or a full RFC3339 timestamp.
func parseExpiry(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
