package handlers

import (
	"github.com/medtrustid-lab/medtrust_api/dto"
	"github.com/medtrustid-lab/medtrust_api/model"
)

type AuthServiceInterface interface {
	Register(req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(req dto.LoginRequest, clientIP string) (*dto.LoginResponse, error)
}

type ConsentServiceInterface interface {
	Create(callerID string, req dto.CreateConsentRequest) (*model.Consent, error)
	Revoke(consentID, callerID string) error
	ListByPatient(patientID string) ([]model.Consent, error)
	ListAll() ([]model.Consent, error)
}

type AccessRequestServiceInterface interface {
	Create(staffID string, req dto.CreateAccessRequestRequest) (*model.AccessRequest, error)
	ListMine(userID, role string) ([]model.AccessRequest, error)
	Decide(requestID, patientID, status string) (*model.AccessRequest, error)
}

type SecurityServiceInterface interface {
	GetAlerts() ([]model.SecurityAlert, error)
	GetStats() (*dto.SecurityStats, error)
	ResolveAlert(id string) error
}

type PatientServiceInterface interface {
	Search(query string) ([]dto.UserInfo, error)
}
