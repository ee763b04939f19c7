package dto

import "github.com/medtrustid-lab/medtrust_api/model"

// ==================== CONSENT DTOs ====================

type CreateConsentRequest struct {
	PatientID   string `json:"patientId" validate:"omitempty" example:"usr_patient_1"`
	RequesterID string `json:"requesterId" validate:"required" example:"usr_staff_1"`
	Purpose     string `json:"purpose" validate:"required,max=500" example:"Treatment"`
	Expiry      string `json:"expiry" validate:"required" example:"2026-09-30"`
}

func (r CreateConsentRequest) Validate() error {
	return GetValidator().Struct(r)
}

type ConsentResponse struct {
	Message string         `json:"message"`
	Consent *model.Consent `json:"consent,omitempty"`
}

type ConsentListResponse struct {
	Consents []model.Consent `json:"consents"`
}

// ==================== ACCESS REQUEST DTOs ====================

type CreateAccessRequestRequest struct {
	PatientID string `json:"patientId" validate:"required" example:"usr_patient_1"`
	Purpose   string `json:"purpose" validate:"required,max=500" example:"Treatment"`
}

func (r CreateAccessRequestRequest) Validate() error {
	return GetValidator().Struct(r)
}

type DecideAccessRequestRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected" example:"approved"`
}

func (r DecideAccessRequestRequest) Validate() error {
	return GetValidator().Struct(r)
}

type AccessRequestResponse struct {
	Message string               `json:"message"`
	Request *model.AccessRequest `json:"request,omitempty"`
}

type AccessRequestListResponse struct {
	Requests []model.AccessRequest `json:"requests"`
}

type AccessLogListResponse struct {
	Logs []model.AccessLog `json:"logs"`
}
