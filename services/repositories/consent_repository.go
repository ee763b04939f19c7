package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/medtrustid-lab/medtrust_api/model"
	"github.com/medtrustid-lab/medtrust_api/shared"
	"gorm.io/gorm"
)

// ConsentRepository handles consents, access requests and the audit trail.
type ConsentRepository struct {
	BaseRepository
}

func NewConsentRepository(db *gorm.DB) *ConsentRepository {
	return &ConsentRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// ==================== CONSENT METHODS ====================

func (ds *ConsentRepository) CreateConsent(consent *model.Consent) (*model.Consent, error) {
	if consent.ID == "" {
		id, _ := uuid.NewV7()
		consent.ID = id.String()
	}
	consent.CreatedAt = time.Now()
	consent.UpdatedAt = time.Now()

	if err := ds.db.Create(consent).Error; err != nil {
		return nil, err
	}
	return consent, nil
}

func (ds *ConsentRepository) GetConsent(id string) (*model.Consent, error) {
	var consent model.Consent
	if err := ds.db.Where("id = ?", id).First(&consent).Error; err != nil {
		return nil, err
	}
	return &consent, nil
}

func (ds *ConsentRepository) GetConsentsByPatient(patientID string) ([]model.Consent, error) {
	var consents []model.Consent
	err := ds.db.Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&consents).Error
	if err != nil {
		return nil, err
	}
	return consents, nil
}

func (ds *ConsentRepository) GetAllConsents(limit int) ([]model.Consent, error) {
	var consents []model.Consent
	err := ds.db.Order("created_at DESC").Limit(limit).Find(&consents).Error
	if err != nil {
		return nil, err
	}
	return consents, nil
}

func (ds *ConsentRepository) RevokeConsent(consent *model.Consent) error {
	return ds.db.Model(consent).Where("id = ?", consent.ID).Updates(map[string]interface{}{
		"status":     shared.ConsentStatusRevoked,
		"updated_at": time.Now(),
	}).Error
}

// ==================== ACCESS REQUEST METHODS ====================

func (ds *ConsentRepository) CreateAccessRequest(request *model.AccessRequest) (*model.AccessRequest, error) {
	if request.ID == "" {
		id, _ := uuid.NewV7()
		request.ID = id.String()
	}
	request.CreatedAt = time.Now()
	request.UpdatedAt = time.Now()

	if err := ds.db.Create(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

func (ds *ConsentRepository) GetAccessRequest(id string) (*model.AccessRequest, error) {
	var request model.AccessRequest
	if err := ds.db.Where("id = ?", id).First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (ds *ConsentRepository) GetAccessRequestsByParticipant(column, userID string, limit int) ([]model.AccessRequest, error) {
	var requests []model.AccessRequest
	err := ds.db.Where(column+" = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// ApproveRequest flips the request to approved, grants the consent and writes
// the audit entry in one transaction so a Consent never exists without its
// audit counterpart.
func (ds *ConsentRepository) ApproveRequest(request *model.AccessRequest, expiry time.Time) (*model.Consent, error) {
	now := time.Now()

	consentID, _ := uuid.NewV7()
	consent := &model.Consent{
		ID:          consentID.String(),
		PatientID:   request.PatientID,
		RequesterID: request.StaffID,
		Purpose:     request.Purpose,
		ExpiryDate:  expiry,
		Status:      shared.ConsentStatusActive,
		CreatedBy:   request.PatientID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	logID, _ := uuid.NewV7()
	entry := &model.AccessLog{
		ID:        logID.String(),
		PatientID: request.PatientID,
		StaffID:   request.StaffID,
		Purpose:   request.Purpose,
		Status:    shared.AccessLogGranted,
		CreatedAt: now,
	}

	err := ds.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(request).Where("id = ?", request.ID).Updates(map[string]interface{}{
			"status":     shared.RequestStatusApproved,
			"updated_at": now,
		}).Error; err != nil {
			return err
		}
		if err := tx.Create(consent).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}

	request.Status = shared.RequestStatusApproved
	return consent, nil
}

// RejectRequest flips the request to rejected and writes the denied audit
// entry in one transaction.
func (ds *ConsentRepository) RejectRequest(request *model.AccessRequest) error {
	now := time.Now()

	logID, _ := uuid.NewV7()
	entry := &model.AccessLog{
		ID:        logID.String(),
		PatientID: request.PatientID,
		StaffID:   request.StaffID,
		Purpose:   request.Purpose,
		Status:    shared.AccessLogDenied,
		CreatedAt: now,
	}

	err := ds.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(request).Where("id = ?", request.ID).Updates(map[string]interface{}{
			"status":     shared.RequestStatusRejected,
			"updated_at": now,
		}).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return err
	}

	request.Status = shared.RequestStatusRejected
	return nil
}

// ==================== ACCESS LOG METHODS ====================

func (ds *ConsentRepository) GetAccessLogsByPatient(patientID string, limit int) ([]model.AccessLog, error) {
	var logs []model.AccessLog
	err := ds.db.Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
