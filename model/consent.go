package model

import "time"

// Consent is a patient-granted, time-bounded authorization for a named
// requester to access data for a stated purpose.
type Consent struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text;not null"`
	PatientID   string    `json:"patient_id" gorm:"not null;index;size:255"`
	RequesterID string    `json:"requester_id" gorm:"not null;size:255"`
	Purpose     string    `json:"purpose" gorm:"not null;type:text"`
	ExpiryDate  time.Time `json:"expiry_date" gorm:"not null"`
	Status      string    `json:"status" gorm:"not null;size:20;default:active"`
	CreatedBy   string    `json:"created_by" gorm:"not null;size:255"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"not null"`
}

// AccessRequest is a staff-initiated ask for a patient's decision. It is
// decided at most once; approved and rejected are terminal.
type AccessRequest struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text;not null"`
	PatientID string    `json:"patient_id" gorm:"not null;index;size:255"`
	StaffID   string    `json:"staff_id" gorm:"not null;index;size:255"`
	Purpose   string    `json:"purpose" gorm:"not null;type:text"`
	Status    string    `json:"status" gorm:"not null;size:20;default:pending"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}

// AccessLog is the append-only audit trail; one entry per request decision.
type AccessLog struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text;not null"`
	PatientID string    `json:"patient_id" gorm:"not null;index;size:255"`
	StaffID   string    `json:"staff_id" gorm:"not null;size:255"`
	Purpose   string    `json:"purpose" gorm:"not null;type:text"`
	Status    string    `json:"status" gorm:"not null;size:20"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
}
