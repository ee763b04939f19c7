package model

import "time"

// SecurityAlert rows are append-only; the only mutation is resolving.
type SecurityAlert struct {
	ID         string     `json:"id" gorm:"primaryKey;type:text;not null"`
	Type       string     `json:"type" gorm:"not null;size:50"`
	Severity   string     `json:"severity" gorm:"not null;size:20"`
	Message    string     `json:"message" gorm:"not null;type:text"`
	SourceIP   string     `json:"source_ip" gorm:"not null;index;size:64"`
	Status     string     `json:"status" gorm:"not null;size:20;default:Active;index"`
	CreatedAt  time.Time  `json:"created_at" gorm:"not null"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// BlockedIP is a time-bounded ban record. A block is effective only while
// now < ExpiresAt; expired rows are deleted on read.
type BlockedIP struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text;not null"`
	IPAddress string    `json:"ip_address" gorm:"uniqueIndex;not null;size:64"`
	Reason    string    `json:"reason" gorm:"not null;type:text"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}
