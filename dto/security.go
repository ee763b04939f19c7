package dto

import (
	"time"

	"github.com/medtrustid-lab/medtrust_api/model"
)

type AlertListResponse struct {
	Alerts []model.SecurityAlert `json:"alerts"`
}

type SecurityStats struct {
	ActiveAlerts int64  `json:"activeAlerts"`
	BlockedIPs   int64  `json:"blockedIps"`
	SystemHealth string `json:"systemHealth"`
}

// RateLimitInfo is the admission decision detail attached to rejected
// requests and rate limit headers.
type RateLimitInfo struct {
	Allowed      bool       `json:"allowed"`
	Remaining    int        `json:"remaining"`
	ResetTime    *time.Time `json:"reset_time,omitempty"`
	BlockedUntil *time.Time `json:"blocked_until,omitempty"`
}

type PatientSearchResponse struct {
	Patients []UserInfo `json:"patients"`
}
