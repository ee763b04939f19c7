package shared

const (
	UserID    = "user_id"
	UserEmail = "user_email"
	UserRole  = "user_role"

	RolePatient = "patient"
	RoleStaff   = "staff"

	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"

	ConsentStatusActive  = "active"
	ConsentStatusRevoked = "revoked"

	AccessLogGranted = "granted"
	AccessLogDenied  = "denied"

	AlertTypeDDoS       = "DDoS"
	AlertTypeBruteForce = "BruteForce"

	AlertSeverityLow      = "Low"
	AlertSeverityMedium   = "Medium"
	AlertSeverityHigh     = "High"
	AlertSeverityCritical = "Critical"

	AlertStatusActive   = "Active"
	AlertStatusResolved = "Resolved"
)
