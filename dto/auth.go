package dto

// ==================== AUTHENTICATION REQUEST DTOs ====================

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255" example:"John Doe"`
	Email    string `json:"email" validate:"required,email" example:"john@example.com"`
	Password string `json:"password" validate:"required,strong_password" example:"SecurePass123!"`
	Role     string `json:"role" validate:"omitempty,oneof=patient staff" example:"patient"`
}

func (r RegisterRequest) Validate() error {
	return GetValidator().Struct(r)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"john@example.com"`
	Password string `json:"password" validate:"required" example:"SecurePass123!"`
}

func (l LoginRequest) Validate() error {
	return GetValidator().Struct(l)
}

// ==================== AUTHENTICATION RESPONSE DTOs ====================

type UserInfo struct {
	ID    string `json:"id" example:"usr_123456789"`
	Name  string `json:"name" example:"John Doe"`
	Email string `json:"email" example:"john@example.com"`
	Role  string `json:"role" example:"patient"`
}

type RegisterResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

type LoginResponse struct {
	Token     string   `json:"token"`
	ExpiresIn int64    `json:"expires_in" example:"86400"`
	User      UserInfo `json:"user"`
}
