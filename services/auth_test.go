package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medtrustid-lab/medtrust_api/dto"
	"github.com/medtrustid-lab/medtrust_api/services/repositories"
	"github.com/medtrustid-lab/medtrust_api/shared"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()

	sqlSvc := newTestSqlService(t)
	return &AuthService{
		sqlSvc:     sqlSvc,
		jwtSvc:     &JWTService{AccessTokenDuration: 24 * time.Hour, jwtSecretKey: "test-secret"},
		anomalySvc: newTestAnomalyService(),
		users:      repositories.NewUserRepository(sqlSvc.Db()),
	}
}

func registerTestUser(t *testing.T, svc *AuthService, email, password, role string) *dto.RegisterResponse {
	t.Helper()

	resp, err := svc.Register(dto.RegisterRequest{
		Name:     "Test User",
		Email:    email,
		Password: password,
		Role:     role,
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterDefaultsToPatient(t *testing.T) {
	svc := newTestAuthService(t)

	resp := registerTestUser(t, svc, "john@example.com", "SecurePass123!", "")

	assert.Equal(t, shared.RolePatient, resp.User.Role)
	assert.NotEmpty(t, resp.Token)

	claims, err := svc.jwtSvc.VerifyJWTToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, shared.RolePatient, claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(t)

	registerTestUser(t, svc, "john@example.com", "SecurePass123!", "")

	_, err := svc.Register(dto.RegisterRequest{
		Name:     "Other",
		Email:    "john@example.com",
		Password: "OtherPass123!",
	})
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.StatusCode)
}

func TestLoginSuccess(t *testing.T) {
	svc := newTestAuthService(t)
	registerTestUser(t, svc, "john@example.com", "SecurePass123!", "staff")

	resp, err := svc.Login(dto.LoginRequest{Email: "john@example.com", Password: "SecurePass123!"}, "10.0.0.1")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.EqualValues(t, 86400, resp.ExpiresIn)
	assert.Equal(t, shared.RoleStaff, resp.User.Role)

	user, err := svc.users.GetUserByEmail("john@example.com")
	require.NoError(t, err)
	assert.NotNil(t, user.LastLogin)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Login(dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"}, "10.0.0.1")
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)
	assert.Equal(t, "Not found", appErr.Message)

	assert.Equal(t, 1, failedLoginCount(svc.anomalySvc, "10.0.0.1"))
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestAuthService(t)
	registerTestUser(t, svc, "john@example.com", "SecurePass123!", "")

	_, err := svc.Login(dto.LoginRequest{Email: "john@example.com", Password: "wrong"}, "10.0.0.1")
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode)
	assert.Equal(t, "Wrong password", appErr.Message)

	assert.Equal(t, 1, failedLoginCount(svc.anomalySvc, "10.0.0.1"))
}

func TestLoginSuccessResetsFailedLogins(t *testing.T) {
	svc := newTestAuthService(t)
	registerTestUser(t, svc, "john@example.com", "SecurePass123!", "")

	for i := 0; i < MaxFailedLogins-1; i++ {
		_, err := svc.Login(dto.LoginRequest{Email: "john@example.com", Password: "wrong"}, "10.0.0.1")
		require.Error(t, err)
	}
	require.Equal(t, MaxFailedLogins-1, failedLoginCount(svc.anomalySvc, "10.0.0.1"))

	_, err := svc.Login(dto.LoginRequest{Email: "john@example.com", Password: "SecurePass123!"}, "10.0.0.1")
	require.NoError(t, err)

	assert.Zero(t, failedLoginCount(svc.anomalySvc, "10.0.0.1"))
}

func failedLoginCount(svc *AnomalyService, ip string) int {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	window, ok := svc.failedLogins[ip]
	if !ok {
		return 0
	}
	return window.count
}
