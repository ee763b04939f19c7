package services

import (
	"errors"

	"github.com/alphabatem/common/context"
	"github.com/medtrustid-lab/medtrust_api/dto"
	"github.com/medtrustid-lab/medtrust_api/model"
	"github.com/medtrustid-lab/medtrust_api/services/repositories"
	"github.com/medtrustid-lab/medtrust_api/shared"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles account registration and credential checks. Every
// failed credential check feeds the anomaly tracker; a successful login
// clears the caller's failed-login window.
type AuthService struct {
	context.DefaultService

	sqlSvc     *SqlService
	jwtSvc     *JWTService
	anomalySvc *AnomalyService

	users *repositories.UserRepository
}

const AUTH_SVC = "auth_svc"

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.anomalySvc = svc.Service(ANOMALY_SVC).(*AnomalyService)
	svc.users = repositories.NewUserRepository(svc.sqlSvc.Db())
	return nil
}

func (svc *AuthService) Register(req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	role := req.Role
	if role == "" {
		role = shared.RolePatient
	}

	if _, err := svc.users.GetUserByEmail(req.Email); err == nil {
		return nil, shared.ErrConflict("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := svc.users.CreateUser(&model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Role:     role,
	})
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	token, err := svc.jwtSvc.ToJWT(user)
	if err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{
		Token: token,
		User:  userInfo(user),
	}, nil
}

func (svc *AuthService) Login(req dto.LoginRequest, clientIP string) (*dto.LoginResponse, error) {
	user, err := svc.users.GetUserByEmail(req.Email)
	if err != nil {
		svc.anomalySvc.RecordFailedLogin(clientIP, req.Email)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound("Not found")
		}
		return nil, svc.sqlSvc.HandleError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		svc.anomalySvc.RecordFailedLogin(clientIP, req.Email)
		return nil, shared.ErrBadRequest("Wrong password")
	}

	svc.anomalySvc.ResetFailedLogins(clientIP)

	if err := svc.users.UpdateLastLogin(user.ID); err != nil {
		log.WithField("user_id", user.ID).WithError(err).Warn("Failed to update last login")
	}

	token, err := svc.jwtSvc.ToJWT(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: int64(svc.jwtSvc.AccessTokenDuration.Seconds()),
		User:      userInfo(user),
	}, nil
}

func userInfo(user *model.User) dto.UserInfo {
	return dto.UserInfo{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}
