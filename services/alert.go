package services

import (
	"context"
	"errors"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/medtrustid-lab/medtrust_api/dto"
	"github.com/medtrustid-lab/medtrust_api/model"
	"github.com/medtrustid-lab/medtrust_api/services/repositories"
	"github.com/medtrustid-lab/medtrust_api/shared"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	alertListLimit    = 50
	statsCacheKey     = "security:stats"
	statsCacheTTL     = 30 * time.Second
	statsRedisTimeout = time.Second
)

// AlertService keeps the append-only anomaly record. Alerts are never
// deleted; the only mutation is Active -> Resolved.
type AlertService struct {
	appContext.DefaultService

	sqlSvc   *SqlService
	redisSvc *RedisService
	repo     *repositories.SecurityRepository
}

const ALERT_SVC = "alert_svc"

func (svc AlertService) Id() string {
	return ALERT_SVC
}

func (svc *AlertService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.repo = repositories.NewSecurityRepository(svc.sqlSvc.Db())
	return nil
}

func (svc *AlertService) CreateAlert(alertType, severity, message, sourceIP string) error {
	log.WithFields(log.Fields{
		"type":     alertType,
		"severity": severity,
		"ip":       sourceIP,
	}).Warnf("[SECURITY ALERT] %s", message)

	_, err := svc.repo.CreateAlert(&model.SecurityAlert{
		Type:     alertType,
		Severity: severity,
		Message:  message,
		SourceIP: sourceIP,
		Status:   shared.AlertStatusActive,
	})
	if err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	RecordSecurityAlert(alertType)
	return nil
}

func (svc *AlertService) GetAlerts() ([]model.SecurityAlert, error) {
	alerts, err := svc.repo.GetAlerts(alertListLimit)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return alerts, nil
}

// ResolveAlert transitions Active -> Resolved. Resolving an already
// resolved alert is a no-op success; the resolved_at stamp is kept.
func (svc *AlertService) ResolveAlert(id string) error {
	alert, err := svc.repo.GetAlert(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.ErrNotFound("Alert not found")
		}
		return svc.sqlSvc.HandleError(err)
	}

	if alert.Status == shared.AlertStatusResolved {
		return nil
	}

	if err := svc.repo.ResolveAlert(id, time.Now()); err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	return nil
}

// GetStats returns the counters the security dashboard polls. The result
// is cached briefly in Redis since the frontend refreshes every few
// seconds.
func (svc *AlertService) GetStats() (*dto.SecurityStats, error) {
	ctx, cancel := context.WithTimeout(context.Background(), statsRedisTimeout)
	defer cancel()

	var cached dto.SecurityStats
	if found, err := svc.redisSvc.GetJSON(ctx, statsCacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	activeAlerts, err := svc.repo.CountActiveAlerts()
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	blockedIPs, err := svc.repo.CountBlocked()
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	stats := &dto.SecurityStats{
		ActiveAlerts: activeAlerts,
		BlockedIPs:   blockedIPs,
		SystemHealth: systemHealth(activeAlerts),
	}

	if err := svc.redisSvc.Set(ctx, statsCacheKey, stats, statsCacheTTL); err != nil {
		log.WithError(err).Debug("Failed to cache security stats")
	}

	return stats, nil
}

func systemHealth(activeAlerts int64) string {
	switch {
	case activeAlerts > 5:
		return "Critical"
	case activeAlerts > 0:
		return "Warning"
	default:
		return "Healthy"
	}
}
