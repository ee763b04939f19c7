package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medtrustid-lab/medtrust_api/services/repositories"
	"github.com/medtrustid-lab/medtrust_api/shared"
)

func TestCheckRateLimitDeniesOnlyPastLimit(t *testing.T) {
	svc := newTestAnomalyService()

	for i := 1; i <= MaxRequestsPerMinute; i++ {
		require.True(t, svc.CheckRateLimit("10.0.0.1"), "request %d should pass", i)
	}

	assert.False(t, svc.CheckRateLimit("10.0.0.1"), "request %d should be denied", MaxRequestsPerMinute+1)
}

func TestCheckRateLimitCountsPerClient(t *testing.T) {
	svc := newTestAnomalyService()

	for i := 0; i <= MaxRequestsPerMinute; i++ {
		svc.CheckRateLimit("10.0.0.1")
	}

	assert.False(t, svc.CheckRateLimit("10.0.0.1"))
	assert.True(t, svc.CheckRateLimit("10.0.0.2"), "other clients keep their own window")
}

func TestCheckRateLimitWindowReset(t *testing.T) {
	svc := newTestAnomalyService()
	clock := newFakeClock()
	svc.now = clock.Now

	for i := 0; i <= MaxRequestsPerMinute; i++ {
		svc.CheckRateLimit("10.0.0.1")
	}
	require.False(t, svc.CheckRateLimit("10.0.0.1"))

	// at exactly the window boundary the old window still counts
	clock.Advance(RateLimitWindow)
	assert.False(t, svc.CheckRateLimit("10.0.0.1"))

	clock.Advance(time.Second)
	assert.True(t, svc.CheckRateLimit("10.0.0.1"), "idle window resets and counting restarts")
}

func TestRecordFailedLoginBlocksAtLimit(t *testing.T) {
	svc := newTestAnomalyService()

	var dispatched int
	svc.dispatch = func(fn func()) { dispatched++ }

	for i := 1; i < MaxFailedLogins; i++ {
		svc.RecordFailedLogin("10.0.0.1", "john@example.com")
	}
	assert.Equal(t, 0, dispatched, "%d failures stay below the threshold", MaxFailedLogins-1)

	svc.RecordFailedLogin("10.0.0.1", "john@example.com")
	assert.Equal(t, 1, dispatched, "failure %d triggers the response", MaxFailedLogins)
}

func TestResetFailedLoginsClearsWindow(t *testing.T) {
	svc := newTestAnomalyService()

	var dispatched int
	svc.dispatch = func(fn func()) { dispatched++ }

	for i := 1; i < MaxFailedLogins; i++ {
		svc.RecordFailedLogin("10.0.0.1", "john@example.com")
	}
	svc.ResetFailedLogins("10.0.0.1")

	for i := 1; i < MaxFailedLogins; i++ {
		svc.RecordFailedLogin("10.0.0.1", "john@example.com")
	}
	assert.Equal(t, 0, dispatched, "reset discards accumulated failures")

	svc.RecordFailedLogin("10.0.0.1", "john@example.com")
	assert.Equal(t, 1, dispatched)
}

func TestSweepDropsIdleWindows(t *testing.T) {
	svc := newTestAnomalyService()
	clock := newFakeClock()
	svc.now = clock.Now

	svc.CheckRateLimit("10.0.0.1")
	svc.RecordFailedLogin("10.0.0.1", "john@example.com")

	clock.Advance(RateLimitWindow + time.Second)
	svc.CheckRateLimit("10.0.0.2")

	svc.sweep()

	svc.mutex.Lock()
	defer svc.mutex.Unlock()
	assert.NotContains(t, svc.requestCounts, "10.0.0.1")
	assert.Contains(t, svc.requestCounts, "10.0.0.2")
	assert.Contains(t, svc.failedLogins, "10.0.0.1", "failed logins age out over the longer horizon")
}

func TestRateLimitOverflowRaisesAlertAndBlocks(t *testing.T) {
	sqlSvc := newTestSqlService(t)
	repo := repositories.NewSecurityRepository(sqlSvc.Db())

	svc := newTestAnomalyService()
	svc.alertSvc = &AlertService{sqlSvc: sqlSvc, redisSvc: &RedisService{}, repo: repo}
	svc.blocklistSvc = &BlocklistService{sqlSvc: sqlSvc, repo: repo, now: time.Now}

	ip := "203.0.113.9"
	for i := 0; i < MaxRequestsPerMinute; i++ {
		require.True(t, svc.CheckRateLimit(ip))
	}
	require.False(t, svc.CheckRateLimit(ip))

	alerts, err := svc.alertSvc.GetAlerts()
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, shared.AlertTypeDDoS, alerts[0].Type)
	assert.Equal(t, shared.AlertSeverityHigh, alerts[0].Severity)
	assert.Equal(t, fmt.Sprintf("High request rate: %d req/min", MaxRequestsPerMinute+1), alerts[0].Message)
	assert.Equal(t, ip, alerts[0].SourceIP)
	assert.Equal(t, shared.AlertStatusActive, alerts[0].Status)

	assert.True(t, svc.blocklistSvc.IsBlocked(ip))
}

func TestBruteForceRaisesAlertAndBlocks(t *testing.T) {
	sqlSvc := newTestSqlService(t)
	repo := repositories.NewSecurityRepository(sqlSvc.Db())

	svc := newTestAnomalyService()
	svc.alertSvc = &AlertService{sqlSvc: sqlSvc, redisSvc: &RedisService{}, repo: repo}
	svc.blocklistSvc = &BlocklistService{sqlSvc: sqlSvc, repo: repo, now: time.Now}

	ip := "203.0.113.10"
	for i := 0; i < MaxFailedLogins; i++ {
		svc.RecordFailedLogin(ip, "target@example.com")
	}

	alerts, err := svc.alertSvc.GetAlerts()
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, shared.AlertTypeBruteForce, alerts[0].Type)
	assert.Equal(t, shared.AlertSeverityCritical, alerts[0].Severity)
	assert.Equal(t, fmt.Sprintf("Multiple failed logins for IP %s (Target: %s)", ip, "target@example.com"), alerts[0].Message)

	assert.True(t, svc.blocklistSvc.IsBlocked(ip))
}
