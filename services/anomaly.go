package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/medtrustid-lab/medtrust_api/shared"
	log "github.com/sirupsen/logrus"
)

// Detection thresholds. The rate limiter denies only past the limit
// (request #100 passes, #101 fails) while the failed-login tracker blocks
// at the limit (the 5th failure blocks). Both behaviors are load-bearing
// for the dashboards; do not align them.
const (
	RateLimitWindow      = time.Minute
	MaxRequestsPerMinute = 100
	FailedLoginWindow    = 5 * RateLimitWindow
	MaxFailedLogins      = 5
	BlockDuration        = 30 * time.Minute
)

type clientWindow struct {
	count       int
	windowStart time.Time
}

// AnomalyService keeps per-client request and failed-login counters in
// process memory and turns threshold breaches into alerts and IP blocks.
// Counter state is intentionally volatile; losing it on restart is fine.
type AnomalyService struct {
	context.DefaultService

	requestCounts map[string]*clientWindow
	failedLogins  map[string]*clientWindow
	mutex         sync.Mutex

	// now and dispatch are swapped out in tests
	now      func() time.Time
	dispatch func(fn func())

	closed chan struct{}

	alertSvc     *AlertService
	blocklistSvc *BlocklistService
}

const ANOMALY_SVC = "anomaly_svc"

func (svc AnomalyService) Id() string {
	return ANOMALY_SVC
}

func (svc *AnomalyService) Configure(ctx *context.Context) error {
	svc.requestCounts = make(map[string]*clientWindow)
	svc.failedLogins = make(map[string]*clientWindow)
	svc.now = time.Now
	svc.dispatch = func(fn func()) { go fn() }
	svc.closed = make(chan struct{})
	return svc.DefaultService.Configure(ctx)
}

func (svc *AnomalyService) Start() error {
	svc.alertSvc = svc.Service(ALERT_SVC).(*AlertService)
	svc.blocklistSvc = svc.Service(BLOCKLIST_SVC).(*BlocklistService)

	go svc.startSweepJob()
	return nil
}

func (svc *AnomalyService) Shutdown() {
	close(svc.closed)
}

// CheckRateLimit tallies one request for the client and reports whether it
// may proceed. On overflow the alert and block are dispatched without
// blocking the decision; their failures never change the outcome.
func (svc *AnomalyService) CheckRateLimit(clientIP string) bool {
	svc.mutex.Lock()
	now := svc.now()

	window, exists := svc.requestCounts[clientIP]
	if !exists {
		window = &clientWindow{windowStart: now}
		svc.requestCounts[clientIP] = window
	}

	if now.Sub(window.windowStart) > RateLimitWindow {
		window.count = 0
		window.windowStart = now
	}

	window.count++
	count := window.count
	svc.mutex.Unlock()

	if count > MaxRequestsPerMinute {
		svc.dispatch(func() {
			svc.raiseAlert(shared.AlertTypeDDoS, shared.AlertSeverityHigh,
				fmt.Sprintf("High request rate: %d req/min", count), clientIP)
			svc.blockClient(clientIP, "Rate limit exceeded")
		})
		return false
	}

	return true
}

// RecordFailedLogin tallies a failed credential check from the client.
// Failures are tracked over a longer horizon than raw request volume.
func (svc *AnomalyService) RecordFailedLogin(clientIP, email string) {
	svc.mutex.Lock()
	now := svc.now()

	window, exists := svc.failedLogins[clientIP]
	if !exists {
		window = &clientWindow{windowStart: now}
		svc.failedLogins[clientIP] = window
	}

	if now.Sub(window.windowStart) > FailedLoginWindow {
		window.count = 0
		window.windowStart = now
	}

	window.count++
	count := window.count
	svc.mutex.Unlock()

	if count >= MaxFailedLogins {
		svc.dispatch(func() {
			svc.raiseAlert(shared.AlertTypeBruteForce, shared.AlertSeverityCritical,
				fmt.Sprintf("Multiple failed logins for IP %s (Target: %s)", clientIP, email), clientIP)
			svc.blockClient(clientIP, "Brute force detected")
		})
	}
}

// ResetFailedLogins clears the failed-login window after a successful
// login so legitimate slips do not accumulate toward a block.
func (svc *AnomalyService) ResetFailedLogins(clientIP string) {
	svc.mutex.Lock()
	delete(svc.failedLogins, clientIP)
	svc.mutex.Unlock()
}

func (svc *AnomalyService) raiseAlert(alertType, severity, message, clientIP string) {
	if svc.alertSvc == nil {
		return
	}
	if err := svc.alertSvc.CreateAlert(alertType, severity, message, clientIP); err != nil {
		log.WithFields(log.Fields{"ip": clientIP, "type": alertType}).
			WithError(err).Warn("Failed to create security alert")
	}
}

func (svc *AnomalyService) blockClient(clientIP, reason string) {
	if svc.blocklistSvc == nil {
		return
	}
	if err := svc.blocklistSvc.Block(clientIP, reason); err != nil {
		log.WithFields(log.Fields{"ip": clientIP, "reason": reason}).
			WithError(err).Warn("Failed to block IP")
	}
}

// ==================== BACKGROUND JOBS ====================

// startSweepJob drops idle windows so the maps stay bounded. Correctness
// does not depend on it; stale windows reset lazily on the next read.
func (svc *AnomalyService) startSweepJob() {
	ticker := time.NewTicker(RateLimitWindow)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			svc.sweep()
		case <-svc.closed:
			return
		}
	}
}

func (svc *AnomalyService) sweep() {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	now := svc.now()
	for ip, window := range svc.requestCounts {
		if now.Sub(window.windowStart) > RateLimitWindow {
			delete(svc.requestCounts, ip)
		}
	}
	for ip, window := range svc.failedLogins {
		if now.Sub(window.windowStart) > FailedLoginWindow {
			delete(svc.failedLogins, ip)
		}
	}
}
