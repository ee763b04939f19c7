package middleware

import (
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"

	"github.com/medtrustid-lab/medtrust_api/services"
	"github.com/medtrustid-lab/medtrust_api/shared"
)

// AdmissionMiddleware gates every request before routing: blocked IPs are
// denied outright, everyone else is counted against the per-IP rate limit.
// Allow-listed addresses bypass both checks.
type AdmissionMiddleware struct {
	context.DefaultService

	anomalySvc   rateLimiter
	blocklistSvc blockChecker

	allowlist map[string]struct{}
}

type rateLimiter interface {
	CheckRateLimit(clientIP string) bool
}

type blockChecker interface {
	IsBlocked(clientIP string) bool
}

const ADMISSION_MIDDLEWARE_SVC = "admission"

const (
	blockedResponseMessage   = "Access denied. Your IP has been blocked due to suspicious activity."
	rateLimitResponseMessage = "Too many requests. Please try again later."
)

func (svc AdmissionMiddleware) Id() string {
	return ADMISSION_MIDDLEWARE_SVC
}

func (svc *AdmissionMiddleware) Configure(ctx *context.Context) error {
	svc.allowlist = map[string]struct{}{
		"127.0.0.1": {},
		"::1":       {},
		"localhost": {},
	}
	for _, entry := range strings.Split(os.Getenv("ADMISSION_ALLOWLIST"), ",") {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			svc.allowlist[entry] = struct{}{}
		}
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *AdmissionMiddleware) Start() error {
	svc.anomalySvc = svc.Service(services.ANOMALY_SVC).(rateLimiter)
	svc.blocklistSvc = svc.Service(services.BLOCKLIST_SVC).(blockChecker)
	return nil
}

func (svc *AdmissionMiddleware) Monitor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := getClientIP(c)

		if _, ok := svc.allowlist[ip]; ok {
			return c.Next()
		}

		if svc.blocklistSvc.IsBlocked(ip) {
			services.RecordBlockedRequest("blocked")
			return shared.ResponseJSON(c, http.StatusForbidden, blockedResponseMessage, nil)
		}

		if !svc.anomalySvc.CheckRateLimit(ip) {
			services.RecordBlockedRequest("rate_limit")
			return shared.ResponseJSON(c, http.StatusTooManyRequests, rateLimitResponseMessage, nil)
		}

		return c.Next()
	}
}

func getClientIP(c *fiber.Ctx) string {
	forwarded := c.Get("X-Forwarded-For")
	if forwarded != "" {
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	realIP := c.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	addr := c.Context().RemoteAddr().String()
	ip, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}

	return ip
}
