package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLimiter struct {
	allow bool
	calls int
}

func (s *stubLimiter) CheckRateLimit(clientIP string) bool {
	s.calls++
	return s.allow
}

type stubBlocklist struct {
	blocked bool
	calls   int
}

func (s *stubBlocklist) IsBlocked(clientIP string) bool {
	s.calls++
	return s.blocked
}

func newTestApp(limiter *stubLimiter, blocklist *stubBlocklist, allowlist ...string) *fiber.App {
	svc := &AdmissionMiddleware{
		anomalySvc:   limiter,
		blocklistSvc: blocklist,
		allowlist: map[string]struct{}{
			"127.0.0.1": {},
			"::1":       {},
			"localhost": {},
		},
	}
	for _, entry := range allowlist {
		svc.allowlist[entry] = struct{}{}
	}

	app := fiber.New()
	app.Use(svc.Monitor())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestMonitorAdmitsWithinLimit(t *testing.T) {
	limiter := &stubLimiter{allow: true}
	app := newTestApp(limiter, &stubBlocklist{})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Real-IP", "203.0.113.5")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, 1, limiter.calls)
}

func TestMonitorDeniesBlockedIP(t *testing.T) {
	limiter := &stubLimiter{allow: true}
	app := newTestApp(limiter, &stubBlocklist{blocked: true})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Real-IP", "203.0.113.5")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Access denied. Your IP has been blocked due to suspicious activity.")
	assert.Zero(t, limiter.calls, "blocked requests never reach the rate limiter")
}

func TestMonitorDeniesOverLimit(t *testing.T) {
	app := newTestApp(&stubLimiter{allow: false}, &stubBlocklist{})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Real-IP", "203.0.113.5")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 429, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Too many requests. Please try again later.")
}

func TestMonitorAllowlistBypassesChecks(t *testing.T) {
	limiter := &stubLimiter{allow: false}
	blocklist := &stubBlocklist{blocked: true}
	app := newTestApp(limiter, blocklist, "198.51.100.7")

	for _, ip := range []string{"127.0.0.1", "198.51.100.7"} {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Real-IP", ip)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode, "allow-listed %s must bypass", ip)
	}

	assert.Zero(t, limiter.calls)
	assert.Zero(t, blocklist.calls)
}

func TestGetClientIPPrecedence(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(getClientIP(c))
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	req.Header.Set("X-Real-IP", "198.51.100.9")

	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "203.0.113.5", string(body), "first forwarded hop wins")

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Real-IP", "198.51.100.9")

	resp, err = app.Test(req)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, "198.51.100.9", string(body))
}
