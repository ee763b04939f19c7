package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medtrustid-lab/medtrust_api/services"
	"github.com/medtrustid-lab/medtrust_api/shared"
)

func TestRequireRole(t *testing.T) {
	svc := &AuthMiddleware{}

	app := fiber.New()
	app.Get("/staff",
		func(c *fiber.Ctx) error {
			c.Locals(shared.UserRole, c.Get("X-Test-Role"))
			return c.Next()
		},
		svc.RequireRole(shared.RoleStaff),
		func(c *fiber.Ctx) error {
			return c.SendString("ok")
		})

	req := httptest.NewRequest("GET", "/staff", nil)
	req.Header.Set("X-Test-Role", shared.RoleStaff)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	req = httptest.NewRequest("GET", "/staff", nil)
	req.Header.Set("X-Test-Role", shared.RolePatient)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}

func TestRequiredAuthRejectsBadCredentials(t *testing.T) {
	svc := &AuthMiddleware{jwtSvc: &services.JWTService{}}

	app := fiber.New()
	app.Get("/", svc.RequiredAuth(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode, "missing header")

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode, "garbage token")
}
