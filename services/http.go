package services

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/medtrustid-lab/medtrust_api/services/handlers"
	"github.com/medtrustid-lab/medtrust_api/shared"
)

// HttpService owns the public API surface. Every route sits behind the
// admission gate; auth and role guards are layered per route group.
type HttpService struct {
	context.DefaultService

	authSvc    *AuthService
	consentSvc *ConsentService
	requestSvc *AccessRequestService
	alertSvc   *AlertService
	patientSvc *PatientService

	monitoringSvc *MonitoringService

	// admission and auth guards are resolved by service id at Start to keep
	// this package free of an import cycle with middleware.
	admissionGate RouteGuard
	authGuard     AuthGuard

	port   int
	server *fiber.App
}

// RouteGuard is the admission middleware contract.
type RouteGuard interface {
	Monitor() fiber.Handler
}

// AuthGuard is the authentication middleware contract.
type AuthGuard interface {
	RequiredAuth() fiber.Handler
	RequireRole(role string) fiber.Handler
}

const HTTP_SVC = "http_svc"

const (
	ADMISSION_MIDDLEWARE_SVC = "admission"
	AUTH_MIDDLEWARE_SVC      = "auth"
)

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.consentSvc = svc.Service(CONSENT_SVC).(*ConsentService)
	svc.requestSvc = svc.Service(ACCESS_REQUEST_SVC).(*AccessRequestService)
	svc.alertSvc = svc.Service(ALERT_SVC).(*AlertService)
	svc.patientSvc = svc.Service(PATIENT_SVC).(*PatientService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)
	svc.admissionGate = svc.Service(ADMISSION_MIDDLEWARE_SVC).(RouteGuard)
	svc.authGuard = svc.Service(AUTH_MIDDLEWARE_SVC).(AuthGuard)

	app := fiber.New(fiber.Config{
		ErrorHandler: svc.handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders: "Content-Length",
	}))
	app.Use(MonitoringMiddleware(svc.monitoringSvc))
	app.Use(svc.admissionGate.Monitor())

	svc.registerRoutes(app)

	app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseNotFound(c)
	})

	svc.server = app
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

func (svc *HttpService) registerRoutes(app *fiber.App) {
	authHandler := handlers.NewAuthHandler(svc.authSvc)
	consentHandler := handlers.NewConsentHandler(svc.consentSvc)
	requestHandler := handlers.NewAccessRequestHandler(svc.requestSvc)
	securityHandler := handlers.NewSecurityHandler(svc.alertSvc)
	patientHandler := handlers.NewPatientHandler(svc.patientSvc)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	consent := api.Group("/consent", svc.authGuard.RequiredAuth())
	consent.Post("/create", svc.authGuard.RequireRole(shared.RolePatient), consentHandler.Create)
	consent.Post("/:consentId/revoke", svc.authGuard.RequireRole(shared.RolePatient), consentHandler.Revoke)
	consent.Get("/patient/current", svc.authGuard.RequireRole(shared.RolePatient), consentHandler.ListCurrent)
	consent.Get("/staff/consents", svc.authGuard.RequireRole(shared.RoleStaff), consentHandler.ListAll)
	consent.Get("/patient/:patientId", svc.authGuard.RequireRole(shared.RoleStaff), consentHandler.ListByPatient)

	requests := api.Group("/access-requests", svc.authGuard.RequiredAuth())
	requests.Post("/create", svc.authGuard.RequireRole(shared.RoleStaff), requestHandler.Create)
	requests.Get("/my", requestHandler.ListMine)
	requests.Post("/:requestId/decision", svc.authGuard.RequireRole(shared.RolePatient), requestHandler.Decide)

	security := api.Group("/security", svc.authGuard.RequiredAuth(), svc.authGuard.RequireRole(shared.RoleStaff))
	security.Get("/alerts", securityHandler.GetAlerts)
	security.Get("/stats", securityHandler.GetStats)
	security.Post("/alerts/:id/resolve", securityHandler.ResolveAlert)

	patients := api.Group("/patients")
	patients.Get("/health", patientHandler.Health)
	patients.Get("/search", svc.authGuard.RequiredAuth(), svc.authGuard.RequireRole(shared.RoleStaff), patientHandler.Search)
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	if fiberErr, ok := err.(*fiber.Error); ok {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	return shared.ResponseInternalError(c, err)
}
