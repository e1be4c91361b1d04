package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/99minutos/task-manager/internal/api/handler"
	"github.com/99minutos/task-manager/internal/api/middleware"
	"github.com/99minutos/task-manager/internal/core/ports"
	"github.com/99minutos/task-manager/internal/core/validation"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	AuthService ports.AuthService
	TaskService ports.TaskService
	Verifier    ports.TokenVerifier
	Revocations ports.TokenRevocations
	Validator   *validation.Validator
	Checkers    []handler.DependencyChecker
	Logger      zerolog.Logger
	// AllowOrigins feeds the CORS middleware. Empty means any origin.
	AllowOrigins []string
	// Registry receives the HTTP metrics and backs /metrics. Nil means the
	// default Prometheus registry, where the custom metrics live.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = d.Validator
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: d.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RequestLogger(d.Logger))
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "taskmanager",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.AuthService, d.Validator)
	taskHandler := handler.NewTaskHandler(d.TaskService, d.Validator)
	healthHandler := handler.NewHealthHandler(d.Checkers...)
	requireAuth := middleware.Auth(d.Verifier, d.Revocations, d.Logger)

	// --- User routes ---
	v1 := e.Group("/api/v1")
	user := v1.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)
	user.GET("/me", authHandler.Me, requireAuth)
	user.DELETE("/delete", authHandler.Delete, requireAuth)
	user.POST("/logout", authHandler.Logout, requireAuth)

	// --- Task routes (caller-scoped) ---
	task := v1.Group("/task", requireAuth)
	task.POST("", taskHandler.Create)
	task.GET("", taskHandler.List)
	task.GET("/:id", taskHandler.Get)
	task.PUT("/:id", taskHandler.Update)
	task.DELETE("/:id", taskHandler.Delete)
	task.GET("/:id/time", taskHandler.Time)

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
