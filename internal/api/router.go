package api

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/sweetshop/sweet-shop-manager/docs"
	"github.com/sweetshop/sweet-shop-manager/internal/api/handler"
	"github.com/sweetshop/sweet-shop-manager/internal/api/middleware"
	"github.com/sweetshop/sweet-shop-manager/internal/core/domain"
	"github.com/sweetshop/sweet-shop-manager/internal/core/ports"
)

// Options tunes the HTTP surface.
type Options struct {
	Prefix         string   // API route prefix, e.g. "/api"
	AllowOrigins   []string // CORS origins; empty allows all
	AuthRatePerSec float64  // per-IP limit on /auth routes; 0 disables
	AuthRateBurst  int
	BodyLimit      string // e.g. "1M"
}

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Auth       ports.AuthService
	Sweets     ports.SweetService
	Movements  ports.MovementService
	Recorder   handler.MovementRecorder // optional; nil disables stock history
	Authorizer ports.Authorizer
	Mongo      handler.Pinger
	Redis      handler.Pinger // optional
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
// Each router owns its own Prometheus registry for HTTP metrics.
func NewRouter(deps Deps, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: allowOrigins(opts.AllowOrigins),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	if opts.BodyLimit != "" {
		e.Use(echomiddleware.BodyLimit(opts.BodyLimit))
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "sweetshop",
		Subsystem:  "http",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	sweetHandler := handler.NewSweetHandler(deps.Sweets, deps.Recorder, deps.Log)
	movementHandler := handler.NewMovementHandler(deps.Movements)
	healthHandler := handler.NewHealthHandler(deps.Mongo, deps.Redis)

	adminOnly := middleware.RequireRole(deps.Authorizer, domain.RoleAdmin)

	api := e.Group(normalizePrefix(opts.Prefix))

	// --- Auth routes ---
	auth := api.Group("/auth", middleware.RateLimit(opts.AuthRatePerSec, opts.AuthRateBurst))
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/admins", authHandler.CreateAdmin, adminOnly)

	// --- Sweet routes ---
	sweets := api.Group("/sweets")
	sweets.GET("", sweetHandler.List)
	sweets.GET("/search", sweetHandler.Search)
	sweets.GET("/:id", sweetHandler.Get)
	sweets.POST("", sweetHandler.Create, adminOnly)
	sweets.PUT("/:id", sweetHandler.Update, adminOnly)
	sweets.DELETE("/:id", sweetHandler.Delete, adminOnly)
	sweets.PATCH("/:id/purchase", sweetHandler.Purchase)
	sweets.PATCH("/:id/restock", sweetHandler.Restock, adminOnly)
	sweets.GET("/:id/movements", movementHandler.History, adminOnly)

	// --- Operational routes (no auth required) ---
	e.GET("/", healthHandler.Banner)
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func normalizePrefix(p string) string {
	p = strings.TrimRight(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func allowOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
