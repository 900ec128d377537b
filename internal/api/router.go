package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/ulule/limiter/v3"

	_ "github.com/astana-logistics/cargo-desk/docs"
	"github.com/astana-logistics/cargo-desk/internal/api/handler"
	"github.com/astana-logistics/cargo-desk/internal/api/metrics"
	"github.com/astana-logistics/cargo-desk/internal/api/middleware"
	"github.com/astana-logistics/cargo-desk/internal/core/domain"
	"github.com/astana-logistics/cargo-desk/internal/core/ports"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Log zerolog.Logger

	Auth     ports.AuthService
	Gate     ports.Authorizer
	Users    ports.UserService
	Requests ports.ShipmentService
	Activity ports.ActivityService

	// TrustedProxies are CIDR ranges allowed to set X-Forwarded-For.
	TrustedProxies []string

	CookieName   string
	CookieSecure bool
	SessionTTL   time.Duration

	LimiterStore limiter.Store
	LoginRate    string
	PublicRate   string

	Checks map[string]handler.Check
}

// NewRouter builds and returns the Echo instance with all routes registered.
// It must be called once per process: the HTTP metrics register globally.
func NewRouter(d Deps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	ipExtractor, err := middleware.ClientIPExtractor(d.TrustedProxies)
	if err != nil {
		return nil, err
	}
	e.IPExtractor = ipExtractor

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddleware("cargodesk"))
	e.Use(middleware.ClientMeta())

	loginLimit, err := middleware.RateLimit(middleware.RateLimitConfig{
		Name:     "login",
		Rate:     d.LoginRate,
		Store:    d.LimiterStore,
		Rejected: metrics.RateLimitedTotal.WithLabelValues("login"),
		Log:      d.Log,
	})
	if err != nil {
		return nil, err
	}
	publicLimit, err := middleware.RateLimit(middleware.RateLimitConfig{
		Name:     "public",
		Rate:     d.PublicRate,
		Store:    d.LimiterStore,
		Rejected: metrics.RateLimitedTotal.WithLabelValues("public"),
		Log:      d.Log,
	})
	if err != nil {
		return nil, err
	}

	session := middleware.Authenticate(d.Gate, d.CookieName, "")
	managerOnly := middleware.Authenticate(d.Gate, d.CookieName, domain.RoleManager)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, handler.CookieConfig{
		Name:   d.CookieName,
		TTL:    d.SessionTTL,
		Secure: d.CookieSecure,
	})
	profileHandler := handler.NewProfileHandler(d.Users, d.Auth)
	requestHandler := handler.NewRequestHandler(d.Requests)
	publicHandler := handler.NewPublicHandler(d.Requests)
	activityHandler := handler.NewActivityHandler(d.Activity)
	userHandler := handler.NewUserHandler(d.Users)
	healthHandler := handler.NewHealthHandler(d.Checks)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/auth/login", authHandler.Login, loginLimit)
	api.POST("/auth/logout", authHandler.Logout)
	api.POST("/auth/register", authHandler.Register)
	api.GET("/auth/me", authHandler.Me, session)

	// --- Profile ---
	api.PUT("/profile", profileHandler.Update, session)
	api.PUT("/profile/password", profileHandler.ChangePassword, session)

	// --- Shipment requests (staff) ---
	requests := api.Group("/requests", session)
	requests.GET("", requestHandler.List)
	requests.POST("", requestHandler.Create)
	requests.GET("/stats", requestHandler.Stats)
	requests.GET("/:id", requestHandler.Get)
	requests.PUT("/:id", requestHandler.Update)
	requests.PATCH("/:id/status", requestHandler.UpdateStatus)

	// --- Manager administration ---
	api.GET("/activity-logs", activityHandler.List, managerOnly)
	api.GET("/users", userHandler.List, managerOnly)
	api.PATCH("/users/:id/role", userHandler.ChangeRole, managerOnly)

	// --- Public form and tracking (no session) ---
	public := api.Group("/public", publicLimit)
	public.POST("/requests", publicHandler.Submit)
	public.GET("/track/:number", publicHandler.Track)
	public.GET("/track", publicHandler.TrackByPhone)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}
