package api

import (
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	_ "github.com/taplejung/menu-system/docs"
	"github.com/taplejung/menu-system/internal/api/handler"
	"github.com/taplejung/menu-system/internal/api/middleware"
	"github.com/taplejung/menu-system/internal/core/ports"
	"github.com/taplejung/menu-system/pkg/logger"
)

const metricsSubsystem = "menu_http"

// Dependencies are the collaborators the router wires into handlers. Redis
// and Mongo are nil when the process runs without them.
type Dependencies struct {
	AuthService ports.AuthService
	MenuService ports.MenuService
	Sessions    ports.SessionStore
	Cookie      *middleware.SessionCookie
	DB          *gorm.DB
	Redis       *redis.Client
	Mongo       *mongo.Database
	Log         zerolog.Logger
}

// Options holds the HTTP-level settings.
type Options struct {
	StaticDir       string
	AllowedOrigins  []string
	SlidingSessions bool

	// MetricsRegisterer receives the HTTP collectors. Defaults to the
	// Prometheus default registerer.
	MetricsRegisterer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestContextLogger(deps.Log))
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     opts.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowCredentials: true,
	}))
	registerer := opts.MetricsRegisterer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricsSubsystem,
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService, deps.Cookie, deps.Log)
	staffHandler := handler.NewStaffHandler(deps.AuthService)
	menuHandler := handler.NewMenuHandler(deps.MenuService, deps.Log)

	requireAuth := middleware.RequireAuthenticated()
	requireManager := middleware.RequireManager()

	api := e.Group("/api", middleware.LoadSession(deps.Sessions, deps.Cookie, opts.SlidingSessions))

	// --- Public ---
	api.GET("/public/menu", menuHandler.PublicMenu)

	// --- Auth ---
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/user", authHandler.CurrentUser, requireAuth)

	// --- Staff: any role ---
	staff := api.Group("/staff", requireAuth)
	staff.POST("/menu/add", menuHandler.Add)
	staff.PUT("/menu/update/:id", menuHandler.Update)
	staff.DELETE("/menu/delete/:id", menuHandler.Delete)
	staff.POST("/menu/import", menuHandler.Import, echomiddleware.BodyLimit("6M"))
	staff.PUT("/users/change-password", authHandler.ChangePassword)

	// --- Staff: manager only ---
	staff.GET("/users", staffHandler.List, requireManager)
	staff.POST("/users/add", staffHandler.Add, requireManager)
	staff.DELETE("/users/:id", staffHandler.Delete, requireManager)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis, deps.Mongo)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Static pages ---
	if opts.StaticDir != "" {
		e.Static("/public", filepath.Join(opts.StaticDir, "public"))
		e.Static("/staff", filepath.Join(opts.StaticDir, "staff"))
		e.GET("/", func(c echo.Context) error {
			return c.Redirect(http.StatusFound, "/public/index.html")
		})
	}

	return e
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

// requestContextLogger stores a logger tagged with the request id in the
// request context. Must run after the RequestID middleware.
func requestContextLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := log.With().Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).Logger()
			req := c.Request()
			c.SetRequest(req.WithContext(logger.WithContext(req.Context(), l)))
			return next(c)
		}
	}
}
