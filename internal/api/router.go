package api

import (
	"os"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/Sirpyerre/social-network/docs"
	"github.com/Sirpyerre/social-network/internal/api/handler"
	"github.com/Sirpyerre/social-network/internal/api/middleware"
	"github.com/Sirpyerre/social-network/internal/core/ports"
	"github.com/Sirpyerre/social-network/internal/infrastructure/storage"
)

// maxBodySize bounds request bodies; the largest upload is a 5MB post image.
const maxBodySize = "6M"

// Services are the application services the routes are served by.
type Services struct {
	Auth  ports.AuthService
	Users ports.UserService
	Posts ports.PostService
	Feeds ports.FeedService
}

// Options configures the router.
type Options struct {
	JWTSecret string
	UploadDir string
	// ClientDir is served at / when it exists.
	ClientDir string
	// Checks are pinged by the readiness probe.
	Checks map[string]handler.DependencyCheck
	// Registerer receives the HTTP metrics; nil means the default registry.
	Registerer prometheus.Registerer
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options, svc Services) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)

	registerer := opts.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Log))
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit(maxBodySize))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "social",
		Registerer: registerer,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(svc.Auth, svc.Users)
	userHandler := handler.NewUserHandler(svc.Users, svc.Feeds)
	postHandler := handler.NewPostHandler(svc.Posts, svc.Feeds)
	requireAuth := middleware.Auth(opts.JWTSecret)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/me", authHandler.Me, requireAuth)

	// --- User routes ---
	api.GET("/users/search", userHandler.Search)
	api.PUT("/users/profile", userHandler.UpdateProfile, requireAuth)
	api.GET("/users/:username", userHandler.GetProfile)
	api.PUT("/users/:username/follow", userHandler.ToggleFollow, requireAuth)
	api.GET("/users/:username/followers", userHandler.Followers)
	api.GET("/users/:username/following", userHandler.Following)

	// --- Post routes ---
	api.POST("/posts", postHandler.Create, requireAuth)
	api.GET("/posts/feed", postHandler.Feed, requireAuth)
	api.GET("/posts/user/:username", postHandler.UserPosts)
	api.GET("/posts/:id", postHandler.Get)
	api.PUT("/posts/:id/like", postHandler.Like, requireAuth)
	api.POST("/posts/:id/comment", postHandler.Comment, requireAuth)
	api.DELETE("/posts/:id", postHandler.Delete, requireAuth)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(opts.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Static content ---
	if opts.UploadDir != "" {
		e.Static(storage.URLPrefix, opts.UploadDir)
	}
	if opts.ClientDir != "" {
		if info, err := os.Stat(opts.ClientDir); err == nil && info.IsDir() {
			e.Static("/", opts.ClientDir)
		}
	}

	return e
}

// requestLogger writes one access log line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
