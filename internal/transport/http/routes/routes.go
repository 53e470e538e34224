package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Osiris4002/ann-dhan/internal/core/port"
	"github.com/Osiris4002/ann-dhan/internal/infra/config"
	"github.com/Osiris4002/ann-dhan/internal/transport/http/handlers"
	"github.com/Osiris4002/ann-dhan/internal/transport/http/middleware"
	"github.com/Osiris4002/ann-dhan/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Auth *usecase.AuthService
	Chat *usecase.ChatService
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config   *config.AppConfig
	Logger   *zap.Logger
	Services ServiceSet
	Identity port.IdentityProvider
	Metrics  *middleware.HTTPMetrics
	Store    StoreChecker
}

// StoreChecker exposes readiness behaviour for the document store.
type StoreChecker interface {
	HealthCheck(ctx context.Context) error
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.EnrichContext())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}
	r.Use(middleware.CORS(deps.Config.CORS.AllowedOrigins))

	healthOptions := make([]handlers.HealthOption, 0, 1)
	if deps.Store != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("firestore", deps.Store.HealthCheck))
	}
	healthHandler := handlers.NewHealthHandler(healthOptions...)

	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Readiness)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		authHandler := handlers.NewAuthHandler(deps.Services.Auth, deps.Logger)
		authHandler.RegisterRoutes(api)

		chatHandler := handlers.NewChatHandler(deps.Services.Chat, deps.Logger)
		chatHandler.RegisterRoutes(api, middleware.OptionalAuth(deps.Identity, deps.Logger))
	}

	return r
}
