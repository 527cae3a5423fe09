package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/middleware"
	"github.com/noah-isme/timetable-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/timetable-api/pkg/middleware/requestid"
)

// RouterOptions selects the optional parts of the HTTP surface.
type RouterOptions struct {
	APIPrefix      string
	AllowedOrigins []string
	// RequireAuth gates timetable writes behind an active login session.
	RequireAuth   bool
	CookieName    string
	EnableMetrics bool
	EnableDocs    bool
}

// Router bundles the handlers mounted by NewRouter.
type Router struct {
	Timetable     *TimetableHandler
	Auth          *AuthHandler
	Metrics       *MetricsHandler
	Authenticator middleware.Authenticator
	Observer      middleware.RequestObserver
}

// NewRouter builds the gin engine serving the API.
func NewRouter(opts RouterOptions, routes Router, logr *zap.Logger) *gin.Engine {
	if logr == nil {
		logr = zap.NewNop()
	}
	if opts.APIPrefix == "" {
		opts.APIPrefix = "/api"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	if opts.EnableMetrics && routes.Observer != nil {
		r.Use(middleware.Metrics(routes.Observer))
	}

	if routes.Metrics != nil {
		r.GET("/health", routes.Metrics.Health)
		r.GET("/ready", routes.Metrics.Ready)
		if opts.EnableMetrics {
			r.GET("/metrics", routes.Metrics.Prometheus)
		}
	}
	if opts.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(opts.APIPrefix)
	if routes.Auth != nil {
		routes.Auth.Register(api)
	}
	if routes.Timetable != nil {
		var guard []gin.HandlerFunc
		if opts.RequireAuth && routes.Authenticator != nil {
			guard = append(guard, middleware.RequireSession(routes.Authenticator, opts.CookieName))
		}
		routes.Timetable.Register(api, guard...)
	}

	return r
}
