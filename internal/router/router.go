// Package router builds the echo instance: global middleware, the system
// routes and the versioned API groups.
package router

import (
	"github.com/deppfellow/go-banking/internal/handler"
	"github.com/deppfellow/go-banking/internal/middleware"
	"github.com/deppfellow/go-banking/internal/server"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middleware.RequestID(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	v1 := router.Group("/api/v1", middlewares.RateLimit.RateLimiter())
	registerAccountOpeningRoutes(v1, h)
	registerAccountOperationRoutes(v1, h)

	return router
}
