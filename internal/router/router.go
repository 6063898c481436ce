// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/product-cache/internal/handler"
	"github.com/deppfellow/product-cache/internal/lib/codec"
	"github.com/deppfellow/product-cache/internal/middleware"
	"github.com/deppfellow/product-cache/internal/server"
)

// NewRouter builds the echo instance with the global middleware chain and
// every route registered.
//
// Order matters: the request id must exist before the New Relic transaction
// is enriched, and both before the request logger is built from them.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.JSONSerializer = codec.NewSonicSerializer()
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerProductRoutes(router, h)

	return router
}
