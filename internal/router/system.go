package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/product-cache/internal/handler"
)

// registerSystemRoutes registers endpoints that are not part of the product
// resource.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
}
