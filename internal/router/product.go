package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/product-cache/internal/handler"
)

// registerProductRoutes registers the /product resource. GET, POST and
// DELETE on /product all take the product as a JSON body.
func registerProductRoutes(r *echo.Echo, h *handler.Handlers) {
	products := h.Product

	r.GET("/product", handler.Handle(products.Handler, products.FetchProduct, http.StatusOK, handler.NewProductRequest))
	r.POST("/product", handler.HandleText(products.Handler, products.CreateProduct, http.StatusOK, handler.CreatedMessage, handler.NewProductRequest))
	r.DELETE("/product", handler.HandleText(products.Handler, products.DeleteProduct, http.StatusOK, handler.DeletedMessage, handler.NewProductRequest))

	r.GET("/product/:id", handler.Handle(products.Handler, products.LookupProduct, http.StatusOK, handler.NewLookupProductRequest))
}
