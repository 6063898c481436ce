// Package handler is the first layer after the router.
//
// It binds and validates requests through the validation package, calls
// the service layer, and writes the responses. It is the interface between
// HTTP and the product operations.
package handler

import (
	"github.com/deppfellow/product-cache/internal/server"
	"github.com/deppfellow/product-cache/internal/service"
)

// Handlers groups all HTTP handlers.
type Handlers struct {
	Health  *HealthHandler
	Product *ProductHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		Product: NewProductHandler(s, services.Product),
	}
}
