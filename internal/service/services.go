// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives validated
// payloads from the handler, issues the store commands through the
// repositories, and decides what the store's replies mean.
package service

import (
	"github.com/deppfellow/product-cache/internal/repository"
	"github.com/deppfellow/product-cache/internal/server"
)

type Services struct {
	Product *ProductService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Product: NewProductService(repos.Product, s.Config.Product.DeleteExpectedCount),
	}, nil
}
