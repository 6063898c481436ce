// Package repository handles all interactions with the key-value store.
//
// It owns the store commands (SET, DEL, GET) and the encoding of records,
// keeping go-redis details away from the service layer.
package repository

import (
	"github.com/deppfellow/product-cache/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Product *ProductRepository
}

// NewRepositories constructs the repository container on top of the
// server's shared store client.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Product: NewProductRepository(s.KV.Client),
	}
}
