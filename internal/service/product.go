package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/deppfellow/product-cache/internal/errs"
	"github.com/deppfellow/product-cache/internal/model"
)

// StoreConfirmation is the status reply the store sends for a successful SET.
const StoreConfirmation = "OK"

// ProductStore is the subset of store commands the product operations need.
// *repository.ProductRepository implements it.
type ProductStore interface {
	Save(ctx context.Context, product *model.Product) (string, error)
	Remove(ctx context.Context, id int64) (int64, error)
	Find(ctx context.Context, id int64) (*model.Product, error)
}

// ProductService maps product operations onto single store commands.
//
// It holds no state of its own; the store is the only source of truth.
type ProductService struct {
	store               ProductStore
	expectedDeleteCount int64
}

// NewProductService builds the service. expectedDeleteCount is the DEL reply
// that counts as a successful deletion (see config.ProductConfig).
func NewProductService(store ProductStore, expectedDeleteCount int64) *ProductService {
	return &ProductService{
		store:               store,
		expectedDeleteCount: expectedDeleteCount,
	}
}

// Fetch returns the product it was given. It does not read the store;
// Lookup does.
func (s *ProductService) Fetch(ctx context.Context, product *model.Product) (*model.Product, error) {
	return product, nil
}

// Create writes the product under its id. It succeeds only when the store
// confirms with "OK"; any other reply is logged and reported as a 500.
func (s *ProductService) Create(ctx context.Context, product *model.Product) error {
	reply, err := s.store.Save(ctx, product)
	if err != nil {
		return fmt.Errorf("failed to cache product %d: %w", product.ID, err)
	}

	if reply != StoreConfirmation {
		zerolog.Ctx(ctx).Error().
			Int64("product_id", product.ID).
			Str("reply", reply).
			Msg("unexpected reply to SET")
		return errs.NewInternalServerError()
	}

	return nil
}

// Delete removes the product under its id. It succeeds only when the store
// reports exactly expectedDeleteCount removed keys; any other count is
// logged and reported as a 500, even when the key was in fact removed.
func (s *ProductService) Delete(ctx context.Context, product *model.Product) error {
	removed, err := s.store.Remove(ctx, product.ID)
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", product.ID, err)
	}

	if removed != s.expectedDeleteCount {
		zerolog.Ctx(ctx).Error().
			Int64("product_id", product.ID).
			Int64("reply", removed).
			Int64("expected", s.expectedDeleteCount).
			Msg("unexpected reply to DEL")
		return errs.NewInternalServerError()
	}

	return nil
}

// Lookup reads the stored product with the given id.
func (s *ProductService) Lookup(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up product %d: %w", id, err)
	}
	return product, nil
}
