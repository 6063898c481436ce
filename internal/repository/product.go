package repository

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/deppfellow/product-cache/internal/lib/codec"
	"github.com/deppfellow/product-cache/internal/model"
	"github.com/deppfellow/product-cache/internal/storeerr"
)

// ProductRepository stores one record per product, keyed by the decimal id,
// holding the product's JSON serialization.
type ProductRepository struct {
	client redis.Cmdable
}

// NewProductRepository builds a repository over any go-redis client
// (single node, cluster, or ring).
func NewProductRepository(client redis.Cmdable) *ProductRepository {
	return &ProductRepository{client: client}
}

// Save issues SET <id> <json> and returns the store's raw status reply.
// Judging the reply is left to the caller.
func (r *ProductRepository) Save(ctx context.Context, product *model.Product) (string, error) {
	payload, err := codec.JSON.Marshal(product)
	if err != nil {
		return "", err
	}

	reply, err := r.client.Set(ctx, product.Key(), string(payload), 0).Result()
	if err != nil {
		return "", storeerr.Wrap(model.ProductEntity, product.Key(), err)
	}

	return reply, nil
}

// Remove issues DEL <id> and returns the store's removed-key count.
func (r *ProductRepository) Remove(ctx context.Context, id int64) (int64, error) {
	key := model.ProductKey(id)

	removed, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return 0, storeerr.Wrap(model.ProductEntity, key, err)
	}

	return removed, nil
}

// Find issues GET <id> and decodes the stored record. A missing key comes
// back as a storeerr.KeyNotFound error.
func (r *ProductRepository) Find(ctx context.Context, id int64) (*model.Product, error) {
	key := model.ProductKey(id)

	payload, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return nil, storeerr.Wrap(model.ProductEntity, key, err)
	}

	product := &model.Product{}
	if err := codec.JSON.UnmarshalFromString(payload, product); err != nil {
		return nil, err
	}

	return product, nil
}
