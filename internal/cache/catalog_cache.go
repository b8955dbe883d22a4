package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-floor-inventory/internal/model"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const catalogKeyPrefix = "catalog:product:"

// CatalogCache keeps product lookups close to the API. Catalog rows are
// owned elsewhere and treated as immutable, so entries only expire by TTL.
type CatalogCache interface {
	Get(ctx context.Context, productNumber string) (*model.Product, bool)
	Set(ctx context.Context, product *model.Product)
}

type redisCatalogCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisCatalogCache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) CatalogCache {
	return &redisCatalogCache{rdb: rdb, ttl: ttl, logger: logger}
}

func (c *redisCatalogCache) Get(ctx context.Context, productNumber string) (*model.Product, bool) {
	raw, err := c.rdb.Get(ctx, catalogKeyPrefix+productNumber).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("catalog cache read failed", zap.String("product_number", productNumber), zap.Error(err))
		}
		return nil, false
	}

	var product model.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		c.logger.Warn("catalog cache entry corrupt", zap.String("product_number", productNumber), zap.Error(err))
		return nil, false
	}
	return &product, true
}

func (c *redisCatalogCache) Set(ctx context.Context, product *model.Product) {
	raw, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, catalogKeyPrefix+product.ProductNumber, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache write failed", zap.String("product_number", product.ProductNumber), zap.Error(err))
	}
}

type noopCatalogCache struct{}

// NewNoopCatalogCache is used when Redis is not configured
func NewNoopCatalogCache() CatalogCache {
	return noopCatalogCache{}
}

func (noopCatalogCache) Get(context.Context, string) (*model.Product, bool) { return nil, false }
func (noopCatalogCache) Set(context.Context, *model.Product)                {}

// NewRedisClient builds the client from an address; an empty address means no cache
func NewRedisClient(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}
