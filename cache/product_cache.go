package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"backoffice-service/models"

	"github.com/go-redis/redis/v8"
)

const productTTL = 30 * time.Second

// ProductCache keeps product payloads in Redis under a short TTL. It is
// best-effort: any Redis failure is logged and treated as a miss.
type ProductCache struct {
	client *redis.Client
}

func NewProductCache(addr string) *ProductCache {
	return &ProductCache{client: redis.NewClient(&redis.Options{Addr: addr})}
}

func productKey(id int) string {
	return fmt.Sprintf("product:%d", id)
}

func (c *ProductCache) GetProduct(ctx context.Context, id int) (*models.Product, bool) {
	value, err := c.client.Get(ctx, productKey(id)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("Product cache get failed: %v", err)
		return nil, false
	}

	var product models.Product
	if err := json.Unmarshal([]byte(value), &product); err != nil {
		return nil, false
	}
	return &product, true
}

func (c *ProductCache) SetProduct(ctx context.Context, product *models.Product) {
	payload, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, productKey(product.ID), payload, productTTL).Err(); err != nil {
		log.Printf("Product cache set failed: %v", err)
	}
}

func (c *ProductCache) InvalidateProducts(ctx context.Context, ids ...int) {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, productKey(id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Product cache invalidation failed: %v", err)
	}
}

func (c *ProductCache) Close() {
	if err := c.client.Close(); err != nil {
		return
	}
}
