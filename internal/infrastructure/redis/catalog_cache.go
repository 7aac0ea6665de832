// Package redis implementa el cache de lectura del catálogo sobre Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tu-usuario/merkato-api/internal/application/usecase"
)

var _ usecase.CatalogCache = (*CatalogCache)(nil)

const catalogKeyPattern = "catalog:*"

// CatalogCache cache read-through del listado público de productos.
// Un fallo de Redis degrada a leer de PostgreSQL, nunca rompe la petición.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache conecta a Redis y verifica con PING.
func NewCatalogCache(ctx context.Context, addr, password string, db int, ttl time.Duration) (*CatalogCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CatalogCache{client: client, ttl: ttl}, nil
}

// Get devuelve el valor cacheado, o (nil, nil) en miss.
func (c *CatalogCache) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return raw, nil
}

// Set escribe el valor con el TTL configurado.
func (c *CatalogCache) Set(ctx context.Context, key string, value []byte) error {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// InvalidateAll borra todas las entradas del catálogo tras una mutación.
func (c *CatalogCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, catalogKeyPattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Close cierra la conexión a Redis.
func (c *CatalogCache) Close() error {
	return c.client.Close()
}
