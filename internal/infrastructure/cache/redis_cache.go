package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/tu-usuario/tienda-pos/internal/application/dto"
	"github.com/tu-usuario/tienda-pos/internal/application/lote"
)

var _ lote.AlertCache = (*RedisAlertCache)(nil)

// RedisAlertCache caché del resumen de alertas de vencimiento sobre Redis.
type RedisAlertCache struct {
	client *redis.Client
}

// NewRedisAlertCache crea el caché conectado a addr.
func NewRedisAlertCache(addr, password string, db int) *RedisAlertCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisAlertCache{client: client}
}

func (c *RedisAlertCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisAlertCache) Close() error {
	return c.client.Close()
}

// Get devuelve el resumen cacheado; el segundo valor indica hit.
func (c *RedisAlertCache) Get(ctx context.Context, key string) (*dto.AlertasLotes, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var alertas dto.AlertasLotes
	if err := json.Unmarshal([]byte(val), &alertas); err != nil {
		return nil, false, err
	}
	return &alertas, true, nil
}

// Set guarda el resumen con TTL.
func (c *RedisAlertCache) Set(ctx context.Context, key string, value *dto.AlertasLotes, ttl time.Duration) error {
	if value == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}
