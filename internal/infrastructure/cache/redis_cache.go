// Package cache implementa el caché de stats sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/application/reports"
)

const statsKey = "pos:stats"

var _ reports.StatsCache = (*RedisStatsCache)(nil)

// RedisStatsCache cachea el snapshot del dashboard en Redis con TTL.
type RedisStatsCache struct {
	client *redis.Client
}

// NewRedisStatsCache conecta a Redis y verifica con un ping.
func NewRedisStatsCache(ctx context.Context, addr, password string, db int) (*RedisStatsCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStatsCache{client: client}, nil
}

// GetStats devuelve el snapshot cacheado, o ok=false si no hay.
func (c *RedisStatsCache) GetStats(ctx context.Context) (*dto.StatsResponse, bool, error) {
	raw, err := c.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get stats: %w", err)
	}
	var stats dto.StatsResponse
	if err := json.Unmarshal(raw, &stats); err != nil {
		// Entrada corrupta: tratar como miss.
		return nil, false, nil
	}
	return &stats, true, nil
}

// SetStats guarda el snapshot con TTL.
func (c *RedisStatsCache) SetStats(ctx context.Context, stats *dto.StatsResponse, ttl time.Duration) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	if err := c.client.Set(ctx, statsKey, raw, ttl).Err(); err != nil {
		return fmt.Errorf("set stats: %w", err)
	}
	return nil
}

// Close cierra la conexión.
func (c *RedisStatsCache) Close() error {
	return c.client.Close()
}
