package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type TokenCache struct {
	client *redis.Client
}

func NewTokenCache(client *redis.Client) *TokenCache {
	return &TokenCache{client: client}
}

func (c *TokenCache) SaveRefresh(ctx context.Context, userID string, refreshToken string, ttl time.Duration) error {
	return c.client.Set(ctx, "refresh_token:"+refreshToken, userID, ttl).Err()
}

// ConsumeRefresh атомарно (GETDEL) забирает токен и возвращает userID.
// Второй вызов с тем же токеном получит redis.Nil
func (c *TokenCache) ConsumeRefresh(ctx context.Context, refreshToken string) (string, error) {
	return c.client.GetDel(ctx, "refresh_token:"+refreshToken).Result()
}

func (c *TokenCache) DeleteRefresh(ctx context.Context, refreshToken string) error {
	return c.client.Del(ctx, "refresh_token:"+refreshToken).Err()
}
