package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis键前缀
const blacklistKeyPrefix = "jwt:blacklist:"

// RedisTokenBlacklist Redis令牌黑名单实现
// 利用键过期时间自动清理失效条目
type RedisTokenBlacklist struct {
	redis *redis.Client
	ctx   context.Context
}

// NewRedisTokenBlacklist 创建Redis令牌黑名单
func NewRedisTokenBlacklist(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{
		redis: client,
		ctx:   context.Background(),
	}
}

// AddToBlacklist 将令牌添加到黑名单
func (b *RedisTokenBlacklist) AddToBlacklist(token string, expireAt time.Time) error {
	duration := time.Until(expireAt)
	if duration <= 0 {
		return nil // 已过期的令牌无需添加
	}
	return b.redis.Set(b.ctx, blacklistKeyPrefix+token, 1, duration).Err()
}

// IsBlacklisted 检查令牌是否在黑名单中
func (b *RedisTokenBlacklist) IsBlacklisted(token string) bool {
	n, err := b.redis.Exists(b.ctx, blacklistKeyPrefix+token).Result()
	if err != nil {
		// Redis不可用时放行，由令牌本身的过期时间兜底
		return false
	}
	return n > 0
}
