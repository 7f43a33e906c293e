package push

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ahaven/authors-haven-api/internal/config"
	"github.com/ahaven/authors-haven-api/internal/database"
	"github.com/ahaven/authors-haven-api/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Relay 实时推送中继接口
// 每个用户一个频道，前端网关订阅后转发给客户端
type Relay interface {
	// Publish 向指定用户的频道推送一条事件
	Publish(ctx context.Context, userID uint, payload any) error
}

var (
	relay     Relay
	relayOnce sync.Once
)

// GetRelay 获取推送中继实例
func GetRelay() Relay {
	relayOnce.Do(func() {
		cfg := config.GlobalConfig.Push
		if !cfg.Enabled {
			relay = &noopRelay{}
			return
		}
		prefix := cfg.ChannelPrefix
		if prefix == "" {
			prefix = "notify:user:"
		}
		relay = &redisRelay{
			redis:  database.GetRedis(),
			prefix: prefix,
		}
	})
	return relay
}

// redisRelay 基于Redis发布订阅的推送中继
type redisRelay struct {
	redis  *redis.Client
	prefix string
}

// Publish 向用户频道发布事件
func (r *redisRelay) Publish(ctx context.Context, userID uint, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化推送消息失败: %w", err)
	}

	channel := fmt.Sprintf("%s%d", r.prefix, userID)
	return r.redis.Publish(ctx, channel, data).Err()
}

// noopRelay 推送功能未启用时的空实现
type noopRelay struct{}

// Publish 仅记录日志，不实际推送
func (r *noopRelay) Publish(ctx context.Context, userID uint, payload any) error {
	logger.Warnf("推送功能未启用，跳过推送: 用户=%d", userID)
	return nil
}
