package auth

import (
	"sync"
	"time"
)

// BlacklistInterface 令牌黑名单接口
type BlacklistInterface interface {
	// AddToBlacklist 将令牌添加到黑名单
	AddToBlacklist(token string, expireAt time.Time) error

	// IsBlacklisted 检查令牌是否在黑名单中
	IsBlacklisted(token string) bool
}

var (
	currentBlacklist BlacklistInterface
	blacklistMutex   sync.RWMutex
)

// GetTokenBlacklist 获取当前黑名单实例，默认为内存黑名单
func GetTokenBlacklist() BlacklistInterface {
	blacklistMutex.RLock()
	if currentBlacklist != nil {
		defer blacklistMutex.RUnlock()
		return currentBlacklist
	}
	blacklistMutex.RUnlock()

	blacklistMutex.Lock()
	defer blacklistMutex.Unlock()
	if currentBlacklist == nil {
		currentBlacklist = NewMemoryBlacklist()
	}
	return currentBlacklist
}

// UseBlacklist 设置黑名单实现（服务启动时切换为Redis实现）
func UseBlacklist(b BlacklistInterface) {
	blacklistMutex.Lock()
	defer blacklistMutex.Unlock()
	currentBlacklist = b
}

// MemoryBlacklist 内存令牌黑名单
type MemoryBlacklist struct {
	tokens map[string]time.Time // 令牌->过期时间映射
	mutex  sync.RWMutex
}

// NewMemoryBlacklist 创建内存黑名单
func NewMemoryBlacklist() *MemoryBlacklist {
	b := &MemoryBlacklist{
		tokens: make(map[string]time.Time),
	}
	// 启动定期清理过期令牌的goroutine
	go b.cleanupTask()
	return b
}

// AddToBlacklist 将令牌添加到黑名单
func (b *MemoryBlacklist) AddToBlacklist(token string, expireAt time.Time) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.tokens[token] = expireAt
	return nil
}

// IsBlacklisted 检查令牌是否在黑名单中
func (b *MemoryBlacklist) IsBlacklisted(token string) bool {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	expireAt, exists := b.tokens[token]
	if !exists {
		return false
	}
	// 已过期的令牌无需继续拦截
	return time.Now().Before(expireAt)
}

// cleanupTask 定期清理过期的令牌
func (b *MemoryBlacklist) cleanupTask() {
	ticker := time.NewTicker(6 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		b.cleanup()
	}
}

// cleanup 清理过期的令牌
func (b *MemoryBlacklist) cleanup() {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	now := time.Now()
	for token, expireAt := range b.tokens {
		if now.After(expireAt) {
			delete(b.tokens, token)
		}
	}
}
