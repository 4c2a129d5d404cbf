// Package cache 缓存层 mock 实现
package cache

import (
	"context"
	"sync"
	"time"
)

// ============================================================================
// NoOpCache - 空操作的 Cache 实现（用于测试和无 Redis 部署）
// ============================================================================

// NoOpCache 是一个不做任何操作的 Cache 实现
//
// 未配置 Redis 时使用：登出不吊销令牌，令牌到期自然失效。
type NoOpCache struct{}

// NewNoOpCache 创建 NoOpCache 实例
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Close 关闭缓存
func (c *NoOpCache) Close() error {
	return nil
}

func (c *NoOpCache) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	return nil
}

func (c *NoOpCache) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	return false, nil
}

// 确保 NoOpCache 实现了 Cache 接口
var _ Cache = (*NoOpCache)(nil)

// ============================================================================
// MemoryCache - 进程内 Cache 实现（用于测试）
// ============================================================================

// MemoryCache 基于内存 map 的 Cache 实现，带过期判断
type MemoryCache struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewMemoryCache 创建 MemoryCache 实例
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{revoked: make(map[string]time.Time)}
}

func (c *MemoryCache) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.revoked[jti] = time.Now().Add(ttl)
	return nil
}

func (c *MemoryCache) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	exp, ok := c.revoked[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(exp) {
		delete(c.revoked, jti)
		return false, nil
	}
	return true, nil
}

// Close 关闭缓存
func (c *MemoryCache) Close() error {
	return nil
}

var _ Cache = (*MemoryCache)(nil)
