// Package cache 缓存层抽象接口
//
// 提供令牌失效名单等临时状态的存取能力，当前由 Redis 实现。
package cache

import (
	"context"
	"time"
)

// ============================================================================
// 缓存接口定义
// ============================================================================

// TokenBlacklist 令牌失效名单接口
//
// 登出时把令牌的 JTI 加入名单，TTL 对齐令牌剩余有效期，
// 过期后条目自动清理，名单不会无限增长。
type TokenBlacklist interface {
	// RevokeToken 将指定 JTI 加入失效名单，ttl 为令牌剩余有效期
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error

	// IsTokenRevoked 判断 JTI 是否已失效
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

// ============================================================================
// 组合接口
// ============================================================================

// Cache 缓存组合接口
type Cache interface {
	TokenBlacklist
	Close() error
}
