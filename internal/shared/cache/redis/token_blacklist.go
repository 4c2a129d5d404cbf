package redis

import (
	"context"
	"time"

	"hrm-admin/internal/shared/cache"
)

// RevokeToken 将 JTI 加入失效名单
//
// 条目 TTL 对齐令牌剩余有效期，由 Redis 过期机制自动回收。
func (s *Store) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl < cache.TTLTokenBlacklistMin {
		ttl = cache.TTLTokenBlacklistMin
	}
	return s.client.Set(ctx, cache.KeyTokenBlacklist+jti, "1", ttl).Err()
}

// IsTokenRevoked 判断 JTI 是否在失效名单中
func (s *Store) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, cache.KeyTokenBlacklist+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// 确保 Store 实现了 Cache 接口
var _ cache.Cache = (*Store)(nil)
