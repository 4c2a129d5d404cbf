package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"hrm-admin/internal/shared/cache"
)

// testStore 连接测试 Redis 实例，不可用时跳过
func testStore(t *testing.T) *Store {
	t.Helper()

	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		url = "redis://localhost:6379/15"
	}

	s, err := NewStoreFromURL(url)
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestTokenBlacklist 失效名单写入与查询
func TestTokenBlacklist(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	jti := fmt.Sprintf("jti-test-%d", time.Now().UnixNano())

	revoked, err := s.IsTokenRevoked(ctx, jti)
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if revoked {
		t.Fatal("fresh jti should not be revoked")
	}

	if err := s.RevokeToken(ctx, jti, time.Minute); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}

	revoked, err = s.IsTokenRevoked(ctx, jti)
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if !revoked {
		t.Error("revoked jti should be reported as revoked")
	}
}

// TestRevokeToken_TTLFloor 过期令牌的登出仍写入最短 TTL 的条目
func TestRevokeToken_TTLFloor(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	jti := fmt.Sprintf("jti-floor-%d", time.Now().UnixNano())

	// 剩余有效期为负（令牌已过期）时条目仍短暂存在
	if err := s.RevokeToken(ctx, jti, -time.Second); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}

	revoked, err := s.IsTokenRevoked(ctx, jti)
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if !revoked {
		t.Error("jti should be present for the minimum TTL window")
	}

	ttl, err := s.client.TTL(ctx, cache.KeyTokenBlacklist+jti).Result()
	if err != nil {
		t.Fatalf("TTL: %v", err)
	}
	if ttl <= 0 || ttl > cache.TTLTokenBlacklistMin {
		t.Errorf("entry TTL = %v, want within (0, %v]", ttl, cache.TTLTokenBlacklistMin)
	}
}
