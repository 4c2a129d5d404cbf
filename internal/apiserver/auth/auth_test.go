package auth

import (
	"strings"
	"testing"
	"time"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.JWTSecret = "test-secret"
	return cfg
}

// TestHashPassword 测试密码哈希的加盐性质
func TestHashPassword(t *testing.T) {
	h1, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	// 随机盐：两次哈希产物不同
	if h1 == h2 {
		t.Error("two hashes of the same password are identical")
	}

	// 但均可通过校验
	if !CheckPassword("correct horse battery staple", h1) {
		t.Error("CheckPassword failed for first hash")
	}
	if !CheckPassword("correct horse battery staple", h2) {
		t.Error("CheckPassword failed for second hash")
	}

	// 错误密码不通过
	if CheckPassword("wrong password", h1) {
		t.Error("CheckPassword accepted wrong password")
	}

	// bcrypt 格式前缀
	if !strings.HasPrefix(h1, "$2a$12$") {
		t.Errorf("unexpected hash prefix: %s", h1[:7])
	}
}

// TestTokenRoundTrip 测试令牌签发与解析
func TestTokenRoundTrip(t *testing.T) {
	cfg := testConfig()

	token, err := GenerateToken(cfg, "usr-001", "a@x.com", "admin", "com-001")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken(cfg, token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}

	if claims.Subject != "usr-001" {
		t.Errorf("Subject = %q, want usr-001", claims.Subject)
	}
	if claims.Email != "a@x.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.UserType != "admin" {
		t.Errorf("UserType = %q", claims.UserType)
	}
	if claims.CompanyID != "com-001" {
		t.Errorf("CompanyID = %q", claims.CompanyID)
	}
	if claims.ID == "" {
		t.Error("JTI is empty")
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) <= 0 {
		t.Error("token already expired")
	}
}

// TestParseToken_Invalid 测试无效令牌拒绝
func TestParseToken_Invalid(t *testing.T) {
	cfg := testConfig()

	token, err := GenerateToken(cfg, "usr-001", "a@x.com", "employee", "")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	// 密钥不匹配
	wrongCfg := cfg
	wrongCfg.JWTSecret = "another-secret"
	if _, err := ParseToken(wrongCfg, token); err == nil {
		t.Error("token signed with different secret was accepted")
	}

	// 篡改
	if _, err := ParseToken(cfg, token+"x"); err == nil {
		t.Error("tampered token was accepted")
	}

	// 过期
	expiredCfg := cfg
	expiredCfg.TokenTTL = -time.Hour
	expired, err := GenerateToken(expiredCfg, "usr-001", "a@x.com", "employee", "")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ParseToken(cfg, expired); err == nil {
		t.Error("expired token was accepted")
	}
}

// TestGenerateID 测试 ID 格式与并发注册下的唯一性
func TestGenerateID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := generateID()
		if !strings.HasPrefix(id, "usr-") {
			t.Fatalf("unexpected id prefix: %q", id)
		}
		if len(id) != len("usr-")+12 {
			t.Fatalf("unexpected id length: %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id generated: %q", id)
		}
		seen[id] = true
	}
}
