// Package auth 认证与实体解析：JWT 令牌管理、密码哈希、登录服务、HTTP 中间件
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// contextKey context 键类型
type contextKey string

const (
	ctxKeyAuthUser  contextKey = "auth_user"
	ctxKeyCompanyID contextKey = "company_id"
)

// PrincipalCompany 公司主体的令牌角色标签
//
// 公司不是 model.UserType 的成员：公司登录是独立的顶层主体，
// 与用户登录互不回退。
const PrincipalCompany = "company"

// AuthUser 从 JWT 解析出的主体信息
type AuthUser struct {
	ID        string
	Email     string
	UserType  string // model.UserType 之一，或 PrincipalCompany
	CompanyID string
}

// IsAdmin 判断主体是否具备管理权限
func (u *AuthUser) IsAdmin() bool {
	return u.UserType == "admin" || u.UserType == "super_admin" || u.UserType == PrincipalCompany
}

// Config 认证配置
type Config struct {
	JWTSecret    string        `yaml:"jwt_secret"`
	TokenTTL     time.Duration `yaml:"token_ttl"`
	QueryTimeout time.Duration `yaml:"query_timeout"`
}

// DefaultConfig 返回默认认证配置
func DefaultConfig() Config {
	return Config{
		JWTSecret:    "",
		TokenTTL:     7 * 24 * time.Hour,
		QueryTimeout: 5 * time.Second,
	}
}

// Enabled 是否启用认证
func (c Config) Enabled() bool {
	return c.JWTSecret != ""
}

// ============================================================================
// 密码哈希
// ============================================================================

// bcryptCost 固定成本因子，注册与修改密码共用
const bcryptCost = 12

// HashPassword 使用 bcrypt 哈希密码
// bcrypt 自带随机盐：同一明文两次哈希产物不同，但均可通过校验
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

// CheckPassword 验证密码
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ============================================================================
// JWT Token
// ============================================================================

// Claims JWT 声明
type Claims struct {
	jwt.RegisteredClaims
	Email     string `json:"email,omitempty"`
	UserType  string `json:"user_type,omitempty"` // employee | admin | super_admin | company
	CompanyID string `json:"company_id,omitempty"`
}

// GenerateToken 生成访问令牌
//
// JTI 随令牌签发，登出时作为失效名单的键。
func GenerateToken(cfg Config, subjectID, email, userType, companyID string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        fmt.Sprintf("jti-%d", now.UnixNano()),
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TokenTTL)),
		},
		Email:     email,
		UserType:  userType,
		CompanyID: companyID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ParseToken 解析并验证 JWT
func ParseToken(cfg Config, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// ============================================================================
// Context 辅助函数
// ============================================================================

// WithAuthUser 将认证主体注入 context
func WithAuthUser(ctx context.Context, user *AuthUser) context.Context {
	return context.WithValue(ctx, ctxKeyAuthUser, user)
}

// GetAuthUser 从 context 获取认证主体
func GetAuthUser(ctx context.Context) *AuthUser {
	user, _ := ctx.Value(ctxKeyAuthUser).(*AuthUser)
	return user
}

// WithCompanyID 将公司（租户）ID 注入 context
func WithCompanyID(ctx context.Context, companyID string) context.Context {
	return context.WithValue(ctx, ctxKeyCompanyID, companyID)
}

// GetCompanyID 从 context 获取公司 ID
// 返回空字符串表示 super_admin（不限租户）或无认证模式
func GetCompanyID(ctx context.Context) string {
	cid, _ := ctx.Value(ctxKeyCompanyID).(string)
	return cid
}
