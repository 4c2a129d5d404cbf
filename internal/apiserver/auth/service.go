package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"hrm-admin/internal/shared/model"
	"hrm-admin/internal/shared/storage"
)

// ============================================================================
// 错误定义
// ============================================================================

var (
	// ErrInvalidCredentials 邮箱不存在或密码错误
	// 两种失败共用同一哨兵值，调用方无法区分，防止账号枚举
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrUnknownRole user_type 不在封闭集合内
	ErrUnknownRole = errors.New("auth: unknown role type")

	// ErrStoreUnavailable 存储不可达或超时
	ErrStoreUnavailable = errors.New("auth: store unavailable")

	// ErrAccountDisabled 账号已停用（密码校验通过后才返回）
	ErrAccountDisabled = errors.New("auth: account disabled")
)

// ============================================================================
// Authenticator - 登录服务
// ============================================================================

// Authenticator 凭证校验与实体解析的组合服务
//
// 无进程级可变状态，无内部重试；每次调用都是独立的存储往返。
type Authenticator struct {
	users     storage.UserStore
	companies storage.CompanyStore
	resolver  *EntityResolver
	cfg       Config
}

// NewAuthenticator 创建登录服务
func NewAuthenticator(users storage.UserStore, companies storage.CompanyStore, resolver *EntityResolver, cfg Config) *Authenticator {
	return &Authenticator{users: users, companies: companies, resolver: resolver, cfg: cfg}
}

// boundCtx 在调用方未设置 deadline 时补默认超时
func (a *Authenticator) boundCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	timeout := a.cfg.QueryTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

// storeErr 把存储层失败统一映射为 ErrStoreUnavailable
func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}

// Authenticate 校验用户凭证并解析角色实体
//
// 流程：规范化邮箱 → 查找用户 → 显式读取哈希 → bcrypt 校验 →
// 停用检查 → 实体解析 → 尽力而为的登录时间更新。
//
// 邮箱不存在与密码错误返回同一个 ErrInvalidCredentials；
// 实体引用悬空不是错误，返回 (user, nil, nil)。
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*model.User, model.RoleEntity, error) {
	ctx, cancel := a.boundCtx(ctx)
	defer cancel()

	user, err := a.users.GetUserByEmail(ctx, model.NormalizeEmail(email))
	if err != nil {
		return nil, nil, storeErr("get user by email", err)
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}

	hash, err := a.users.GetUserPasswordHash(ctx, user.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// 记录在两次读取之间消失，按凭证错误处理
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, storeErr("get password hash", err)
	}
	if !CheckPassword(password, hash) {
		return nil, nil, ErrInvalidCredentials
	}

	// 凭证正确但账号停用：与凭证错误可区分
	if !user.IsActive {
		return nil, nil, ErrAccountDisabled
	}

	entity, err := a.resolver.ResolveEntity(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			// 悬空引用：登录成功，附加档案为空
			log.Printf("[auth] entity %s/%s not found for user %s, proceeding without profile",
				user.UserType, user.EntityID, user.ID)
			entity = nil
		case errors.Is(err, ErrUnknownRole):
			return nil, nil, err
		default:
			return nil, nil, storeErr("resolve entity", err)
		}
	}

	// 登录时间更新失败不影响登录结果
	now := time.Now()
	if err := a.users.UpdateUserLastLogin(ctx, user.ID, now); err != nil {
		log.Printf("[auth] update last login for %s failed: %v", user.ID, err)
	} else {
		user.LastLoginAt = &now
	}

	return user, entity, nil
}

// AuthenticateCompany 校验公司凭证
//
// 公司登录与用户登录完全对称：同样的枚举防护、同样的停用语义，
// 但没有实体解析环节（公司自身就是完整主体）。
func (a *Authenticator) AuthenticateCompany(ctx context.Context, email, password string) (*model.Company, error) {
	ctx, cancel := a.boundCtx(ctx)
	defer cancel()

	company, err := a.companies.GetCompanyByEmail(ctx, model.NormalizeEmail(email))
	if err != nil {
		return nil, storeErr("get company by email", err)
	}
	if company == nil {
		return nil, ErrInvalidCredentials
	}

	hash, err := a.companies.GetCompanyPasswordHash(ctx, company.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storeErr("get company password hash", err)
	}
	if !CheckPassword(password, hash) {
		return nil, ErrInvalidCredentials
	}

	if !company.IsActive {
		return nil, ErrAccountDisabled
	}

	return company, nil
}
