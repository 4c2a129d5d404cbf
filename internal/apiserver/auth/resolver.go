package auth

import (
	"context"
	"fmt"

	"hrm-admin/internal/shared/model"
	"hrm-admin/internal/shared/storage"
)

// EntityResolver 按 user_type 把用户映射到其角色实体
//
// user_type 是封闭集合：每个标签对应一个独立集合，
// 新增类型必须在此处显式接入，未知标签永远报错而不是静默降级。
type EntityResolver struct {
	store storage.EntityStore
}

// NewEntityResolver 创建实体解析器
func NewEntityResolver(store storage.EntityStore) *EntityResolver {
	return &EntityResolver{store: store}
}

// ResolveEntity 解析用户的角色实体
//
// EntityID 是弱引用：引用悬空时返回 storage.ErrNotFound，
// 由调用方决定是否降级（登录场景降级为无附加档案）。
func (r *EntityResolver) ResolveEntity(ctx context.Context, user *model.User) (model.RoleEntity, error) {
	switch user.UserType {
	case model.UserTypeEmployee:
		emp, err := r.store.GetEmployee(ctx, user.EntityID)
		if err != nil {
			return nil, err
		}
		if emp == nil {
			return nil, storage.ErrNotFound
		}
		return emp, nil

	case model.UserTypeAdmin:
		admin, err := r.store.GetAdmin(ctx, user.EntityID)
		if err != nil {
			return nil, err
		}
		if admin == nil {
			return nil, storage.ErrNotFound
		}
		return admin, nil

	case model.UserTypeSuperAdmin:
		sa, err := r.store.GetSuperAdmin(ctx, user.EntityID)
		if err != nil {
			return nil, err
		}
		if sa == nil {
			return nil, storage.ErrNotFound
		}
		return sa, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, user.UserType)
	}
}
