// Package model 定义核心数据模型
//
// user.go 包含通用登录主体（Principal）的数据模型定义：
//   - User：统一用户记录，通过 user_type + entity_id 弱引用角色实体
//   - UserType：用户类型枚举（封闭集合）
package model

import (
	"strings"
	"time"
)

// ============================================================================
// UserType - 用户类型
// ============================================================================

// UserType 用户类型，决定 entity_id 指向哪个集合
type UserType string

const (
	// UserTypeEmployee 普通员工
	UserTypeEmployee UserType = "employee"

	// UserTypeAdmin 管理员
	UserTypeAdmin UserType = "admin"

	// UserTypeSuperAdmin 超级管理员
	UserTypeSuperAdmin UserType = "super_admin"
)

// Valid 校验 user_type 是否在封闭集合内
// 未知类型必须显式报错，不允许静默忽略
func (t UserType) Valid() bool {
	switch t {
	case UserTypeEmployee, UserTypeAdmin, UserTypeSuperAdmin:
		return true
	}
	return false
}

// ============================================================================
// User - 通用用户记录
// ============================================================================

// User 统一用户记录
//
// EntityID 是弱引用：仅作为查询键，不持有所有权，
// 角色实体被删除后该引用悬空是允许的状态（登录仍成功，附加信息为空）。
type User struct {
	ID           string   `json:"id" bson:"_id"`
	Email        string   `json:"email" bson:"email"`       // 唯一，存储前小写
	Username     string   `json:"username" bson:"username"` // 唯一
	FirstName    string   `json:"first_name" bson:"first_name"`
	LastName     string   `json:"last_name" bson:"last_name"`
	Mobile       string   `json:"mobile" bson:"mobile"`
	ProfilePic   string   `json:"profile_pic,omitempty" bson:"profile_pic,omitempty"` // 仅存路径，上传机制不在本服务范围
	PasswordHash string   `json:"-" bson:"password_hash,omitempty"`                   // never expose in JSON
	UserType     UserType `json:"user_type" bson:"user_type"`
	EntityID     string   `json:"entity_id" bson:"entity_id"` // 角色实体弱引用
	CompanyID    string   `json:"company_id" bson:"company_id"`
	RoleID       string   `json:"role_id,omitempty" bson:"role_id,omitempty"`
	Permissions  []string `json:"permissions,omitempty" bson:"permissions,omitempty"`
	IsActive     bool     `json:"is_active" bson:"is_active"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty" bson:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

// FullName 返回姓名全称
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// NormalizeEmail 规范化邮箱：去空白并小写
// 存储与查询前都必须经过同一规范化，保证大小写不敏感的唯一性
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
