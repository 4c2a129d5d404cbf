// Package model 角色实体定义
//
// entity.go 包含 User.EntityID 可能指向的三类角色实体：
//   - Employee / Admin / SuperAdmin，各自独立集合、独立主键
//
// RoleEntity 是封闭的标签联合：只有本文件中的三个类型实现该接口，
// 解析逻辑集中在 auth 包的 EntityResolver，其他组件不得假设实体结构。
package model

import "time"

// RoleEntity 角色实体（Employee/Admin/SuperAdmin 的统一抽象）
type RoleEntity interface {
	// EntityID 返回实体自身的主键
	EntityID() string

	// EntityType 返回实体对应的用户类型标签
	EntityType() UserType
}

// ============================================================================
// Employee - 员工档案
// ============================================================================

// Employee 员工档案记录
type Employee struct {
	ID          string     `json:"id" bson:"_id"`
	CompanyID   string     `json:"company_id" bson:"company_id"`
	EmpCode     string     `json:"emp_code" bson:"emp_code"` // 员工编号，注册时用作用户名
	FirstName   string     `json:"first_name" bson:"first_name"`
	LastName    string     `json:"last_name" bson:"last_name"`
	Email       string     `json:"email" bson:"email"`
	Mobile      string     `json:"mobile" bson:"mobile"`
	Department  string     `json:"department,omitempty" bson:"department,omitempty"`
	Designation string     `json:"designation,omitempty" bson:"designation,omitempty"`
	Shift       string     `json:"shift,omitempty" bson:"shift,omitempty"`
	JoiningDate *time.Time `json:"joining_date,omitempty" bson:"joining_date,omitempty"`
	IsActive    bool       `json:"is_active" bson:"is_active"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

func (e *Employee) EntityID() string     { return e.ID }
func (e *Employee) EntityType() UserType { return UserTypeEmployee }

// ============================================================================
// Admin - 管理员档案
// ============================================================================

// Admin 管理员档案记录
type Admin struct {
	ID          string    `json:"id" bson:"_id"`
	CompanyID   string    `json:"company_id" bson:"company_id"`
	Username    string    `json:"username" bson:"username"`
	FirstName   string    `json:"first_name" bson:"first_name"`
	LastName    string    `json:"last_name" bson:"last_name"`
	Email       string    `json:"email" bson:"email"`
	Mobile      string    `json:"mobile" bson:"mobile"`
	Permissions []string  `json:"permissions" bson:"permissions"`
	IsActive    bool      `json:"is_active" bson:"is_active"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

func (a *Admin) EntityID() string     { return a.ID }
func (a *Admin) EntityType() UserType { return UserTypeAdmin }

// HasPermission 判断管理员是否具备指定权限
func (a *Admin) HasPermission(permission string) bool {
	for _, p := range a.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// ============================================================================
// SuperAdmin - 超级管理员档案
// ============================================================================

// SuperAdmin 超级管理员档案记录，系统级，不归属单个公司
type SuperAdmin struct {
	ID        string    `json:"id" bson:"_id"`
	Username  string    `json:"username" bson:"username"`
	FirstName string    `json:"first_name" bson:"first_name"`
	LastName  string    `json:"last_name" bson:"last_name"`
	Email     string    `json:"email" bson:"email"`
	Mobile    string    `json:"mobile" bson:"mobile"`
	IsActive  bool      `json:"is_active" bson:"is_active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (s *SuperAdmin) EntityID() string     { return s.ID }
func (s *SuperAdmin) EntityType() UserType { return UserTypeSuperAdmin }
