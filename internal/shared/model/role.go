// Package model 角色与权限定义
package model

import "time"

// RoleStatus 角色状态
type RoleStatus string

const (
	RoleStatusActive   RoleStatus = "active"
	RoleStatusInactive RoleStatus = "inactive"
)

// PermissionActions 单个模块的操作权限矩阵
type PermissionActions struct {
	View   bool `json:"view" bson:"view"`
	Add    bool `json:"add" bson:"add"`
	Update bool `json:"update" bson:"update"`
	Delete bool `json:"delete" bson:"delete"`
	Export bool `json:"export" bson:"export"`
}

// ModulePermission 按模块划分的权限项
type ModulePermission struct {
	Module  string            `json:"module" bson:"module"`
	Actions PermissionActions `json:"actions" bson:"actions"`
}

// Role 自定义角色，公司维度唯一命名
type Role struct {
	ID          string             `json:"id" bson:"_id"`
	CompanyID   string             `json:"company_id" bson:"company_id"`
	Name        string             `json:"name" bson:"name"`
	Status      RoleStatus         `json:"status" bson:"status"`
	Permissions []ModulePermission `json:"permissions" bson:"permissions"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// Allows 判断角色是否允许对指定模块执行指定操作
func (r *Role) Allows(module, action string) bool {
	for _, p := range r.Permissions {
		if p.Module != module {
			continue
		}
		switch action {
		case "view":
			return p.Actions.View
		case "add":
			return p.Actions.Add
		case "update":
			return p.Actions.Update
		case "delete":
			return p.Actions.Delete
		case "export":
			return p.Actions.Export
		}
		return false
	}
	return false
}
