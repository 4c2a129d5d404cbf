// Package model 公司主体定义
package model

import "time"

// ModulePermissions 公司开通的功能模块
type ModulePermissions struct {
	HRM         bool `json:"hrm" bson:"hrm"`
	CRM         bool `json:"crm" bson:"crm"`
	Recruitment bool `json:"recruitment" bson:"recruitment"`
}

// Company 公司记录，第二类顶层登录主体
//
// 公司登录与用户登录完全独立：各自集合、各自端点，
// 互不回退（不存在"先查用户再查公司"的级联）。
type Company struct {
	ID           string            `json:"id" bson:"_id"`
	CompanyName  string            `json:"company_name" bson:"company_name"`
	Email        string            `json:"email" bson:"email"` // 唯一，存储前小写
	Phone        string            `json:"phone" bson:"phone"`
	Address      string            `json:"address" bson:"address"`
	GSTNumber    string            `json:"gst_number" bson:"gst_number"` // 唯一，存储前大写
	CompanyImg   string            `json:"company_img,omitempty" bson:"company_img,omitempty"`
	PasswordHash string            `json:"-" bson:"password_hash,omitempty"` // never expose in JSON
	Modules      ModulePermissions `json:"modules" bson:"modules"`
	IsActive     bool              `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at" bson:"updated_at"`
}
