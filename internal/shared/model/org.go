// Package model 组织结构字典：部门与职位
package model

import "time"

// Department 部门
type Department struct {
	ID          string    `json:"id" bson:"_id"`
	CompanyID   string    `json:"company_id" bson:"company_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	IsActive    bool      `json:"is_active" bson:"is_active"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Designation 职位
type Designation struct {
	ID         string    `json:"id" bson:"_id"`
	CompanyID  string    `json:"company_id" bson:"company_id"`
	Name       string    `json:"name" bson:"name"`
	Department string    `json:"department,omitempty" bson:"department,omitempty"`
	IsActive   bool      `json:"is_active" bson:"is_active"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}
