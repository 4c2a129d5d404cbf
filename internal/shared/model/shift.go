// Package model 班次定义
package model

import "time"

// Shift 班次，StartTime/EndTime 为 "HH:MM" 格式
type Shift struct {
	ID        string    `json:"id" bson:"_id"`
	CompanyID string    `json:"company_id" bson:"company_id"`
	Name      string    `json:"name" bson:"name"`
	StartTime string    `json:"start_time" bson:"start_time"` // 如 "09:00"
	EndTime   string    `json:"end_time" bson:"end_time"`     // 如 "17:00"
	WeekOff   string    `json:"week_off" bson:"week_off"`     // 如 "Sunday"
	IsActive  bool      `json:"is_active" bson:"is_active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
