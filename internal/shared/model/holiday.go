// Package model 节假日定义
package model

import "time"

// HolidayStatus 节假日状态
type HolidayStatus string

const (
	HolidayStatusActive   HolidayStatus = "active"
	HolidayStatusInactive HolidayStatus = "inactive"
)

// Holiday 节假日
type Holiday struct {
	ID          string        `json:"id" bson:"_id"`
	CompanyID   string        `json:"company_id" bson:"company_id"`
	Name        string        `json:"name" bson:"name"`
	Date        time.Time     `json:"date" bson:"date"`
	Description string        `json:"description,omitempty" bson:"description,omitempty"`
	Status      HolidayStatus `json:"status" bson:"status"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updated_at"`
}
