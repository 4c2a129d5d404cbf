// Package model 请假单定义
package model

import "time"

// LeaveType 请假类型
type LeaveType string

const (
	LeaveTypeSick   LeaveType = "sick"
	LeaveTypeCasual LeaveType = "casual"
	LeaveTypeEarned LeaveType = "earned"
	LeaveTypeUnpaid LeaveType = "unpaid"
	LeaveTypeOther  LeaveType = "other"
)

// Valid 校验请假类型
func (t LeaveType) Valid() bool {
	switch t {
	case LeaveTypeSick, LeaveTypeCasual, LeaveTypeEarned, LeaveTypeUnpaid, LeaveTypeOther:
		return true
	}
	return false
}

// LeaveStatus 请假单状态
type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

// Leave 请假单
type Leave struct {
	ID         string      `json:"id" bson:"_id"`
	CompanyID  string      `json:"company_id" bson:"company_id"`
	EmployeeID string      `json:"employee_id" bson:"employee_id"`
	Type       LeaveType   `json:"type" bson:"type"`
	FromDate   time.Time   `json:"from_date" bson:"from_date"`
	ToDate     time.Time   `json:"to_date" bson:"to_date"`
	Days       int         `json:"days" bson:"days"`
	Reason     string      `json:"reason" bson:"reason"`
	Status     LeaveStatus `json:"status" bson:"status"`
	ApprovedBy string      `json:"approved_by,omitempty" bson:"approved_by,omitempty"`
	CreatedAt  time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at" bson:"updated_at"`
}

// DaysInclusive 按起止日期计算请假天数（含首尾）
// 调用方未提供 days 时用作缺省值
func DaysInclusive(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	from = from.Truncate(24 * time.Hour)
	to = to.Truncate(24 * time.Hour)
	return int(to.Sub(from).Hours()/24) + 1
}
