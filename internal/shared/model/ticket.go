// Package model 支持工单定义
package model

import "time"

// TicketCategory 工单类别
type TicketCategory string

const (
	TicketCategoryTechnical TicketCategory = "technical"
	TicketCategoryHR        TicketCategory = "hr"
	TicketCategoryFinance   TicketCategory = "finance"
	TicketCategoryAdmin     TicketCategory = "admin"
	TicketCategoryOther     TicketCategory = "other"
)

// Valid 校验工单类别
func (c TicketCategory) Valid() bool {
	switch c {
	case TicketCategoryTechnical, TicketCategoryHR, TicketCategoryFinance, TicketCategoryAdmin, TicketCategoryOther:
		return true
	}
	return false
}

// TicketPriority 工单优先级
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "low"
	TicketPriorityMedium   TicketPriority = "medium"
	TicketPriorityHigh     TicketPriority = "high"
	TicketPriorityCritical TicketPriority = "critical"
)

// TicketStatus 工单状态
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// Ticket 支持工单
type Ticket struct {
	ID          string         `json:"id" bson:"_id"`
	CompanyID   string         `json:"company_id" bson:"company_id"`
	Title       string         `json:"title" bson:"title"`
	Category    TicketCategory `json:"category" bson:"category"`
	Subject     string         `json:"subject" bson:"subject"`
	Description string         `json:"description" bson:"description"`
	Priority    TicketPriority `json:"priority" bson:"priority"`
	Status      TicketStatus   `json:"status" bson:"status"`
	CreatedBy   string         `json:"created_by,omitempty" bson:"created_by,omitempty"` // 发起员工 ID
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" bson:"updated_at"`
}
