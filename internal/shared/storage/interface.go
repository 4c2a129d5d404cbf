// Package storage 定义持久化存储层抽象接口
//
// 设计原则：依赖倒置 (DIP)
//   - 调用方只依赖接口，不知道具体实现
//   - 具体实现在子包中：mongostore/
//   - 初始化时通过依赖注入传入实现，不存在进程级单例
//
// 约定：Get* 方法在记录不存在时返回 (nil, nil)，
// 写方法（Update*/Delete*）在目标不存在时返回 ErrNotFound。
package storage

import (
	"context"
	"time"

	"hrm-admin/internal/shared/model"
)

// UserFilter 用户列表查询过滤条件
type UserFilter struct {
	CompanyID string
	Search    string // 大小写不敏感的正则匹配：username/email/姓名/手机号
	UserType  string
	IsActive  *bool
	Limit     int
	Offset    int
}

// UserStore 用户存储接口
//
// GetUserByEmail / GetUserByID 默认通过投影排除 password_hash；
// 凭证读取是显式能力（GetUserPasswordHash），不是默认行为。
// UpdateUser 只写档案字段，永远不触碰 password_hash。
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserPasswordHash(ctx context.Context, id string) (string, error)
	ListUsers(ctx context.Context, filter UserFilter) ([]*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	UpdateUserPassword(ctx context.Context, id, passwordHash string) error
	UpdateUserLastLogin(ctx context.Context, id string, at time.Time) error
	UpdateUserActive(ctx context.Context, id string, active bool) error
	DeleteUser(ctx context.Context, id string) error
}

// EntityStore 角色实体存储接口
//
// 三类实体各自独立集合；User.EntityID 是弱引用，
// 删除实体不级联删除用户，悬空引用是允许的状态。
type EntityStore interface {
	CreateEmployee(ctx context.Context, emp *model.Employee) error
	GetEmployee(ctx context.Context, id string) (*model.Employee, error)
	ListEmployees(ctx context.Context, companyID string) ([]*model.Employee, error)
	ListEmployeesByDepartment(ctx context.Context, companyID, department string) ([]*model.Employee, error)
	UpdateEmployee(ctx context.Context, emp *model.Employee) error
	DeleteEmployee(ctx context.Context, id string) error

	CreateAdmin(ctx context.Context, admin *model.Admin) error
	GetAdmin(ctx context.Context, id string) (*model.Admin, error)
	ListAdmins(ctx context.Context, companyID string) ([]*model.Admin, error)
	DeleteAdmin(ctx context.Context, id string) error

	CreateSuperAdmin(ctx context.Context, sa *model.SuperAdmin) error
	GetSuperAdmin(ctx context.Context, id string) (*model.SuperAdmin, error)
}

// CompanyStore 公司存储接口
type CompanyStore interface {
	CreateCompany(ctx context.Context, company *model.Company) error
	GetCompanyByEmail(ctx context.Context, email string) (*model.Company, error)
	GetCompanyByID(ctx context.Context, id string) (*model.Company, error)
	GetCompanyPasswordHash(ctx context.Context, id string) (string, error)
	ListCompanies(ctx context.Context) ([]*model.Company, error)
	UpdateCompany(ctx context.Context, company *model.Company) error
	DeleteCompany(ctx context.Context, id string) error
}

// RoleStore 角色存储接口
type RoleStore interface {
	CreateRole(ctx context.Context, role *model.Role) error
	GetRole(ctx context.Context, id string) (*model.Role, error)
	ListRoles(ctx context.Context, companyID string) ([]*model.Role, error)
	UpdateRole(ctx context.Context, role *model.Role) error
	DeleteRole(ctx context.Context, id string) error
}

// OrgStore 部门/职位字典存储接口
type OrgStore interface {
	CreateDepartment(ctx context.Context, dept *model.Department) error
	GetDepartment(ctx context.Context, id string) (*model.Department, error)
	ListDepartments(ctx context.Context, companyID string, activeOnly bool) ([]*model.Department, error)
	UpdateDepartment(ctx context.Context, dept *model.Department) error
	SetDepartmentActive(ctx context.Context, id string, active bool) error
	DeleteDepartment(ctx context.Context, id string) error

	CreateDesignation(ctx context.Context, desig *model.Designation) error
	GetDesignation(ctx context.Context, id string) (*model.Designation, error)
	ListDesignations(ctx context.Context, companyID string, activeOnly bool) ([]*model.Designation, error)
	UpdateDesignation(ctx context.Context, desig *model.Designation) error
	SetDesignationActive(ctx context.Context, id string, active bool) error
	DeleteDesignation(ctx context.Context, id string) error
}

// ShiftStore 班次存储接口
type ShiftStore interface {
	CreateShift(ctx context.Context, shift *model.Shift) error
	GetShift(ctx context.Context, id string) (*model.Shift, error)
	ListShifts(ctx context.Context, companyID string, activeOnly bool) ([]*model.Shift, error)
	UpdateShift(ctx context.Context, shift *model.Shift) error
	SetShiftActive(ctx context.Context, id string, active bool) error
	DeleteShift(ctx context.Context, id string) error
}

// HolidayStore 节假日存储接口
type HolidayStore interface {
	CreateHoliday(ctx context.Context, holiday *model.Holiday) error
	GetHoliday(ctx context.Context, id string) (*model.Holiday, error)
	ListHolidays(ctx context.Context, companyID string) ([]*model.Holiday, error)
	UpdateHoliday(ctx context.Context, holiday *model.Holiday) error
	DeleteHoliday(ctx context.Context, id string) error
}

// LeaveFilter 请假单查询过滤条件
type LeaveFilter struct {
	CompanyID  string
	EmployeeID string
	Status     string
}

// LeaveStore 请假单存储接口
type LeaveStore interface {
	CreateLeave(ctx context.Context, leave *model.Leave) error
	GetLeave(ctx context.Context, id string) (*model.Leave, error)
	ListLeaves(ctx context.Context, filter LeaveFilter) ([]*model.Leave, error)
	UpdateLeave(ctx context.Context, leave *model.Leave) error
	SetLeaveStatus(ctx context.Context, id string, status model.LeaveStatus, approvedBy string) error
	DeleteLeave(ctx context.Context, id string) error
}

// TicketFilter 工单查询过滤条件
type TicketFilter struct {
	CompanyID string
	Status    string
	Priority  string
}

// TicketStore 工单存储接口
type TicketStore interface {
	CreateTicket(ctx context.Context, ticket *model.Ticket) error
	GetTicket(ctx context.Context, id string) (*model.Ticket, error)
	ListTickets(ctx context.Context, filter TicketFilter) ([]*model.Ticket, error)
	UpdateTicket(ctx context.Context, ticket *model.Ticket) error
	DeleteTicket(ctx context.Context, id string) error
}

// PersistentStore 持久化存储组合接口
type PersistentStore interface {
	UserStore
	EntityStore
	CompanyStore
	RoleStore
	OrgStore
	ShiftStore
	HolidayStore
	LeaveStore
	TicketStore
	Close() error
}
