// Package mongostore 实现基于 MongoDB 的 PersistentStore
//
// 使用 mongo-go-driver v2，通过 bson tag 实现 model 结构体的序列化/反序列化。
// 所有 Collection 名称和索引在 ensureIndexes 中统一管理。
package mongostore

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection 名称常量
const (
	ColUsers        = "users"
	ColCompanies    = "companies"
	ColEmployees    = "employees"
	ColAdmins       = "admins"
	ColSuperAdmins  = "super_admins"
	ColRoles        = "roles"
	ColDepartments  = "departments"
	ColDesignations = "designations"
	ColShifts       = "shifts"
	ColHolidays     = "holidays"
	ColLeaves       = "leaves"
	ColTickets      = "tickets"
)

// Store 实现 storage.PersistentStore 接口的 MongoDB 驱动
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore 创建 MongoDB 存储实例
//
// uri: MongoDB 连接 URI，如 "mongodb://localhost:27017"
// dbName: 数据库名称，如 "hrm_admin"
func NewStore(uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongostore: connect failed: %w", err)
	}

	// 验证连接
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongostore: ping failed: %w", err)
	}

	db := client.Database(dbName)
	s := &Store{client: client, db: db}

	// 创建索引
	if err := s.ensureIndexes(ctx); err != nil {
		log.Printf("WARNING: mongostore: ensure indexes failed: %v", err)
	}

	return s, nil
}

// Close 关闭 MongoDB 连接
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// col 获取指定 Collection
func (s *Store) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// ensureIndexes 创建所有必要的索引
//
// 唯一性约束（邮箱、用户名、GST）由唯一索引保证，
// 业务层通过 storage.ErrDuplicate 感知冲突。
func (s *Store) ensureIndexes(ctx context.Context) error {
	type idx struct {
		col    string
		keys   bson.D
		unique bool
	}

	indexes := []idx{
		// users：邮箱与用户名全局唯一
		{ColUsers, bson.D{{Key: "email", Value: 1}}, true},
		{ColUsers, bson.D{{Key: "username", Value: 1}}, true},
		{ColUsers, bson.D{{Key: "company_id", Value: 1}}, false},
		{ColUsers, bson.D{{Key: "user_type", Value: 1}}, false},
		{ColUsers, bson.D{{Key: "created_at", Value: -1}}, false},

		// companies：邮箱与 GST 唯一
		{ColCompanies, bson.D{{Key: "email", Value: 1}}, true},
		{ColCompanies, bson.D{{Key: "gst_number", Value: 1}}, true},

		// employees
		{ColEmployees, bson.D{{Key: "company_id", Value: 1}}, false},
		{ColEmployees, bson.D{{Key: "department", Value: 1}}, false},
		{ColEmployees, bson.D{{Key: "emp_code", Value: 1}}, true},

		// admins
		{ColAdmins, bson.D{{Key: "company_id", Value: 1}}, false},

		// roles
		{ColRoles, bson.D{{Key: "company_id", Value: 1}, {Key: "name", Value: 1}}, true},

		// departments / designations / shifts
		{ColDepartments, bson.D{{Key: "company_id", Value: 1}, {Key: "name", Value: 1}}, true},
		{ColDesignations, bson.D{{Key: "company_id", Value: 1}, {Key: "name", Value: 1}}, true},
		{ColShifts, bson.D{{Key: "company_id", Value: 1}, {Key: "name", Value: 1}}, true},

		// holidays
		{ColHolidays, bson.D{{Key: "company_id", Value: 1}, {Key: "date", Value: 1}}, false},

		// leaves
		{ColLeaves, bson.D{{Key: "company_id", Value: 1}}, false},
		{ColLeaves, bson.D{{Key: "employee_id", Value: 1}}, false},
		{ColLeaves, bson.D{{Key: "status", Value: 1}}, false},

		// tickets
		{ColTickets, bson.D{{Key: "company_id", Value: 1}}, false},
		{ColTickets, bson.D{{Key: "status", Value: 1}}, false},
		{ColTickets, bson.D{{Key: "created_at", Value: -1}}, false},
	}

	for _, i := range indexes {
		model := mongo.IndexModel{Keys: i.keys}
		if i.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := s.col(i.col).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", i.col, err)
		}
	}

	return nil
}
