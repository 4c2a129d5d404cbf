package mongostore

import (
	"context"
	"time"

	"hrm-admin/internal/shared/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ============================================================================
// EntityStore - 角色实体（Employee / Admin / SuperAdmin）
// ============================================================================

func (s *Store) CreateEmployee(ctx context.Context, emp *model.Employee) error {
	return insertOne(ctx, s.col(ColEmployees), emp)
}

func (s *Store) GetEmployee(ctx context.Context, id string) (*model.Employee, error) {
	return findOne[model.Employee](ctx, s.col(ColEmployees), bson.D{{Key: "_id", Value: id}})
}

func (s *Store) ListEmployees(ctx context.Context, companyID string) ([]*model.Employee, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findMany[model.Employee](ctx, s.col(ColEmployees),
		bson.D{{Key: "company_id", Value: companyID}}, opts)
}

func (s *Store) ListEmployeesByDepartment(ctx context.Context, companyID, department string) ([]*model.Employee, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findMany[model.Employee](ctx, s.col(ColEmployees), bson.D{
		{Key: "company_id", Value: companyID},
		{Key: "department", Value: department},
		{Key: "is_active", Value: true},
	}, opts)
}

func (s *Store) UpdateEmployee(ctx context.Context, emp *model.Employee) error {
	return updateFields(ctx, s.col(ColEmployees), emp.ID, bson.D{
		{Key: "first_name", Value: emp.FirstName},
		{Key: "last_name", Value: emp.LastName},
		{Key: "mobile", Value: emp.Mobile},
		{Key: "department", Value: emp.Department},
		{Key: "designation", Value: emp.Designation},
		{Key: "shift", Value: emp.Shift},
		{Key: "is_active", Value: emp.IsActive},
		{Key: "updated_at", Value: time.Now()},
	})
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	return deleteByID(ctx, s.col(ColEmployees), id)
}

func (s *Store) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	return insertOne(ctx, s.col(ColAdmins), admin)
}

func (s *Store) GetAdmin(ctx context.Context, id string) (*model.Admin, error) {
	return findOne[model.Admin](ctx, s.col(ColAdmins), bson.D{{Key: "_id", Value: id}})
}

func (s *Store) ListAdmins(ctx context.Context, companyID string) ([]*model.Admin, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findMany[model.Admin](ctx, s.col(ColAdmins),
		bson.D{{Key: "company_id", Value: companyID}}, opts)
}

func (s *Store) DeleteAdmin(ctx context.Context, id string) error {
	return deleteByID(ctx, s.col(ColAdmins), id)
}

func (s *Store) CreateSuperAdmin(ctx context.Context, sa *model.SuperAdmin) error {
	return insertOne(ctx, s.col(ColSuperAdmins), sa)
}

func (s *Store) GetSuperAdmin(ctx context.Context, id string) (*model.SuperAdmin, error) {
	return findOne[model.SuperAdmin](ctx, s.col(ColSuperAdmins), bson.D{{Key: "_id", Value: id}})
}
