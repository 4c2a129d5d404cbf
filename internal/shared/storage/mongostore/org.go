package mongostore

import (
	"context"
	"time"

	"hrm-admin/internal/shared/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ============================================================================
// OrgStore - 部门与职位字典
// ============================================================================

func orgFilter(companyID string, activeOnly bool) bson.D {
	filter := bson.D{{Key: "company_id", Value: companyID}}
	if activeOnly {
		filter = append(filter, bson.E{Key: "is_active", Value: true})
	}
	return filter
}

func (s *Store) CreateDepartment(ctx context.Context, dept *model.Department) error {
	return insertOne(ctx, s.col(ColDepartments), dept)
}

func (s *Store) GetDepartment(ctx context.Context, id string) (*model.Department, error) {
	return findOne[model.Department](ctx, s.col(ColDepartments), bson.D{{Key: "_id", Value: id}})
}

func (s *Store) ListDepartments(ctx context.Context, companyID string, activeOnly bool) ([]*model.Department, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return findMany[model.Department](ctx, s.col(ColDepartments), orgFilter(companyID, activeOnly), opts)
}

func (s *Store) UpdateDepartment(ctx context.Context, dept *model.Department) error {
	return updateFields(ctx, s.col(ColDepartments), dept.ID, bson.D{
		{Key: "name", Value: dept.Name},
		{Key: "description", Value: dept.Description},
		{Key: "updated_at", Value: time.Now()},
	})
}

func (s *Store) SetDepartmentActive(ctx context.Context, id string, active bool) error {
	return updateFields(ctx, s.col(ColDepartments), id, bson.D{
		{Key: "is_active", Value: active},
		{Key: "updated_at", Value: time.Now()},
	})
}

func (s *Store) DeleteDepartment(ctx context.Context, id string) error {
	return deleteByID(ctx, s.col(ColDepartments), id)
}

func (s *Store) CreateDesignation(ctx context.Context, desig *model.Designation) error {
	return insertOne(ctx, s.col(ColDesignations), desig)
}

func (s *Store) GetDesignation(ctx context.Context, id string) (*model.Designation, error) {
	return findOne[model.Designation](ctx, s.col(ColDesignations), bson.D{{Key: "_id", Value: id}})
}

func (s *Store) ListDesignations(ctx context.Context, companyID string, activeOnly bool) ([]*model.Designation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return findMany[model.Designation](ctx, s.col(ColDesignations), orgFilter(companyID, activeOnly), opts)
}

func (s *Store) UpdateDesignation(ctx context.Context, desig *model.Designation) error {
	return updateFields(ctx, s.col(ColDesignations), desig.ID, bson.D{
		{Key: "name", Value: desig.Name},
		{Key: "department", Value: desig.Department},
		{Key: "updated_at", Value: time.Now()},
	})
}

func (s *Store) SetDesignationActive(ctx context.Context, id string, active bool) error {
	return updateFields(ctx, s.col(ColDesignations), id, bson.D{
		{Key: "is_active", Value: active},
		{Key: "updated_at", Value: time.Now()},
	})
}

func (s *Store) DeleteDesignation(ctx context.Context, id string) error {
	return deleteByID(ctx, s.col(ColDesignations), id)
}
