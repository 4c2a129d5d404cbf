package mongostore

import (
	"context"
	"time"

	"hrm-admin/internal/shared/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ============================================================================
// RoleStore
// ============================================================================

func (s *Store) CreateRole(ctx context.Context, role *model.Role) error {
	return insertOne(ctx, s.col(ColRoles), role)
}

func (s *Store) GetRole(ctx context.Context, id string) (*model.Role, error) {
	return findOne[model.Role](ctx, s.col(ColRoles), bson.D{{Key: "_id", Value: id}})
}

func (s *Store) ListRoles(ctx context.Context, companyID string) ([]*model.Role, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findMany[model.Role](ctx, s.col(ColRoles),
		bson.D{{Key: "company_id", Value: companyID}}, opts)
}

func (s *Store) UpdateRole(ctx context.Context, role *model.Role) error {
	return updateFields(ctx, s.col(ColRoles), role.ID, bson.D{
		{Key: "name", Value: role.Name},
		{Key: "status", Value: role.Status},
		{Key: "permissions", Value: role.Permissions},
		{Key: "updated_at", Value: time.Now()},
	})
}

func (s *Store) DeleteRole(ctx context.Context, id string) error {
	return deleteByID(ctx, s.col(ColRoles), id)
}
