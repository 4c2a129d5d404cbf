package mongostore

import (
	"context"
	"time"

	"hrm-admin/internal/shared/model"
	"hrm-admin/internal/shared/storage"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ============================================================================
// LeaveStore
// ============================================================================

func (s *Store) CreateLeave(ctx context.Context, leave *model.Leave) error {
	return insertOne(ctx, s.col(ColLeaves), leave)
}

func (s *Store) GetLeave(ctx context.Context, id string) (*model.Leave, error) {
	return findOne[model.Leave](ctx, s.col(ColLeaves), bson.D{{Key: "_id", Value: id}})
}

func (s *Store) ListLeaves(ctx context.Context, filter storage.LeaveFilter) ([]*model.Leave, error) {
	query := bson.D{}
	if filter.CompanyID != "" {
		query = append(query, bson.E{Key: "company_id", Value: filter.CompanyID})
	}
	if filter.EmployeeID != "" {
		query = append(query, bson.E{Key: "employee_id", Value: filter.EmployeeID})
	}
	if filter.Status != "" {
		query = append(query, bson.E{Key: "status", Value: filter.Status})
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findMany[model.Leave](ctx, s.col(ColLeaves), query, opts)
}

func (s *Store) UpdateLeave(ctx context.Context, leave *model.Leave) error {
	return updateFields(ctx, s.col(ColLeaves), leave.ID, bson.D{
		{Key: "type", Value: leave.Type},
		{Key: "from_date", Value: leave.FromDate},
		{Key: "to_date", Value: leave.ToDate},
		{Key: "days", Value: leave.Days},
		{Key: "reason", Value: leave.Reason},
		{Key: "updated_at", Value: time.Now()},
	})
}

// SetLeaveStatus 审批：状态流转并记录审批人
func (s *Store) SetLeaveStatus(ctx context.Context, id string, status model.LeaveStatus, approvedBy string) error {
	return updateFields(ctx, s.col(ColLeaves), id, bson.D{
		{Key: "status", Value: status},
		{Key: "approved_by", Value: approvedBy},
		{Key: "updated_at", Value: time.Now()},
	})
}

func (s *Store) DeleteLeave(ctx context.Context, id string) error {
	return deleteByID(ctx, s.col(ColLeaves), id)
}
