package mongostore

import (
	"context"
	"time"

	"hrm-admin/internal/shared/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ============================================================================
// ShiftStore
// ============================================================================

func (s *Store) CreateShift(ctx context.Context, shift *model.Shift) error {
	return insertOne(ctx, s.col(ColShifts), shift)
}

func (s *Store) GetShift(ctx context.Context, id string) (*model.Shift, error) {
	return findOne[model.Shift](ctx, s.col(ColShifts), bson.D{{Key: "_id", Value: id}})
}

func (s *Store) ListShifts(ctx context.Context, companyID string, activeOnly bool) ([]*model.Shift, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return findMany[model.Shift](ctx, s.col(ColShifts), orgFilter(companyID, activeOnly), opts)
}

func (s *Store) UpdateShift(ctx context.Context, shift *model.Shift) error {
	return updateFields(ctx, s.col(ColShifts), shift.ID, bson.D{
		{Key: "name", Value: shift.Name},
		{Key: "start_time", Value: shift.StartTime},
		{Key: "end_time", Value: shift.EndTime},
		{Key: "week_off", Value: shift.WeekOff},
		{Key: "updated_at", Value: time.Now()},
	})
}

func (s *Store) SetShiftActive(ctx context.Context, id string, active bool) error {
	return updateFields(ctx, s.col(ColShifts), id, bson.D{
		{Key: "is_active", Value: active},
		{Key: "updated_at", Value: time.Now()},
	})
}

func (s *Store) DeleteShift(ctx context.Context, id string) error {
	return deleteByID(ctx, s.col(ColShifts), id)
}
