package mongostore

import (
	"context"
	"time"

	"hrm-admin/internal/shared/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ============================================================================
// HolidayStore
// ============================================================================

func (s *Store) CreateHoliday(ctx context.Context, holiday *model.Holiday) error {
	return insertOne(ctx, s.col(ColHolidays), holiday)
}

func (s *Store) GetHoliday(ctx context.Context, id string) (*model.Holiday, error) {
	return findOne[model.Holiday](ctx, s.col(ColHolidays), bson.D{{Key: "_id", Value: id}})
}

func (s *Store) ListHolidays(ctx context.Context, companyID string) ([]*model.Holiday, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	return findMany[model.Holiday](ctx, s.col(ColHolidays),
		bson.D{{Key: "company_id", Value: companyID}}, opts)
}

func (s *Store) UpdateHoliday(ctx context.Context, holiday *model.Holiday) error {
	return updateFields(ctx, s.col(ColHolidays), holiday.ID, bson.D{
		{Key: "name", Value: holiday.Name},
		{Key: "date", Value: holiday.Date},
		{Key: "description", Value: holiday.Description},
		{Key: "status", Value: holiday.Status},
		{Key: "updated_at", Value: time.Now()},
	})
}

func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	return deleteByID(ctx, s.col(ColHolidays), id)
}
