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
// TicketStore
// ============================================================================

func (s *Store) CreateTicket(ctx context.Context, ticket *model.Ticket) error {
	return insertOne(ctx, s.col(ColTickets), ticket)
}

func (s *Store) GetTicket(ctx context.Context, id string) (*model.Ticket, error) {
	return findOne[model.Ticket](ctx, s.col(ColTickets), bson.D{{Key: "_id", Value: id}})
}

func (s *Store) ListTickets(ctx context.Context, filter storage.TicketFilter) ([]*model.Ticket, error) {
	query := bson.D{}
	if filter.CompanyID != "" {
		query = append(query, bson.E{Key: "company_id", Value: filter.CompanyID})
	}
	if filter.Status != "" {
		query = append(query, bson.E{Key: "status", Value: filter.Status})
	}
	if filter.Priority != "" {
		query = append(query, bson.E{Key: "priority", Value: filter.Priority})
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findMany[model.Ticket](ctx, s.col(ColTickets), query, opts)
}

func (s *Store) UpdateTicket(ctx context.Context, ticket *model.Ticket) error {
	return updateFields(ctx, s.col(ColTickets), ticket.ID, bson.D{
		{Key: "title", Value: ticket.Title},
		{Key: "category", Value: ticket.Category},
		{Key: "subject", Value: ticket.Subject},
		{Key: "description", Value: ticket.Description},
		{Key: "priority", Value: ticket.Priority},
		{Key: "status", Value: ticket.Status},
		{Key: "updated_at", Value: time.Now()},
	})
}

func (s *Store) DeleteTicket(ctx context.Context, id string) error {
	return deleteByID(ctx, s.col(ColTickets), id)
}
