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
// CompanyStore
// ============================================================================

func (s *Store) CreateCompany(ctx context.Context, company *model.Company) error {
	return insertOne(ctx, s.col(ColCompanies), company)
}

func (s *Store) GetCompanyByEmail(ctx context.Context, email string) (*model.Company, error) {
	return findOne[model.Company](ctx, s.col(ColCompanies),
		bson.D{{Key: "email", Value: model.NormalizeEmail(email)}},
		excludeFields("password_hash"))
}

func (s *Store) GetCompanyByID(ctx context.Context, id string) (*model.Company, error) {
	return findOne[model.Company](ctx, s.col(ColCompanies),
		bson.D{{Key: "_id", Value: id}},
		excludeFields("password_hash"))
}

// GetCompanyPasswordHash 显式读取公司凭证字段
func (s *Store) GetCompanyPasswordHash(ctx context.Context, id string) (string, error) {
	type credentials struct {
		PasswordHash string `bson:"password_hash"`
	}
	opts := options.FindOne().SetProjection(bson.D{{Key: "password_hash", Value: 1}})
	cred, err := findOne[credentials](ctx, s.col(ColCompanies), bson.D{{Key: "_id", Value: id}}, opts)
	if err != nil {
		return "", err
	}
	if cred == nil {
		return "", storage.ErrNotFound
	}
	return cred.PasswordHash, nil
}

func (s *Store) ListCompanies(ctx context.Context) ([]*model.Company, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.D{{Key: "password_hash", Value: 0}})
	return findMany[model.Company](ctx, s.col(ColCompanies), bson.D{}, opts)
}

// UpdateCompany 更新公司档案，字段白名单不含 password_hash
func (s *Store) UpdateCompany(ctx context.Context, company *model.Company) error {
	return updateFields(ctx, s.col(ColCompanies), company.ID, bson.D{
		{Key: "company_name", Value: company.CompanyName},
		{Key: "phone", Value: company.Phone},
		{Key: "address", Value: company.Address},
		{Key: "company_img", Value: company.CompanyImg},
		{Key: "modules", Value: company.Modules},
		{Key: "is_active", Value: company.IsActive},
		{Key: "updated_at", Value: time.Now()},
	})
}

func (s *Store) DeleteCompany(ctx context.Context, id string) error {
	return deleteByID(ctx, s.col(ColCompanies), id)
}
