package mongostore

import (
	"context"
	"regexp"
	"time"

	"hrm-admin/internal/shared/model"
	"hrm-admin/internal/shared/storage"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ============================================================================
// UserStore
//
// 所有默认读取通过投影排除 password_hash；
// 凭证字段只能经 GetUserPasswordHash 显式读取。
// ============================================================================

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	return insertOne(ctx, s.col(ColUsers), user)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return findOne[model.User](ctx, s.col(ColUsers),
		bson.D{{Key: "email", Value: model.NormalizeEmail(email)}},
		excludeFields("password_hash"))
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return findOne[model.User](ctx, s.col(ColUsers),
		bson.D{{Key: "_id", Value: id}},
		excludeFields("password_hash"))
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return findOne[model.User](ctx, s.col(ColUsers),
		bson.D{{Key: "username", Value: username}},
		excludeFields("password_hash"))
}

// GetUserPasswordHash 显式读取凭证字段，仅投影 password_hash
func (s *Store) GetUserPasswordHash(ctx context.Context, id string) (string, error) {
	type credentials struct {
		PasswordHash string `bson:"password_hash"`
	}
	opts := options.FindOne().SetProjection(bson.D{{Key: "password_hash", Value: 1}})
	cred, err := findOne[credentials](ctx, s.col(ColUsers), bson.D{{Key: "_id", Value: id}}, opts)
	if err != nil {
		return "", err
	}
	if cred == nil {
		return "", storage.ErrNotFound
	}
	return cred.PasswordHash, nil
}

func (s *Store) ListUsers(ctx context.Context, filter storage.UserFilter) ([]*model.User, error) {
	query := bson.D{}
	if filter.CompanyID != "" {
		query = append(query, bson.E{Key: "company_id", Value: filter.CompanyID})
	}
	if filter.UserType != "" {
		query = append(query, bson.E{Key: "user_type", Value: filter.UserType})
	}
	if filter.IsActive != nil {
		query = append(query, bson.E{Key: "is_active", Value: *filter.IsActive})
	}
	if filter.Search != "" {
		pattern := regexp.QuoteMeta(filter.Search)
		query = append(query, bson.E{Key: "$or", Value: bson.A{
			bson.D{regexFilter("username", pattern)},
			bson.D{regexFilter("email", pattern)},
			bson.D{regexFilter("first_name", pattern)},
			bson.D{regexFilter("last_name", pattern)},
			bson.D{regexFilter("mobile", pattern)},
		}})
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.D{{Key: "password_hash", Value: 0}})
	if filter.Limit > 0 {
		opts = opts.SetLimit(int64(filter.Limit)).SetSkip(int64(filter.Offset))
	}
	return findMany[model.User](ctx, s.col(ColUsers), query, opts)
}

// UpdateUser 更新档案字段
//
// 字段列表是显式的白名单：password_hash 与 last_login_at 永远不在其中，
// 保证不改密码的保存对哈希字节级无副作用。
func (s *Store) UpdateUser(ctx context.Context, user *model.User) error {
	return updateFields(ctx, s.col(ColUsers), user.ID, bson.D{
		{Key: "username", Value: user.Username},
		{Key: "first_name", Value: user.FirstName},
		{Key: "last_name", Value: user.LastName},
		{Key: "mobile", Value: user.Mobile},
		{Key: "profile_pic", Value: user.ProfilePic},
		{Key: "role_id", Value: user.RoleID},
		{Key: "permissions", Value: user.Permissions},
		{Key: "updated_at", Value: time.Now()},
	})
}

func (s *Store) UpdateUserPassword(ctx context.Context, id, passwordHash string) error {
	return updateFields(ctx, s.col(ColUsers), id, bson.D{
		{Key: "password_hash", Value: passwordHash},
		{Key: "updated_at", Value: time.Now()},
	})
}

// UpdateUserLastLogin 只在认证成功后调用，档案编辑不得触碰该字段
func (s *Store) UpdateUserLastLogin(ctx context.Context, id string, at time.Time) error {
	return updateFields(ctx, s.col(ColUsers), id, bson.D{
		{Key: "last_login_at", Value: at},
	})
}

func (s *Store) UpdateUserActive(ctx context.Context, id string, active bool) error {
	return updateFields(ctx, s.col(ColUsers), id, bson.D{
		{Key: "is_active", Value: active},
		{Key: "updated_at", Value: time.Now()},
	})
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return deleteByID(ctx, s.col(ColUsers), id)
}
