package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jsamuelsen/quoteboard/internal/domain"
	"github.com/jsamuelsen/quoteboard/internal/ports"
)

const userEntity = "user"

// UserStore implements ports.UserStore.
type UserStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

var _ ports.UserStore = (*UserStore)(nil)

// NewUserStore creates a user store.
func NewUserStore(c *Client) *UserStore {
	return &UserStore{
		coll: c.db.Collection(c.cfg.Users),
		now:  mongoNow,
	}
}

// EnsureIndexes creates the status, admin and ordering indexes. The email
// is the document id and needs no index of its own.
func (s *UserStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("status"),
		},
		{
			Keys:    bson.D{{Key: "is_admin", Value: 1}},
			Options: options.Index().SetName("is_admin"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("created_at_email"),
		},
	})
	if err != nil {
		return domain.NewStorageError("create user indexes", err)
	}

	return nil
}

// GetByEmail returns the account for email.
func (s *UserStore) GetByEmail(ctx context.Context, email string, adminOnly bool) (*domain.User, error) {
	email = domain.NormalizeEmail(email)

	filter := bson.M{"_id": email}
	if adminOnly {
		filter["is_admin"] = true
	}

	var doc userDocument
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translateError("get user", userEntity, email, err)
	}

	return doc.toDomain(), nil
}

// Create inserts a new account.
func (s *UserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	u := *user
	u.Normalize()

	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
	}

	doc := &userDocument{
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		DisplayName:  u.DisplayName,
		Status:       string(u.Status),
		IsAdmin:      u.IsAdmin,
		CreatedAt:    u.CreatedAt.UTC().Truncate(time.Millisecond),
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.NewConflictError(userEntity, "email already registered")
		}

		return nil, domain.NewStorageError("create user", err)
	}

	return doc.toDomain(), nil
}

// List returns accounts, newest first.
func (s *UserStore) List(ctx context.Context, params ports.ListUsersParams) ([]*domain.User, error) {
	filter := bson.M{}

	if params.Status != nil {
		filter["status"] = string(*params.Status)
	}

	if !params.IncludeAdmins {
		filter["is_admin"] = false
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, domain.NewStorageError("list users", err)
	}

	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, domain.NewStorageError("list users", err)
	}

	users := make([]*domain.User, 0, len(docs))
	for i := range docs {
		users = append(users, docs[i].toDomain())
	}

	return users, nil
}

// UpdateStatus sets the approval state. Admin accounts stay APPROVED.
func (s *UserStore) UpdateStatus(ctx context.Context, email string, status domain.UserStatus) (bool, error) {
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: "status", Value: bson.D{{
			Key:   "$cond",
			Value: bson.A{"$is_admin", string(domain.UserStatusApproved), string(status)},
		}}}}}},
	}

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": domain.NormalizeEmail(email)}, update)
	if err != nil {
		return false, domain.NewStorageError("update user status", err)
	}

	return res.MatchedCount > 0, nil
}

// SetAdmin grants or revokes admin. Granting approves the account in the
// same write.
func (s *UserStore) SetAdmin(ctx context.Context, email string, isAdmin bool) (bool, error) {
	set := bson.M{"is_admin": isAdmin}
	if isAdmin {
		set["status"] = string(domain.UserStatusApproved)
	}

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": domain.NormalizeEmail(email)}, bson.M{"$set": set})
	if err != nil {
		return false, domain.NewStorageError("set admin", err)
	}

	return res.MatchedCount > 0, nil
}

// Delete removes the account.
func (s *UserStore) Delete(ctx context.Context, email string) (bool, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": domain.NormalizeEmail(email)})
	if err != nil {
		return false, domain.NewStorageError("delete user", err)
	}

	return res.DeletedCount > 0, nil
}
