package sqlstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jsamuelsen/quoteboard/internal/domain"
	"github.com/jsamuelsen/quoteboard/internal/ports"
)

const userEntity = "user"

// UserStore implements ports.UserStore.
type UserStore struct {
	db  *gorm.DB
	now func() time.Time
}

var _ ports.UserStore = (*UserStore)(nil)

// NewUserStore creates a user store.
func NewUserStore(db *DB) *UserStore {
	return &UserStore{
		db:  db.gorm,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// EnsureIndexes creates the users table and its indexes.
func (s *UserStore) EnsureIndexes(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&userRow{}); err != nil {
		return domain.NewStorageError("migrate users", err)
	}

	return nil
}

// GetByEmail returns the account for email.
func (s *UserStore) GetByEmail(ctx context.Context, email string, adminOnly bool) (*domain.User, error) {
	email = domain.NormalizeEmail(email)

	q := s.db.WithContext(ctx).Where("email = ?", email)
	if adminOnly {
		q = q.Where("is_admin = ?", true)
	}

	var row userRow
	if err := q.Take(&row).Error; err != nil {
		return nil, translateError("get user", userEntity, email, err)
	}

	return row.toDomain(), nil
}

// Create inserts a new account.
func (s *UserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	u := *user
	u.Normalize()

	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
	}

	row := userRowFrom(&u)

	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.NewConflictError(userEntity, "email already registered")
		}

		return nil, domain.NewStorageError("create user", err)
	}

	return row.toDomain(), nil
}

// List returns accounts, newest first.
func (s *UserStore) List(ctx context.Context, params ports.ListUsersParams) ([]*domain.User, error) {
	q := s.db.WithContext(ctx).Model(&userRow{})

	if params.Status != nil {
		q = q.Where("status = ?", string(*params.Status))
	}

	if !params.IncludeAdmins {
		q = q.Where("is_admin = ?", false)
	}

	var rows []userRow
	if err := q.Order("created_at DESC").Order("email ASC").Find(&rows).Error; err != nil {
		return nil, domain.NewStorageError("list users", err)
	}

	users := make([]*domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, rows[i].toDomain())
	}

	return users, nil
}

// UpdateStatus sets the approval state. Admin accounts stay APPROVED.
func (s *UserStore) UpdateStatus(ctx context.Context, email string, status domain.UserStatus) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&userRow{}).
		Where("email = ?", domain.NormalizeEmail(email)).
		UpdateColumn("status", gorm.Expr("CASE WHEN is_admin THEN ? ELSE ? END",
			string(domain.UserStatusApproved), string(status)))
	if res.Error != nil {
		return false, domain.NewStorageError("update user status", res.Error)
	}

	return res.RowsAffected > 0, nil
}

// SetAdmin grants or revokes admin. Granting approves the account in the
// same statement.
func (s *UserStore) SetAdmin(ctx context.Context, email string, isAdmin bool) (bool, error) {
	columns := map[string]any{"is_admin": isAdmin}
	if isAdmin {
		columns["status"] = string(domain.UserStatusApproved)
	}

	res := s.db.WithContext(ctx).
		Model(&userRow{}).
		Where("email = ?", domain.NormalizeEmail(email)).
		UpdateColumns(columns)
	if res.Error != nil {
		return false, domain.NewStorageError("set admin", res.Error)
	}

	return res.RowsAffected > 0, nil
}

// Delete removes the account.
func (s *UserStore) Delete(ctx context.Context, email string) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("email = ?", domain.NormalizeEmail(email)).
		Delete(&userRow{})
	if res.Error != nil {
		return false, domain.NewStorageError("delete user", res.Error)
	}

	return res.RowsAffected > 0, nil
}
