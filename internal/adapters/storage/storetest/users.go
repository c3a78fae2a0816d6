package storetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jsamuelsen/quoteboard/internal/domain"
	"github.com/jsamuelsen/quoteboard/internal/ports"
)

// UserStoreSuite exercises a ports.UserStore. NewStore must return an empty
// store with indexes in place; it is called before every test.
type UserStoreSuite struct {
	suite.Suite

	NewStore func() ports.UserStore

	store ports.UserStore
	ctx   context.Context
}

func (s *UserStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.NewStore()
}

func (s *UserStoreSuite) create(email string, status domain.UserStatus, isAdmin bool) *domain.User {
	u, err := s.store.Create(s.ctx, &domain.User{
		Email:        email,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Status:       status,
		IsAdmin:      isAdmin,
	})
	s.Require().NoError(err)

	return u
}

func (s *UserStoreSuite) TestCreateNormalizes() {
	u := s.create("  Jane.Doe@Example.COM ", "", false)

	s.Equal("jane.doe@example.com", u.Email)
	s.Equal("jane.doe", u.DisplayName)
	s.Equal(domain.UserStatusPending, u.Status)
	s.False(u.IsAdmin)
	s.WithinDuration(time.Now(), u.CreatedAt, time.Minute)
}

func (s *UserStoreSuite) TestCreateAdminIsApproved() {
	u := s.create("root@example.com", domain.UserStatusPending, true)

	s.True(u.IsAdmin)
	s.Equal(domain.UserStatusApproved, u.Status)
}

func (s *UserStoreSuite) TestCreateConflict() {
	s.create("dup@example.com", domain.UserStatusPending, false)

	_, err := s.store.Create(s.ctx, &domain.User{Email: "DUP@example.com", PasswordHash: "x"})
	s.True(domain.IsConflict(err))
}

func (s *UserStoreSuite) TestGetByEmail() {
	s.create("reader@example.com", domain.UserStatusApproved, false)
	s.create("boss@example.com", domain.UserStatusApproved, true)

	u, err := s.store.GetByEmail(s.ctx, "READER@Example.com", false)
	s.Require().NoError(err)
	s.Equal("reader@example.com", u.Email)
	s.NotEmpty(u.PasswordHash)

	_, err = s.store.GetByEmail(s.ctx, "reader@example.com", true)
	s.True(domain.IsNotFound(err), "admin-only lookup skips regular accounts")

	admin, err := s.store.GetByEmail(s.ctx, "boss@example.com", true)
	s.Require().NoError(err)
	s.True(admin.IsAdmin)

	_, err = s.store.GetByEmail(s.ctx, "nobody@example.com", false)
	s.True(domain.IsNotFound(err))
}

func (s *UserStoreSuite) TestList() {
	s.create("a@example.com", domain.UserStatusPending, false)
	time.Sleep(10 * time.Millisecond)
	s.create("b@example.com", domain.UserStatusApproved, false)
	time.Sleep(10 * time.Millisecond)
	s.create("admin@example.com", domain.UserStatusApproved, true)

	users, err := s.store.List(s.ctx, ports.ListUsersParams{})
	s.Require().NoError(err)
	s.Require().Len(users, 2, "admins excluded by default")
	s.Equal("b@example.com", users[0].Email, "newest first")
	s.Equal("a@example.com", users[1].Email)

	users, err = s.store.List(s.ctx, ports.ListUsersParams{IncludeAdmins: true})
	s.Require().NoError(err)
	s.Len(users, 3)

	pending := domain.UserStatusPending

	users, err = s.store.List(s.ctx, ports.ListUsersParams{Status: &pending})
	s.Require().NoError(err)
	s.Require().Len(users, 1)
	s.Equal("a@example.com", users[0].Email)
}

func (s *UserStoreSuite) TestUpdateStatus() {
	s.create("wait@example.com", domain.UserStatusPending, false)

	ok, err := s.store.UpdateStatus(s.ctx, "WAIT@example.com", domain.UserStatusApproved)
	s.Require().NoError(err)
	s.True(ok)

	u, err := s.store.GetByEmail(s.ctx, "wait@example.com", false)
	s.Require().NoError(err)
	s.Equal(domain.UserStatusApproved, u.Status)

	ok, err = s.store.UpdateStatus(s.ctx, "missing@example.com", domain.UserStatusApproved)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *UserStoreSuite) TestAdminStaysApproved() {
	s.create("admin@example.com", domain.UserStatusApproved, true)

	ok, err := s.store.UpdateStatus(s.ctx, "admin@example.com", domain.UserStatusPending)
	s.Require().NoError(err)
	s.True(ok)

	u, err := s.store.GetByEmail(s.ctx, "admin@example.com", false)
	s.Require().NoError(err)
	s.Equal(domain.UserStatusApproved, u.Status)
}

func (s *UserStoreSuite) TestSetAdmin() {
	s.create("promote@example.com", domain.UserStatusPending, false)

	ok, err := s.store.SetAdmin(s.ctx, "promote@example.com", true)
	s.Require().NoError(err)
	s.True(ok)

	u, err := s.store.GetByEmail(s.ctx, "promote@example.com", true)
	s.Require().NoError(err)
	s.True(u.IsAdmin)
	s.Equal(domain.UserStatusApproved, u.Status, "granting admin approves the account")

	ok, err = s.store.SetAdmin(s.ctx, "promote@example.com", false)
	s.Require().NoError(err)
	s.True(ok)

	u, err = s.store.GetByEmail(s.ctx, "promote@example.com", false)
	s.Require().NoError(err)
	s.False(u.IsAdmin)
	s.Equal(domain.UserStatusApproved, u.Status, "revoking keeps the approval")

	ok, err = s.store.SetAdmin(s.ctx, "missing@example.com", true)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *UserStoreSuite) TestDelete() {
	s.create("gone@example.com", domain.UserStatusPending, false)

	ok, err := s.store.Delete(s.ctx, "gone@example.com")
	s.Require().NoError(err)
	s.True(ok)

	_, err = s.store.GetByEmail(s.ctx, "gone@example.com", false)
	s.True(domain.IsNotFound(err))

	ok, err = s.store.Delete(s.ctx, "gone@example.com")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *UserStoreSuite) TestEnsureIndexesIsIdempotent() {
	s.Require().NoError(s.store.EnsureIndexes(s.ctx))
	s.Require().NoError(s.store.EnsureIndexes(s.ctx))
}
