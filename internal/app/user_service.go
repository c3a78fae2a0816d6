package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen/quoteboard/internal/app/auth"
	"github.com/jsamuelsen/quoteboard/internal/domain"
	"github.com/jsamuelsen/quoteboard/internal/ports"
)

// maxDisplayNameLength bounds self-chosen display names.
const maxDisplayNameLength = 100

// UserService orchestrates registration and account moderation.
type UserService struct {
	store    ports.UserStore
	validate *validator.Validate
	logger   *slog.Logger
}

// UserServiceConfig contains configuration for the user service.
type UserServiceConfig struct {
	Store  ports.UserStore
	Logger *slog.Logger
}

// NewUserService creates a new user service. It panics without a store.
func NewUserService(cfg UserServiceConfig) *UserService {
	if cfg.Store == nil {
		panic("app: user store is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &UserService{
		store:    cfg.Store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.With(slog.String("component", "app.UserService")),
	}
}

// RegisterUser is the input for a self-registration.
type RegisterUser struct {
	Email       string
	Password    string
	DisplayName string
}

// Register creates a PENDING account with a bcrypt password hash.
// A taken email is a ConflictError.
func (s *UserService) Register(ctx context.Context, in RegisterUser) (*domain.User, error) {
	email := domain.NormalizeEmail(in.Email)
	if err := s.validate.Var(email, "required,email,max=254"); err != nil {
		return nil, domain.NewValidationErrorWithValue("email", "must be a valid email address", in.Email)
	}

	if in.Password == "" {
		return nil, domain.NewValidationError("password", "must not be empty")
	}

	// The password is later carried in "email:password:role" session cookies.
	if err := auth.CheckSecret(in.Password); err != nil {
		return nil, domain.NewValidationError("password", `must not contain ":"`)
	}

	displayName := strings.TrimSpace(in.DisplayName)
	if utf8.RuneCountInString(displayName) > maxDisplayNameLength {
		return nil, domain.NewValidationError("displayName", "must be at most 100 characters")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, domain.NewValidationError("password", "must be at most 72 bytes")
		}

		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
		Status:       domain.UserStatusPending,
	}

	created, err := s.store.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	UserRegistrationsTotal.Inc()

	requestLogger(ctx, s.logger).InfoContext(ctx, "user registered", slog.String("email", created.Email))

	return created, nil
}

// List returns accounts newest first. Admin accounts are included only
// when includeAdmins is set.
func (s *UserService) List(ctx context.Context, status *domain.UserStatus, includeAdmins bool) ([]*domain.User, error) {
	return s.store.List(ctx, ports.ListUsersParams{Status: status, IncludeAdmins: includeAdmins})
}

// Approve moves an account to APPROVED.
func (s *UserService) Approve(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)

	ok, err := s.store.UpdateStatus(ctx, email, domain.UserStatusApproved)
	if err != nil {
		return err
	}

	if !ok {
		return domain.NewNotFoundError("user", email)
	}

	requestLogger(ctx, s.logger).InfoContext(ctx, "user approved", slog.String("email", email))

	return nil
}

// Reject removes a registration. Admin accounts cannot be rejected.
func (s *UserService) Reject(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)

	user, err := s.store.GetByEmail(ctx, email, false)
	if err != nil {
		return err
	}

	if user.IsAdmin {
		return domain.NewForbiddenError("reject user", "admin accounts cannot be rejected")
	}

	return s.delete(ctx, email, "user rejected")
}

// SetAdmin grants or revokes admin rights. Granting also approves the
// account. An admin cannot revoke their own rights.
func (s *UserService) SetAdmin(ctx context.Context, email string, isAdmin bool, actor *domain.Identity) error {
	email = domain.NormalizeEmail(email)

	if !isAdmin && actor != nil && actor.Email == email {
		return domain.NewForbiddenError("revoke admin", "cannot revoke your own admin rights")
	}

	ok, err := s.store.SetAdmin(ctx, email, isAdmin)
	if err != nil {
		return err
	}

	if !ok {
		return domain.NewNotFoundError("user", email)
	}

	requestLogger(ctx, s.logger).InfoContext(ctx, "user admin flag changed",
		slog.String("email", email),
		slog.Bool("is_admin", isAdmin),
	)

	return nil
}

// Delete removes an account. An admin cannot delete their own account.
func (s *UserService) Delete(ctx context.Context, email string, actor *domain.Identity) error {
	email = domain.NormalizeEmail(email)

	if actor != nil && actor.Email == email {
		return domain.NewForbiddenError("delete user", "cannot delete your own account")
	}

	return s.delete(ctx, email, "user deleted")
}

func (s *UserService) delete(ctx context.Context, email, msg string) error {
	ok, err := s.store.Delete(ctx, email)
	if err != nil {
		return err
	}

	if !ok {
		return domain.NewNotFoundError("user", email)
	}

	requestLogger(ctx, s.logger).InfoContext(ctx, msg, slog.String("email", email))

	return nil
}
