package auth

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/quoteboard/internal/domain"
	"github.com/jsamuelsen/quoteboard/internal/platform/logging"
	"github.com/jsamuelsen/quoteboard/internal/ports"
)

// sourceNone labels resolutions no source accepted.
const sourceNone = "none"

// ResolverConfig configures credential resolution.
type ResolverConfig struct {
	// LocalMode enables static admins for every credential and disables
	// external token verification.
	LocalMode bool

	// AdminEmails are granted admin when they arrive as verified token claims.
	AdminEmails []string
}

// Resolver turns a presented token into an identity.
type Resolver struct {
	static      *StaticAdmins
	users       ports.UserStore
	verifier    ports.TokenVerifier
	localMode   bool
	adminEmails map[string]struct{}
}

// NewResolver creates a resolver. static and verifier may be nil.
func NewResolver(cfg ResolverConfig, static *StaticAdmins, users ports.UserStore, verifier ports.TokenVerifier) *Resolver {
	adminEmails := make(map[string]struct{}, len(cfg.AdminEmails))
	for _, e := range cfg.AdminEmails {
		if e = domain.NormalizeEmail(e); e != "" {
			adminEmails[e] = struct{}{}
		}
	}

	return &Resolver{
		static:      static,
		users:       users,
		verifier:    verifier,
		localMode:   cfg.LocalMode,
		adminEmails: adminEmails,
	}
}

// Resolve parses token and resolves it.
func (r *Resolver) Resolve(ctx context.Context, token string) (*domain.Identity, error) {
	return r.ResolveCredential(ctx, ParseCredential(token), token)
}

// ResolveCredential resolves a parsed credential. raw is the token as
// presented, handed to the external verifier unchanged.
//
// Errors are *domain.UnauthorizedError, *domain.ForbiddenError or a
// storage failure from the user store.
func (r *Resolver) ResolveCredential(ctx context.Context, cred Credential, raw string) (*domain.Identity, error) {
	identity, source, err := r.resolve(ctx, cred, raw)

	logger := logging.FromContext(ctx)

	switch {
	case err == nil:
		ResolutionsTotal.WithLabelValues(source, outcomeResolved).Inc()
		logger.DebugContext(ctx, "credential resolved",
			slog.String("source", source),
			slog.String("user_email", identity.Email),
			slog.Bool("is_admin", identity.IsAdmin),
		)
	case domain.IsForbidden(err):
		ResolutionsTotal.WithLabelValues(source, outcomeForbidden).Inc()
		logger.InfoContext(ctx, "credential role rejected", slog.String("user_email", cred.Email))
	case domain.IsUnauthorized(err):
		ResolutionsTotal.WithLabelValues(source, outcomeUnauthorized).Inc()
		logger.DebugContext(ctx, "credential rejected", slog.String("kind", cred.Kind.String()))
	default:
		ResolutionsTotal.WithLabelValues(source, outcomeError).Inc()
		logger.ErrorContext(ctx, "credential resolution failed", slog.String("error", err.Error()))
	}

	return identity, err
}

func (r *Resolver) resolve(ctx context.Context, cred Credential, raw string) (*domain.Identity, string, error) {
	if cred.Secret == "" {
		return nil, sourceNone, domain.NewUnauthorizedError("missing credentials")
	}

	if r.localMode || cred.WantsAdmin() {
		if identity, ok := r.static.Match(cred.Email, cred.Secret); ok {
			return identity, string(domain.IdentitySourceStatic), nil
		}
	}

	if cred.Email != "" && r.users != nil {
		identity, err := r.resolveAccount(ctx, cred)
		if err != nil || identity != nil {
			return identity, string(domain.IdentitySourceAccount), err
		}

		logging.FromContext(ctx).Log(ctx, logging.LevelTrace, "no matching account, trying token verifier")
	}

	if !r.localMode && r.verifier != nil {
		identity, err := r.resolveToken(ctx, raw)
		return identity, string(domain.IdentitySourceToken), err
	}

	return nil, sourceNone, domain.NewUnauthorizedError("invalid or missing authentication")
}

// resolveAccount returns (nil, nil) when the account does not decide the
// outcome and resolution should continue.
func (r *Resolver) resolveAccount(ctx context.Context, cred Credential) (*domain.Identity, error) {
	user, err := r.users.GetByEmail(ctx, cred.Email, false)
	if domain.IsNotFound(err) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	if !CheckPassword(user.PasswordHash, cred.Secret) {
		return nil, nil
	}

	if cred.WantsAdmin() && !user.IsAdmin {
		return nil, domain.NewForbiddenError("admin login", "account is not an admin")
	}

	return domain.IdentityFromUser(user), nil
}

func (r *Resolver) resolveToken(ctx context.Context, raw string) (*domain.Identity, error) {
	claims, err := r.verifier.Verify(ctx, raw)
	if err != nil {
		logging.FromContext(ctx).DebugContext(ctx, "token verification failed", slog.String("error", err.Error()))
		return nil, domain.NewUnauthorizedError("invalid token")
	}

	email := domain.NormalizeEmail(claims.Email)
	if email == "" {
		return nil, domain.NewUnauthorizedError("token has no email claim")
	}

	_, listed := r.adminEmails[email]

	return &domain.Identity{
		Email:       email,
		DisplayName: domain.EmailLocalPart(email),
		IsAdmin:     listed || normalizeRole(claims.Role) == domain.RoleAdmin,
		Status:      domain.UserStatusApproved,
		Source:      domain.IdentitySourceToken,
	}, nil
}
