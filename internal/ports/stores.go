package ports

import (
	"context"

	"github.com/jsamuelsen/quoteboard/internal/domain"
)

// ListQuotesParams filters and pages a quote listing. Filters combine with AND.
type ListQuotesParams struct {
	// Status restricts results to one moderation state when non-nil.
	Status *domain.QuoteStatus

	// ContentHash restricts results to a single content digest when non-empty.
	ContentHash string

	// Limit is the page size and must be at least 1.
	Limit int

	// Cursor is the opaque continuation token from a previous page.
	Cursor string
}

// QuotePage is one page of quotes ordered newest first.
type QuotePage struct {
	Items []*domain.Quote

	// NextCursor is empty when the page was not full.
	NextCursor string
}

// QuoteStore persists quotes.
//
// Implementations must guarantee that at most one quote exists per content
// hash and that like increments are atomic. Every medium failure is
// reported as a *domain.StorageError.
type QuoteStore interface {
	// Create inserts a quote, or returns the existing one with the same
	// content hash unchanged.
	Create(ctx context.Context, q domain.NewQuote) (*domain.Quote, error)

	// Get returns domain.ErrNotFound when no quote has the id.
	Get(ctx context.Context, id string) (*domain.Quote, error)

	// List orders by created_at descending, then id descending.
	List(ctx context.Context, params ListQuotesParams) (*QuotePage, error)

	// Update applies a partial update in a single write.
	Update(ctx context.Context, id string, update domain.QuoteUpdate) (*domain.Quote, error)

	// UpdateStatus moves a quote to status and records who verified it.
	UpdateStatus(ctx context.Context, id string, status domain.QuoteStatus, verifiedBy *string) (*domain.Quote, error)

	// IncrementLikes adds one like and returns the updated quote.
	IncrementLikes(ctx context.Context, id string) (*domain.Quote, error)

	// RandomApproved returns domain.ErrNotFound when nothing is approved.
	RandomApproved(ctx context.Context) (*domain.Quote, error)

	// Latest returns the newest quote, optionally restricted to status.
	Latest(ctx context.Context, status *domain.QuoteStatus) (*domain.Quote, error)

	Count(ctx context.Context, status *domain.QuoteStatus) (int64, error)

	// EnsureIndexes creates the schema and indexes. Safe to call repeatedly.
	EnsureIndexes(ctx context.Context) error
}

// ListUsersParams filters a user listing.
type ListUsersParams struct {
	Status *domain.UserStatus

	// IncludeAdmins adds admin accounts, which are excluded by default.
	IncludeAdmins bool
}

// UserStore persists accounts keyed by lowercase email.
type UserStore interface {
	// GetByEmail matches case-insensitively. With adminOnly set, non-admin
	// accounts are reported as not found.
	GetByEmail(ctx context.Context, email string, adminOnly bool) (*domain.User, error)

	// Create returns a *domain.ConflictError when the email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// List orders by created_at descending, then email ascending.
	List(ctx context.Context, params ListUsersParams) ([]*domain.User, error)

	// UpdateStatus reports false when no account matched.
	UpdateStatus(ctx context.Context, email string, status domain.UserStatus) (bool, error)

	// SetAdmin grants or revokes admin. Granting also approves the account.
	SetAdmin(ctx context.Context, email string, isAdmin bool) (bool, error)

	Delete(ctx context.Context, email string) (bool, error)

	EnsureIndexes(ctx context.Context) error
}

// TokenClaims are the verified claims of an external bearer token.
type TokenClaims struct {
	Subject string
	Email   string
	Role    string
}

// TokenVerifier validates bearer tokens issued by an external identity provider.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*TokenClaims, error)
}
