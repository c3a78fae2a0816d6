package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/jsamuelsen/quoteboard/internal/domain"
	"github.com/jsamuelsen/quoteboard/internal/domain/contenthash"
	"github.com/jsamuelsen/quoteboard/internal/ports"
)

// Page size bounds applied before a list reaches a store.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ClampLimit maps a requested page size into 1..MaxPageSize, using def for
// non-positive values.
func ClampLimit(limit, def int) int {
	switch {
	case limit <= 0:
		return def
	case limit > MaxPageSize:
		return MaxPageSize
	default:
		return limit
	}
}

// QuoteService orchestrates quote submission, reads and moderation.
// It depends on port interfaces, not concrete implementations.
type QuoteService struct {
	store     ports.QuoteStore
	hash      contenthash.Func
	maxLength int
	logger    *slog.Logger
}

// QuoteServiceConfig contains configuration for the quote service.
type QuoteServiceConfig struct {
	Store ports.QuoteStore

	// Hash defaults to contenthash.Hash.
	Hash contenthash.Func

	// MaxLength caps submitted content in characters. It defaults to, and
	// cannot exceed, domain.MaxQuoteLength.
	MaxLength int

	Logger *slog.Logger
}

// NewQuoteService creates a new quote service. It panics without a store.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Store == nil {
		panic("app: quote store is required")
	}

	if cfg.Hash == nil {
		cfg.Hash = contenthash.Hash
	}

	if cfg.MaxLength <= 0 || cfg.MaxLength > domain.MaxQuoteLength {
		cfg.MaxLength = domain.MaxQuoteLength
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteService{
		store:     cfg.Store,
		hash:      cfg.Hash,
		maxLength: cfg.MaxLength,
		logger:    logger.With(slog.String("component", "app.QuoteService")),
	}
}

// SubmitQuote is the input for a new submission.
type SubmitQuote struct {
	Content     string
	Source      string
	SubmittedBy *string
}

// Submit normalizes and stores a new PENDING quote. Resubmitting existing
// content returns the stored quote unchanged.
func (s *QuoteService) Submit(ctx context.Context, in SubmitQuote) (*domain.Quote, error) {
	content := domain.NormalizeQuoteContent(in.Content)
	if err := s.validateContent(content); err != nil {
		return nil, err
	}

	source := strings.TrimSpace(in.Source)
	if source == "" {
		source = domain.DefaultQuoteSource
	}

	submittedBy, err := normalizeSubmitter(in.SubmittedBy)
	if err != nil {
		return nil, err
	}

	quote, err := s.store.Create(ctx, domain.NewQuote{
		Content:     content,
		ContentHash: s.hash(content),
		Source:      source,
		Status:      domain.QuoteStatusPending,
		SubmittedBy: submittedBy,
	})
	if err != nil {
		return nil, fmt.Errorf("submitting quote: %w", err)
	}

	QuoteSubmissionsTotal.WithLabelValues(source).Inc()

	s.loggerFrom(ctx).InfoContext(ctx, "quote submitted",
		slog.String("quote_id", quote.ID),
		slog.String("status", string(quote.Status)),
	)

	return quote, nil
}

// GetApproved returns a quote only when it is APPROVED; anything else is
// reported as not found so moderation state does not leak.
func (s *QuoteService) GetApproved(ctx context.Context, id string) (*domain.Quote, error) {
	quote, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if quote.Status != domain.QuoteStatusApproved {
		return nil, domain.NewNotFoundError("quote", id)
	}

	return quote, nil
}

// Get returns a quote in any status.
func (s *QuoteService) Get(ctx context.Context, id string) (*domain.Quote, error) {
	return s.store.Get(ctx, id)
}

// List returns a page of quotes, newest first. A nil status lists all.
func (s *QuoteService) List(ctx context.Context, status *domain.QuoteStatus, limit int, cursor string) (*ports.QuotePage, error) {
	return s.store.List(ctx, ports.ListQuotesParams{
		Status: status,
		Limit:  ClampLimit(limit, DefaultPageSize),
		Cursor: cursor,
	})
}

// ListApproved returns a page of approved quotes, newest first.
func (s *QuoteService) ListApproved(ctx context.Context, limit int, cursor string) (*ports.QuotePage, error) {
	approved := domain.QuoteStatusApproved

	return s.List(ctx, &approved, limit, cursor)
}

// Random returns a random approved quote, NotFound when there is none.
func (s *QuoteService) Random(ctx context.Context) (*domain.Quote, error) {
	return s.store.RandomApproved(ctx)
}

// Latest returns the newest approved quote, NotFound when there is none.
func (s *QuoteService) Latest(ctx context.Context) (*domain.Quote, error) {
	approved := domain.QuoteStatusApproved

	return s.store.Latest(ctx, &approved)
}

// Like atomically increments a quote's like count.
func (s *QuoteService) Like(ctx context.Context, id string) (*domain.Quote, error) {
	quote, err := s.store.IncrementLikes(ctx, id)
	if err != nil {
		return nil, err
	}

	QuoteLikesTotal.Inc()

	return quote, nil
}

// Approve marks a quote APPROVED on behalf of admin.
func (s *QuoteService) Approve(ctx context.Context, id string, admin *domain.Identity) (*domain.Quote, error) {
	return s.moderate(ctx, id, domain.QuoteStatusApproved, admin)
}

// Reject marks a quote REJECTED on behalf of admin.
func (s *QuoteService) Reject(ctx context.Context, id string, admin *domain.Identity) (*domain.Quote, error) {
	return s.moderate(ctx, id, domain.QuoteStatusRejected, admin)
}

func (s *QuoteService) moderate(ctx context.Context, id string, status domain.QuoteStatus, admin *domain.Identity) (*domain.Quote, error) {
	quote, err := s.store.UpdateStatus(ctx, id, status, verifier(admin))
	if err != nil {
		return nil, err
	}

	QuoteModerationsTotal.WithLabelValues(string(status)).Inc()

	s.loggerFrom(ctx).InfoContext(ctx, "quote moderated",
		slog.String("quote_id", id),
		slog.String("status", string(status)),
	)

	return quote, nil
}

// EditQuote is an admin edit; nil fields are left untouched.
type EditQuote struct {
	Content *string
	Source  *string
	Status  *domain.QuoteStatus
}

// Edit applies an admin edit. Content is normalized and rehashed by the
// store; a status change is attributed to admin.
func (s *QuoteService) Edit(ctx context.Context, id string, in EditQuote, admin *domain.Identity) (*domain.Quote, error) {
	var update domain.QuoteUpdate

	if in.Content != nil {
		content := domain.NormalizeQuoteContent(*in.Content)
		if err := s.validateContent(content); err != nil {
			return nil, err
		}

		update.Content = &content
	}

	if in.Source != nil {
		source := strings.TrimSpace(*in.Source)
		if source == "" {
			return nil, domain.NewValidationError("source", "must not be empty")
		}

		update.Source = &source
	}

	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, domain.NewValidationErrorWithValue("status", "must be PENDING, APPROVED or REJECTED", *in.Status)
		}

		update.Status = in.Status
		if in.Status.IsVerified() {
			update.VerifiedBy = verifier(admin)
		}
	}

	if update.IsEmpty() {
		return nil, domain.NewValidationError("", "no fields to update")
	}

	quote, err := s.store.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	if in.Status != nil {
		QuoteModerationsTotal.WithLabelValues(string(*in.Status)).Inc()
	}

	s.loggerFrom(ctx).InfoContext(ctx, "quote edited", slog.String("quote_id", id))

	return quote, nil
}

func (s *QuoteService) validateContent(content string) error {
	if err := domain.ValidateQuoteContent(content); err != nil {
		return err
	}

	if utf8.RuneCountInString(content) > s.maxLength {
		return domain.NewValidationError("content", fmt.Sprintf("must be at most %d characters", s.maxLength))
	}

	return nil
}

// loggerFrom prefers the request logger, which carries request and user
// attributes, and falls back to the service logger outside a request.
func (s *QuoteService) loggerFrom(ctx context.Context) *slog.Logger {
	return requestLogger(ctx, s.logger)
}

func normalizeSubmitter(submittedBy *string) (*string, error) {
	if submittedBy == nil {
		return nil, nil
	}

	name := strings.TrimSpace(*submittedBy)
	if name == "" {
		return nil, nil
	}

	if utf8.RuneCountInString(name) > domain.MaxSubmitterLength {
		return nil, domain.NewValidationError("submittedBy", "must be at most 100 characters")
	}

	return &name, nil
}

func verifier(admin *domain.Identity) *string {
	if admin == nil || admin.Email == "" {
		return nil
	}

	email := admin.Email

	return &email
}
