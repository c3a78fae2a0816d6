package sqlstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jsamuelsen/quoteboard/internal/adapters/storage"
	"github.com/jsamuelsen/quoteboard/internal/domain"
	"github.com/jsamuelsen/quoteboard/internal/domain/contenthash"
	"github.com/jsamuelsen/quoteboard/internal/ports"
)

const quoteEntity = "quote"

// QuoteStore implements ports.QuoteStore.
type QuoteStore struct {
	db   *gorm.DB
	hash contenthash.Func
	now  func() time.Time
}

var _ ports.QuoteStore = (*QuoteStore)(nil)

// NewQuoteStore creates a quote store. A nil hash uses contenthash.Hash.
func NewQuoteStore(db *DB, hash contenthash.Func) *QuoteStore {
	if hash == nil {
		hash = contenthash.Hash
	}

	return &QuoteStore{
		db:   db.gorm,
		hash: hash,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// EnsureIndexes creates the quotes table and its indexes.
func (s *QuoteStore) EnsureIndexes(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&quoteRow{}); err != nil {
		return domain.NewStorageError("migrate quotes", err)
	}

	return nil
}

// Create inserts a quote unless one with the same content hash exists.
func (s *QuoteStore) Create(ctx context.Context, in domain.NewQuote) (*domain.Quote, error) {
	hash := in.ContentHash
	if hash == "" {
		hash = s.hash(in.Content)
	}

	existing, err := s.findByHash(ctx, hash)
	if err == nil {
		return existing, nil
	}

	if !domain.IsNotFound(err) {
		return nil, err
	}

	row := newQuoteRow(in, hash, s.now())

	err = s.db.WithContext(ctx).Create(row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the race on the content hash index; return the winner.
		return s.findByHash(ctx, hash)
	}

	if err != nil {
		return nil, translateError("create quote", quoteEntity, row.ID, err)
	}

	return row.toDomain(), nil
}

func newQuoteRow(in domain.NewQuote, hash string, now time.Time) *quoteRow {
	status := in.Status
	if status == "" {
		status = domain.QuoteStatusPending
	}

	source := in.Source
	if source == "" {
		source = domain.DefaultQuoteSource
	}

	row := &quoteRow{
		ID:          domain.NewQuoteID(),
		Content:     in.Content,
		ContentHash: hash,
		Status:      string(status),
		Source:      source,
		SubmittedBy: in.SubmittedBy,
		CreatedAt:   now,
	}

	if status.IsVerified() {
		row.VerifiedAt = &now
	}

	return row
}

func (s *QuoteStore) findByHash(ctx context.Context, hash string) (*domain.Quote, error) {
	var row quoteRow

	err := s.db.WithContext(ctx).Where("content_hash = ?", hash).Take(&row).Error
	if err != nil {
		return nil, translateError("find quote by hash", quoteEntity, hash, err)
	}

	return row.toDomain(), nil
}

// Get returns the quote with id.
func (s *QuoteStore) Get(ctx context.Context, id string) (*domain.Quote, error) {
	var row quoteRow

	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		return nil, translateError("get quote", quoteEntity, id, err)
	}

	return row.toDomain(), nil
}

// List returns one page of quotes, newest first.
func (s *QuoteStore) List(ctx context.Context, params ports.ListQuotesParams) (*ports.QuotePage, error) {
	if err := storage.ValidateLimit(params.Limit); err != nil {
		return nil, err
	}

	offset, err := storage.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	var rows []quoteRow

	err = s.filtered(ctx, params.Status).
		Scopes(withContentHash(params.ContentHash)).
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(params.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, domain.NewStorageError("list quotes", err)
	}

	items := make([]*domain.Quote, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].toDomain())
	}

	return &ports.QuotePage{
		Items:      items,
		NextCursor: storage.NextCursor(offset, len(items), params.Limit),
	}, nil
}

func (s *QuoteStore) filtered(ctx context.Context, status *domain.QuoteStatus) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&quoteRow{})
	if status != nil {
		q = q.Where("status = ?", string(*status))
	}

	return q
}

func withContentHash(hash string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if hash == "" {
			return db
		}

		return db.Where("content_hash = ?", hash)
	}
}

// Update applies a partial update with a single UPDATE ... RETURNING.
func (s *QuoteStore) Update(ctx context.Context, id string, update domain.QuoteUpdate) (*domain.Quote, error) {
	if update.IsEmpty() {
		return s.Get(ctx, id)
	}

	columns := s.updateColumns(update)

	var row quoteRow

	res := s.db.WithContext(ctx).
		Model(&row).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		UpdateColumns(columns)
	if res.Error != nil {
		return nil, translateError("update quote", quoteEntity, id, res.Error)
	}

	if res.RowsAffected == 0 {
		return nil, domain.NewNotFoundError(quoteEntity, id)
	}

	return row.toDomain(), nil
}

func (s *QuoteStore) updateColumns(update domain.QuoteUpdate) map[string]any {
	columns := make(map[string]any)

	if update.Content != nil {
		columns["content"] = *update.Content
		columns["content_hash"] = s.hash(*update.Content)
	}

	if update.Source != nil {
		columns["source"] = *update.Source
	}

	if update.SubmittedBy != nil {
		columns["submitted_by"] = *update.SubmittedBy
	}

	if update.VerifiedBy != nil {
		columns["verified_by"] = *update.VerifiedBy
	}

	// A verification stamps both fields, so a decision without a verifier
	// clears the previous one.
	if update.Status != nil {
		columns["status"] = string(*update.Status)

		if update.Status.IsVerified() {
			columns["verified_at"] = s.now()
			columns["verified_by"] = nullable(update.VerifiedBy)
		} else {
			columns["verified_at"] = nil
			columns["verified_by"] = nil
		}
	}

	return columns
}

// UpdateStatus moves a quote to status.
func (s *QuoteStore) UpdateStatus(ctx context.Context, id string, status domain.QuoteStatus, verifiedBy *string) (*domain.Quote, error) {
	return s.Update(ctx, id, domain.QuoteUpdate{Status: &status, VerifiedBy: verifiedBy})
}

// IncrementLikes adds one like atomically.
func (s *QuoteStore) IncrementLikes(ctx context.Context, id string) (*domain.Quote, error) {
	var row quoteRow

	res := s.db.WithContext(ctx).
		Model(&row).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + ?", 1))
	if res.Error != nil {
		return nil, translateError("increment likes", quoteEntity, id, res.Error)
	}

	if res.RowsAffected == 0 {
		return nil, domain.NewNotFoundError(quoteEntity, id)
	}

	return row.toDomain(), nil
}

// RandomApproved samples one approved quote on the server.
func (s *QuoteStore) RandomApproved(ctx context.Context) (*domain.Quote, error) {
	var row quoteRow

	approved := domain.QuoteStatusApproved

	err := s.filtered(ctx, &approved).Order("RANDOM()").Limit(1).Take(&row).Error
	if err != nil {
		return nil, translateError("random quote", quoteEntity, "random", err)
	}

	return row.toDomain(), nil
}

// Latest returns the newest quote, optionally with the given status.
func (s *QuoteStore) Latest(ctx context.Context, status *domain.QuoteStatus) (*domain.Quote, error) {
	var row quoteRow

	err := s.filtered(ctx, status).Order("created_at DESC").Order("id DESC").Limit(1).Take(&row).Error
	if err != nil {
		return nil, translateError("latest quote", quoteEntity, "latest", err)
	}

	return row.toDomain(), nil
}

// Count returns the number of quotes, optionally with the given status.
func (s *QuoteStore) Count(ctx context.Context, status *domain.QuoteStatus) (int64, error) {
	var n int64

	if err := s.filtered(ctx, status).Count(&n).Error; err != nil {
		return 0, domain.NewStorageError("count quotes", err)
	}

	return n, nil
}

// nullable turns an absent value into an explicit null so the write clears
// the field instead of skipping it.
func nullable(v *string) any {
	if v == nil {
		return nil
	}

	return *v
}
