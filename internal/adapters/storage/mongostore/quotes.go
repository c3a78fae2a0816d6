package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jsamuelsen/quoteboard/internal/adapters/storage"
	"github.com/jsamuelsen/quoteboard/internal/domain"
	"github.com/jsamuelsen/quoteboard/internal/domain/contenthash"
	"github.com/jsamuelsen/quoteboard/internal/ports"
)

const quoteEntity = "quote"

// newestFirst is the listing order shared by List and Latest.
var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "id", Value: -1}}

// QuoteStore implements ports.QuoteStore.
type QuoteStore struct {
	coll *mongo.Collection
	hash contenthash.Func
	now  func() time.Time
}

var _ ports.QuoteStore = (*QuoteStore)(nil)

// NewQuoteStore creates a quote store. A nil hash uses contenthash.Hash.
func NewQuoteStore(c *Client, hash contenthash.Func) *QuoteStore {
	if hash == nil {
		hash = contenthash.Hash
	}

	return &QuoteStore{
		coll: c.db.Collection(c.cfg.Quotes),
		hash: hash,
		now:  mongoNow,
	}
}

// EnsureIndexes creates the content hash, status and ordering indexes.
func (s *QuoteStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "content_hash", Value: 1}},
			Options: options.Index().SetName("content_hash_unique").SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("status"),
		},
		{
			Keys:    newestFirst,
			Options: options.Index().SetName("created_at_id"),
		},
	})
	if err != nil {
		return domain.NewStorageError("create quote indexes", err)
	}

	return nil
}

// Create inserts a quote unless one with the same content hash exists.
func (s *QuoteStore) Create(ctx context.Context, in domain.NewQuote) (*domain.Quote, error) {
	hash := in.ContentHash
	if hash == "" {
		hash = s.hash(in.Content)
	}

	existing, err := s.findOne(ctx, "find quote by hash", hash, bson.M{"content_hash": hash})
	if err == nil {
		return existing, nil
	}

	if !domain.IsNotFound(err) {
		return nil, err
	}

	doc := newQuoteDocument(in, hash, s.now())

	_, err = s.coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		// Lost the race on the content hash index; return the winner.
		return s.findOne(ctx, "find quote by hash", hash, bson.M{"content_hash": hash})
	}

	if err != nil {
		return nil, translateError("create quote", quoteEntity, doc.ID, err)
	}

	return doc.toDomain(), nil
}

func newQuoteDocument(in domain.NewQuote, hash string, now time.Time) *quoteDocument {
	status := in.Status
	if status == "" {
		status = domain.QuoteStatusPending
	}

	source := in.Source
	if source == "" {
		source = domain.DefaultQuoteSource
	}

	id := domain.NewQuoteID()
	doc := &quoteDocument{
		MongoID:     id,
		ID:          id,
		Content:     in.Content,
		ContentHash: hash,
		Status:      string(status),
		Source:      source,
		SubmittedBy: in.SubmittedBy,
		CreatedAt:   now,
	}

	if status.IsVerified() {
		doc.VerifiedAt = &now
	}

	return doc
}

func (s *QuoteStore) findOne(ctx context.Context, op, id string, filter bson.M, opts ...*options.FindOneOptions) (*domain.Quote, error) {
	var doc quoteDocument
	if err := s.coll.FindOne(ctx, filter, opts...).Decode(&doc); err != nil {
		return nil, translateError(op, quoteEntity, id, err)
	}

	return doc.toDomain(), nil
}

// Get returns the quote with id.
func (s *QuoteStore) Get(ctx context.Context, id string) (*domain.Quote, error) {
	return s.findOne(ctx, "get quote", id, bson.M{"_id": id})
}

func statusFilter(status *domain.QuoteStatus) bson.M {
	filter := bson.M{}
	if status != nil {
		filter["status"] = string(*status)
	}

	return filter
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

	filter := statusFilter(params.Status)
	if params.ContentHash != "" {
		filter["content_hash"] = params.ContentHash
	}

	opts := options.Find().
		SetSort(newestFirst).
		SetSkip(int64(offset)).
		SetLimit(int64(params.Limit))

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, domain.NewStorageError("list quotes", err)
	}

	var docs []quoteDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, domain.NewStorageError("list quotes", err)
	}

	items := make([]*domain.Quote, 0, len(docs))
	for i := range docs {
		items = append(items, docs[i].toDomain())
	}

	return &ports.QuotePage{
		Items:      items,
		NextCursor: storage.NextCursor(offset, len(items), params.Limit),
	}, nil
}

// Update applies a partial update with a single findOneAndUpdate.
func (s *QuoteStore) Update(ctx context.Context, id string, update domain.QuoteUpdate) (*domain.Quote, error) {
	if update.IsEmpty() {
		return s.Get(ctx, id)
	}

	return s.findOneAndUpdate(ctx, "update quote", id, bson.M{"$set": s.updateFields(update)})
}

func (s *QuoteStore) updateFields(update domain.QuoteUpdate) bson.M {
	set := bson.M{}

	if update.Content != nil {
		set["content"] = *update.Content
		set["content_hash"] = s.hash(*update.Content)
	}

	if update.Source != nil {
		set["source"] = *update.Source
	}

	if update.SubmittedBy != nil {
		set["submitted_by"] = *update.SubmittedBy
	}

	if update.VerifiedBy != nil {
		set["verified_by"] = *update.VerifiedBy
	}

	// A verification stamps both fields, so a decision without a verifier
	// clears the previous one.
	if update.Status != nil {
		set["status"] = string(*update.Status)

		if update.Status.IsVerified() {
			set["verified_at"] = s.now()
			set["verified_by"] = nullable(update.VerifiedBy)
		} else {
			set["verified_at"] = nil
			set["verified_by"] = nil
		}
	}

	return set
}

func (s *QuoteStore) findOneAndUpdate(ctx context.Context, op, id string, update bson.M) (*domain.Quote, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc quoteDocument
	if err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&doc); err != nil {
		return nil, translateError(op, quoteEntity, id, err)
	}

	return doc.toDomain(), nil
}

// UpdateStatus moves a quote to status.
func (s *QuoteStore) UpdateStatus(ctx context.Context, id string, status domain.QuoteStatus, verifiedBy *string) (*domain.Quote, error) {
	return s.Update(ctx, id, domain.QuoteUpdate{Status: &status, VerifiedBy: verifiedBy})
}

// IncrementLikes adds one like atomically.
func (s *QuoteStore) IncrementLikes(ctx context.Context, id string) (*domain.Quote, error) {
	return s.findOneAndUpdate(ctx, "increment likes", id, bson.M{"$inc": bson.M{"likes": 1}})
}

// RandomApproved samples one approved quote on the server.
func (s *QuoteStore) RandomApproved(ctx context.Context) (*domain.Quote, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": string(domain.QuoteStatusApproved)}}},
		{{Key: "$sample", Value: bson.M{"size": 1}}},
	}

	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, domain.NewStorageError("random quote", err)
	}

	var docs []quoteDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, domain.NewStorageError("random quote", err)
	}

	if len(docs) == 0 {
		return nil, domain.NewNotFoundError(quoteEntity, "random")
	}

	return docs[0].toDomain(), nil
}

// Latest returns the newest quote, optionally with the given status.
func (s *QuoteStore) Latest(ctx context.Context, status *domain.QuoteStatus) (*domain.Quote, error) {
	return s.findOne(ctx, "latest quote", "latest", statusFilter(status), options.FindOne().SetSort(newestFirst))
}

// Count returns the number of quotes, optionally with the given status.
func (s *QuoteStore) Count(ctx context.Context, status *domain.QuoteStatus) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, statusFilter(status))
	if err != nil {
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
