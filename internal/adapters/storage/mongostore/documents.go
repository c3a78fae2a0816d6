package mongostore

import (
	"time"

	"github.com/jsamuelsen/quoteboard/internal/domain"
)

// quoteDocument mirrors the id into a plain field so it can share the
// (created_at, id) index with the ordering.
type quoteDocument struct {
	MongoID     string     `bson:"_id"`
	ID          string     `bson:"id"`
	Content     string     `bson:"content"`
	ContentHash string     `bson:"content_hash"`
	Status      string     `bson:"status"`
	Source      string     `bson:"source"`
	SubmittedBy *string    `bson:"submitted_by"`
	CreatedAt   time.Time  `bson:"created_at"`
	VerifiedAt  *time.Time `bson:"verified_at"`
	VerifiedBy  *string    `bson:"verified_by"`
	Likes       int64      `bson:"likes"`
}

func (d *quoteDocument) toDomain() *domain.Quote {
	id := d.ID
	if id == "" {
		id = d.MongoID
	}

	q := &domain.Quote{
		ID:          id,
		Content:     d.Content,
		ContentHash: d.ContentHash,
		Status:      domain.QuoteStatus(d.Status),
		Source:      d.Source,
		SubmittedBy: d.SubmittedBy,
		CreatedAt:   d.CreatedAt.UTC(),
		VerifiedBy:  d.VerifiedBy,
		Likes:       d.Likes,
	}

	if d.VerifiedAt != nil {
		t := d.VerifiedAt.UTC()
		q.VerifiedAt = &t
	}

	return q
}

// userDocument is keyed by the lowercase email.
type userDocument struct {
	Email        string    `bson:"_id"`
	PasswordHash string    `bson:"password_hash"`
	DisplayName  string    `bson:"display_name"`
	Status       string    `bson:"status"`
	IsAdmin      bool      `bson:"is_admin"`
	CreatedAt    time.Time `bson:"created_at"`
}

func (d *userDocument) toDomain() *domain.User {
	return &domain.User{
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		DisplayName:  d.DisplayName,
		Status:       domain.UserStatus(d.Status),
		IsAdmin:      d.IsAdmin,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

// mongoNow returns the current time at the millisecond precision BSON stores.
func mongoNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
