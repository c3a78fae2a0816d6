package sqlstore

import (
	"time"

	"github.com/jsamuelsen/quoteboard/internal/domain"
)

// quoteRow is the quotes table.
type quoteRow struct {
	ID          string     `gorm:"primaryKey;size:32;index:idx_quotes_created_id,priority:2,sort:desc"`
	Content     string     `gorm:"type:text;not null"`
	ContentHash string     `gorm:"size:64;not null;uniqueIndex:idx_quotes_content_hash"`
	Status      string     `gorm:"size:16;not null;index:idx_quotes_status"`
	Source      string     `gorm:"size:64;not null"`
	SubmittedBy *string    `gorm:"size:100"`
	CreatedAt   time.Time  `gorm:"not null;index:idx_quotes_created_id,priority:1,sort:desc"`
	VerifiedAt  *time.Time
	VerifiedBy  *string `gorm:"size:320"`
	Likes       int64   `gorm:"not null;default:0"`
}

func (quoteRow) TableName() string {
	return "quotes"
}

func (r *quoteRow) toDomain() *domain.Quote {
	q := &domain.Quote{
		ID:          r.ID,
		Content:     r.Content,
		ContentHash: r.ContentHash,
		Status:      domain.QuoteStatus(r.Status),
		Source:      r.Source,
		SubmittedBy: r.SubmittedBy,
		CreatedAt:   r.CreatedAt.UTC(),
		VerifiedBy:  r.VerifiedBy,
		Likes:       r.Likes,
	}

	if r.VerifiedAt != nil {
		t := r.VerifiedAt.UTC()
		q.VerifiedAt = &t
	}

	return q
}

// userRow is the users table.
type userRow struct {
	Email        string    `gorm:"primaryKey;size:320"`
	PasswordHash string    `gorm:"not null"`
	DisplayName  string    `gorm:"size:200;not null"`
	Status       string    `gorm:"size:16;not null;index:idx_users_status"`
	IsAdmin      bool      `gorm:"not null;default:false;index:idx_users_is_admin"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (userRow) TableName() string {
	return "users"
}

func (r *userRow) toDomain() *domain.User {
	return &domain.User{
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		DisplayName:  r.DisplayName,
		Status:       domain.UserStatus(r.Status),
		IsAdmin:      r.IsAdmin,
		CreatedAt:    r.CreatedAt.UTC(),
	}
}

func userRowFrom(u *domain.User) *userRow {
	return &userRow{
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		DisplayName:  u.DisplayName,
		Status:       string(u.Status),
		IsAdmin:      u.IsAdmin,
		CreatedAt:    u.CreatedAt.UTC(),
	}
}
