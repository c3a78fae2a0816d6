package dto

import (
	"time"

	"github.com/jsamuelsen/quoteboard/internal/domain"
)

// QuoteResponse is the HTTP representation of a quote.
type QuoteResponse struct {
	ID          string     `json:"id"`
	Content     string     `json:"content"`
	ContentHash string     `json:"contentHash"`
	Status      string     `json:"status"`
	Source      string     `json:"source"`
	SubmittedBy *string    `json:"submittedBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	VerifiedAt  *time.Time `json:"verifiedAt,omitempty"`
	VerifiedBy  *string    `json:"verifiedBy,omitempty"`
	Likes       int64      `json:"likes"`
}

// NewQuoteResponse converts a domain quote.
func NewQuoteResponse(q *domain.Quote) QuoteResponse {
	return QuoteResponse{
		ID:          q.ID,
		Content:     q.Content,
		ContentHash: q.ContentHash,
		Status:      string(q.Status),
		Source:      q.Source,
		SubmittedBy: q.SubmittedBy,
		CreatedAt:   q.CreatedAt,
		VerifiedAt:  q.VerifiedAt,
		VerifiedBy:  q.VerifiedBy,
		Likes:       q.Likes,
	}
}

// SubmitQuoteRequest is the body of POST /quotes.
type SubmitQuoteRequest struct {
	Content     string  `json:"content"     validate:"required,notempty,max=2000"`
	Source      string  `json:"source"      validate:"omitempty,max=50"`
	SubmittedBy *string `json:"submittedBy" validate:"omitempty,max=100"`
}

// EditQuoteRequest is the body of PATCH /admin/quotes/:id.
type EditQuoteRequest struct {
	Content *string `json:"content" validate:"omitempty,max=2000"`
	Source  *string `json:"source"  validate:"omitempty,max=50"`
	Status  *string `json:"status"  validate:"omitempty,quotestatus"`
}

// AdminQuoteQuery holds the admin list filters. Status ALL disables the
// status filter.
type AdminQuoteQuery struct {
	PaginationRequest

	Status string `form:"status"`
}

// StatsResponse is the admin dashboard summary.
type StatsResponse struct {
	Quotes       QuoteCountsResponse `json:"quotes"`
	PendingUsers int64               `json:"pendingUsers"`
}

// QuoteCountsResponse holds quote totals per status.
type QuoteCountsResponse struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}
