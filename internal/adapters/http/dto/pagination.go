package dto

// DefaultLimit is the default number of items per page.
const DefaultLimit = 20

// MaxLimit is the maximum allowed items per page.
const MaxLimit = 100

// PaginationRequest represents pagination parameters from the request.
type PaginationRequest struct {
	// Cursor is an opaque string from a previous response's NextCursor.
	Cursor string `form:"cursor"`

	// Limit is the maximum number of items to return; values above MaxLimit are capped.
	Limit int `form:"limit" validate:"omitempty,gte=1"`
}

// GetLimit returns the limit with def applied when unset, capped at MaxLimit.
func (p *PaginationRequest) GetLimit(def int) int {
	if p.Limit <= 0 {
		return def
	}

	if p.Limit > MaxLimit {
		return MaxLimit
	}

	return p.Limit
}

// PaginatedResponse is a generic paginated response structure.
type PaginatedResponse[T any] struct {
	// Items is the array of items for this page.
	Items []T `json:"items"`

	// NextCursor is the cursor to use for the next page.
	// Empty if there are no more items.
	NextCursor string `json:"nextCursor,omitempty"`

	// HasMore indicates whether a NextCursor was issued.
	HasMore bool `json:"hasMore"`
}

// NewPaginatedResponse maps a store page to a response. A nil items slice
// is rendered as an empty array.
func NewPaginatedResponse[S any, T any](items []S, nextCursor string, convert func(S) T) *PaginatedResponse[T] {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, convert(item))
	}

	return &PaginatedResponse[T]{
		Items:      out,
		NextCursor: nextCursor,
		HasMore:    nextCursor != "",
	}
}
