// Package domain contains core business entities and rules.
package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxQuoteLength is the upper bound on quote content, in characters.
const MaxQuoteLength = 2000

// MaxSubmitterLength bounds the free-text submitter name.
const MaxSubmitterLength = 100

// DefaultQuoteSource is used when a submission names no source.
const DefaultQuoteSource = "api"

// QuoteStatus is the moderation state of a quote.
type QuoteStatus string

// Quote moderation states.
const (
	QuoteStatusPending  QuoteStatus = "PENDING"
	QuoteStatusApproved QuoteStatus = "APPROVED"
	QuoteStatusRejected QuoteStatus = "REJECTED"
)

// ParseQuoteStatus normalizes s (case-insensitive) into a QuoteStatus.
func ParseQuoteStatus(s string) (QuoteStatus, error) {
	status := QuoteStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", NewValidationErrorWithValue("status", "must be one of PENDING, APPROVED, REJECTED", s)
	}

	return status, nil
}

// Valid reports whether s is a known status.
func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteStatusPending, QuoteStatusApproved, QuoteStatusRejected:
		return true
	default:
		return false
	}
}

// IsVerified reports whether a quote in this status carries verification data.
func (s QuoteStatus) IsVerified() bool {
	return s == QuoteStatusApproved || s == QuoteStatusRejected
}

// Quote is a submitted piece of text moving through moderation.
// This is a domain entity - it has no knowledge of external systems.
type Quote struct {
	// ID is generated at creation and never changes.
	ID string

	// Content is the quote text.
	Content string

	// ContentHash is the dedup key derived from Content.
	ContentHash string

	Status QuoteStatus

	// Source is a provenance tag such as "web_form" or "api".
	Source string

	// SubmittedBy is nil for anonymous submissions.
	SubmittedBy *string

	CreatedAt time.Time

	// VerifiedAt and VerifiedBy are set together when Status is APPROVED or REJECTED.
	VerifiedAt *time.Time
	VerifiedBy *string

	Likes int64
}

// NewQuoteID returns a random quote id: a v4 UUID as 32 lowercase hex characters.
func NewQuoteID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewQuote holds the inputs for creating a quote.
type NewQuote struct {
	Content     string
	ContentHash string
	Source      string
	Status      QuoteStatus
	SubmittedBy *string
}

// QuoteUpdate is a partial update; nil fields are left untouched, except
// that a Status of APPROVED or REJECTED always writes VerifiedBy, nil
// included.
type QuoteUpdate struct {
	Content     *string
	Source      *string
	Status      *QuoteStatus
	VerifiedBy  *string
	SubmittedBy *string
}

// IsEmpty reports whether the update changes nothing.
func (u QuoteUpdate) IsEmpty() bool {
	return u.Content == nil && u.Source == nil && u.Status == nil &&
		u.VerifiedBy == nil && u.SubmittedBy == nil
}

// ValidateQuoteContent checks the content bounds on already-trimmed text.
func ValidateQuoteContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return NewValidationError("content", "must not be empty")
	}

	if utf8.RuneCountInString(content) > MaxQuoteLength {
		return NewValidationError("content", "must be at most 2000 characters")
	}

	return nil
}

// outerQuotePairs are the quote marks stripped from submissions.
var outerQuotePairs = [][2]string{
	{"“", "”"},
	{`"`, `"`},
	{"'", "'"},
}

// NormalizeQuoteContent trims whitespace and removes one pair of matching
// outer quote marks. Whitespace inside the marks is kept.
func NormalizeQuoteContent(content string) string {
	s := strings.TrimSpace(content)

	for _, pair := range outerQuotePairs {
		left, right := pair[0], pair[1]
		if len(s) >= len(left)+len(right) && strings.HasPrefix(s, left) && strings.HasSuffix(s, right) {
			return s[len(left) : len(s)-len(right)]
		}
	}

	return s
}
