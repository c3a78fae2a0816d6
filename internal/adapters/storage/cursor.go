// Package storage holds helpers shared by the quote and user store backends.
package storage

import (
	"strconv"

	"github.com/jsamuelsen/quoteboard/internal/domain"
)

// MaxPageSize caps a single list call regardless of the requested limit.
const MaxPageSize = 500

// ParseCursor decodes a list cursor into a row offset. An empty cursor is
// the first page.
func ParseCursor(cursor string) (int, error) {
	if cursor == "" {
		return 0, nil
	}

	offset, err := strconv.Atoi(cursor)
	if err != nil || offset < 0 {
		return 0, domain.NewValidationErrorWithValue("cursor", "must be a non-negative offset", cursor)
	}

	return offset, nil
}

// NextCursor returns the cursor following a page that started at offset
// and returned n rows. It is empty when the page was not full.
func NextCursor(offset, n, limit int) string {
	if n < limit {
		return ""
	}

	return strconv.Itoa(offset + n)
}

// ValidateLimit rejects page sizes outside 1..MaxPageSize.
func ValidateLimit(limit int) error {
	if limit < 1 || limit > MaxPageSize {
		return domain.NewValidationErrorWithValue("limit", "must be between 1 and 500", strconv.Itoa(limit))
	}

	return nil
}
