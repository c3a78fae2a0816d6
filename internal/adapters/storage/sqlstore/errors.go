package sqlstore

import (
	"errors"

	"gorm.io/gorm"

	"github.com/jsamuelsen/quoteboard/internal/domain"
)

// translateError converts a gorm error into the domain taxonomy. Driver
// error types never leave this package. Callers that expect a duplicate
// key handle it first; any other constraint violation is a storage failure.
func translateError(op, entity, id string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.NewNotFoundError(entity, id)
	default:
		return domain.NewStorageError(op, err)
	}
}
