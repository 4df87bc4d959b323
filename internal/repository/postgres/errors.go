package postgres

import (
	"errors"

	"gorm.io/gorm"

	"booking-platform/internal/domain"
)

// translate maps gorm errors onto domain errors. gorm must be opened with
// TranslateError enabled for duplicate keys to be recognised.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.NewConflictError("resource already exists")
	default:
		return domain.NewInternalError(err)
	}
}
