package persistence

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/podstore/backoffice/internal/domain/shared"
)

// translateError maps driver and GORM errors onto the shared sentinels.
// Other errors are returned unchanged so the caller keeps the driver message.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return shared.ErrAlreadyExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.ErrInvalidRef
	default:
		return err
	}
}

// isUniqueViolation catches duplicates on connections opened without TranslateError
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
