package persistence

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique constraint violation.
// Postgres surfaces these as pq errors; the sqlite driver used in tests
// reports them through gorm's translated sentinel.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
