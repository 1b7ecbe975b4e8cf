package postgres

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Constraint classification for Postgres errors. GORM's error translation
// covers the common cases; the SQLSTATE fallbacks catch drivers or code
// paths where translation is not active. The unique-index mapping is what
// makes duplicate signups atomic: no pre-flight existence check, the index
// decides the race.

func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	return hasSQLState(err, "23505")
}

func isForeignKeyConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	return hasSQLState(err, "23503")
}

func isNotNullConstraintViolation(err error) bool {
	return hasSQLState(err, "23502") ||
		strings.Contains(strings.ToLower(err.Error()), "null value")
}

func hasSQLState(err error, code string) bool {
	return strings.Contains(err.Error(), "SQLSTATE "+code)
}
