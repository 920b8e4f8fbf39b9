// internal/storage/errors.go
package storage

import (
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// Specific errors for mission database operations
var (
	ErrMissionNotFound     = errors.New("mission not found")
	ErrMissionLogNotFound  = errors.New("mission log entry not found")
	ErrForeignKeyViolation = errors.New("foreign key violation")
	ErrDuplicateKey        = errors.New("record with this key already exists")
)

// ReferenceError reports a write rejected because it pointed at rows that do
// not exist. Details names each invalid reference.
type ReferenceError struct {
	Message string
	Details []string
}

func (e *ReferenceError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return e.Message + " " + strings.Join(e.Details, "; ")
}

func (e *ReferenceError) Unwrap() error {
	return ErrForeignKeyViolation
}

// isForeignKeyViolation checks the driver's extended result code
// (SQLITE_CONSTRAINT_FOREIGNKEY).
func isForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) &&
		sqliteErr.Code == sqlite3.ErrConstraint &&
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
}

// isDuplicateKey matches primary key and unique constraint failures.
func isDuplicateKey(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) &&
		sqliteErr.Code == sqlite3.ErrConstraint &&
		(sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique)
}
