package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/utn-progav/autos-api/internal/domain"
	"github.com/utn-progav/autos-api/internal/store"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"

	// numericOutOfRangeCode is raised when a value does not fit its column
	// type, e.g. an INTEGER beyond 2^31-1 or a NUMERIC beyond its precision.
	numericOutOfRangeCode = "22003"
)

// MapError maps a database error to a store error, keeping the driver error
// in the chain for logging.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case uniqueViolationCode:
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case foreignKeyViolationCode:
		return fmt.Errorf("%w: foreign key violation (%s): %v",
			store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case checkViolationCode:
		return fmt.Errorf("%w: check constraint violation (%s): %v",
			store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case notNullViolationCode:
		return fmt.Errorf("%w: not null violation (%s): %v",
			store.ErrInvalidEntity, pgErr.ColumnName, err)
	case numericOutOfRangeCode:
		return fmt.Errorf("%w: numeric value out of range: %v",
			store.ErrInvalidEntity, err)
	}
	return err
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	return hasCode(err, uniqueViolationCode)
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, foreignKeyViolationCode)
}

// IsCheckConstraintViolation reports whether err is a CHECK constraint violation.
func IsCheckConstraintViolation(err error) bool {
	return hasCode(err, checkViolationCode)
}

// IsNotNullViolation reports whether err is a NOT NULL violation.
func IsNotNullViolation(err error) bool {
	return hasCode(err, notNullViolationCode)
}

// IsNumericOutOfRange reports whether err is a value too large for its column.
func IsNumericOutOfRange(err error) bool {
	return hasCode(err, numericOutOfRangeCode)
}

// constraintField names the column a check or not-null violation is about.
// Column CHECK constraints are named <table>_<column>_check by PostgreSQL.
func constraintField(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", false
	}
	switch {
	case IsNotNullViolation(err) && pgErr.ColumnName != "":
		return pgErr.ColumnName, true
	case IsCheckConstraintViolation(err):
		name := strings.TrimSuffix(pgErr.ConstraintName, "_check")
		if pgErr.TableName != "" {
			name = strings.TrimPrefix(name, pgErr.TableName+"_")
		}
		if name == "" || name == pgErr.ConstraintName {
			return "", false
		}
		return name, true
	}
	return "", false
}

// MapWriteError maps an INSERT or UPDATE error. Values the database rejects
// for a single field become a *domain.ValidationError on that field;
// overflowField names the field an out-of-range error is reported on.
func MapWriteError(err error, overflowField string) error {
	if IsNumericOutOfRange(err) && overflowField != "" {
		return fmt.Errorf("%w: %v",
			domain.NewValidationError(overflowField, "is out of range"), err)
	}
	if field, ok := constraintField(err); ok {
		return fmt.Errorf("%w: %v",
			domain.NewValidationError(field, "is rejected by the database"), err)
	}
	return MapError(err)
}

// CheckRowsAffected examines the number of rows affected by a database operation.
// If no rows were affected, it returns notFound, or store.ErrNotFound when
// notFound is nil. UPDATE and DELETE use it to detect a missing target row.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if notFound == nil {
			return store.ErrNotFound
		}
		return notFound
	}

	return nil
}

// MapUniqueViolation reports a unique violation as exists, which should wrap
// store.ErrDuplicate. Other errors go through MapError.
func MapUniqueViolation(err error, exists error) error {
	if IsUniqueViolation(err) {
		return fmt.Errorf("%w: %v", exists, err)
	}
	return MapError(err)
}
