package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ward/ward/pkg/apperr"
)

// PostgreSQL SQLSTATE codes mapped onto the apperr taxonomy.
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeNotNullViolation    = "23502"
	codeCheckViolation      = "23514"
	codeInvalidTextRepr     = "22P02"
)

// Classify converts constraint failures reported by PostgreSQL into
// *apperr.IntegrityError or *apperr.ValidationError. Any other error,
// including connectivity failures, is returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeForeignKeyViolation, codeUniqueViolation:
		return &apperr.IntegrityError{
			Constraint: pgErr.ConstraintName,
			Detail:     pgErr.Detail,
			Err:        err,
		}
	case codeNotNullViolation, codeCheckViolation, codeInvalidTextRepr:
		field := pgErr.ColumnName
		if field == "" {
			field = pgErr.ConstraintName
		}
		return &apperr.ValidationError{Field: field, Reason: pgErr.Message}
	}
	return err
}
