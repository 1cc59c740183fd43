package postgres

import (
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainerrors "pgbee/internal/domain/errors"
	"pgbee/internal/errors"
)

// PostgreSQL SQLSTATE codes the repositories translate.
const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
	sqlStateNotNullViolation    = "23502"
	sqlStateCheckViolation      = "23514"
	sqlStateInvalidText         = "22P02"
)

// detailKeyPattern pulls the column list out of "Key (a, b)=(x, y) already exists."
var detailKeyPattern = regexp.MustCompile(`Key \(([^)]+)\)=`)

// translateError maps a GORM/driver error to the domain taxonomy. notFound is
// returned for gorm.ErrRecordNotFound; op names the failed operation in the
// persistence error details.
func translateError(err error, notFound error, op string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if notFound != nil {
			return notFound
		}

		return domainerrors.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateUniqueViolation:
			return domainerrors.NewDuplicateError(duplicateFields(pgErr)...)
		case sqlStateForeignKeyViolation:
			return domainerrors.NewValidationError("Referenced record does not exist")
		case sqlStateNotNullViolation:
			return domainerrors.NewValidationError(pgErr.ColumnName + " is required")
		case sqlStateCheckViolation:
			return domainerrors.NewValidationError("Constraint " + pgErr.ConstraintName + " violated")
		case sqlStateInvalidText:
			return domainerrors.ErrInvalidID
		}
	}

	switch {
	case isUniqueConstraintViolation(err):
		return domainerrors.NewDuplicateError()
	case isForeignKeyConstraintViolation(err):
		return domainerrors.NewValidationError("Referenced record does not exist")
	case isCheckConstraintViolation(err):
		return domainerrors.ErrValidationFailed
	}

	return domainerrors.NewPersistenceError(errors.WithStack(err), op)
}

func duplicateFields(pgErr *pgconn.PgError) []string {
	if m := detailKeyPattern.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
		fields := strings.Split(m[1], ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		return fields
	}

	if pgErr.ConstraintName != "" {
		return []string{pgErr.ConstraintName}
	}

	return nil
}

// The gorm sentinels show up when the dialector runs with TranslateError.
func isUniqueConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isForeignKeyConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated)
}

func isCheckConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrCheckConstraintViolated)
}
