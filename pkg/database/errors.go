package database

import (
	"github.com/lib/pq"

	"github.com/caseflow/caseflow-backend/pkg/errors"
)

// MapPQError converts a PostgreSQL error to an AppError with meaningful messages.
// Returns nil if the error is not a pq.Error.
func MapPQError(err error) *errors.AppError {
	pqErr, ok := err.(*pq.Error)
	if !ok {
		return nil
	}

	switch pqErr.Code {
	// Unique constraint violation (23505)
	case "23505":
		return errors.BadRequest("a case with this id already exists")

	// Not null violation (23502)
	case "23502":
		col := pqErr.Column
		if col == "" {
			col = "required field"
		}
		return errors.Validation(map[string]string{
			col: "must not be empty",
		})

	// Invalid text representation, e.g. malformed jsonb (22P02)
	case "22P02":
		return errors.BadRequest("malformed case document")

	default:
		return nil
	}
}
